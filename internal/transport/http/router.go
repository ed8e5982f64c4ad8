package httptransport

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coffeebar-server-go/internal/platform/config"
)

// Options configures the HTTP router builder.
type Options struct {
	Config *config.Config
	Logger *slog.Logger
}

// Router bundles the gin engine with the route surface handlers register on.
type Router struct {
	Engine *gin.Engine
}

// Build constructs a gin engine pre-configured with recovery, request
// logging and the CORS policy every response must carry.
func Build(opts Options) (*Router, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("http router requires config")
	}

	if opts.Config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(loggingMiddleware(opts.Logger))

	engine.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	if opts.Config.Web.Enabled && opts.Config.Web.StaticDir != "" {
		engine.Use(static.Serve("/", static.LocalFile(opts.Config.Web.StaticDir, true)))
	}

	return &Router{Engine: engine}, nil
}

func loggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		if logger != nil {
			logger.Info("http request",
				"request_id", requestID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", c.Writer.Status(),
				"duration", duration,
			)
		}
	}
}
