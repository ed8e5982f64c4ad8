package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"coffeebar-server-go/internal/domain/auth"
	"coffeebar-server-go/internal/platform/config"
	"coffeebar-server-go/internal/platform/errors"
	"coffeebar-server-go/internal/platform/logging"
	"coffeebar-server-go/internal/platform/storage"
	httptransport "coffeebar-server-go/internal/transport/http"
	"coffeebar-server-go/internal/transport/http/webapi"
)

// Run wires the whole service together and serves until the context is
// cancelled or a shutdown signal arrives.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := config.NewLoader().Load()
	if err != nil {
		return err
	}
	cfg := result.Config

	logger, err := logging.New(logging.Config{
		Level:    cfg.Log.Level,
		Dir:      cfg.Log.Dir,
		Filename: cfg.Log.File,
	})
	if err != nil {
		return err
	}
	defer logger.Close()
	slogger := logger.Slog()

	if result.Path != "" {
		slogger.Info("configuration loaded", "path", result.Path)
	}

	db, err := storage.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	if cfg.Database.Seed {
		if err := storage.Seed(db); err != nil {
			return err
		}
	}

	if cfg.Auth.Domain == "" {
		return errors.New(errors.KindBootstrap, "bootstrap.run", "auth domain is not configured")
	}
	jwks := auth.NewJWKSProvider(cfg.Auth.Domain)
	verifier := auth.NewVerifier(jwks.Keyfunc, cfg.Auth.Issuer, cfg.Auth.Audience)

	router, err := httptransport.Build(httptransport.Options{
		Config: cfg,
		Logger: slogger,
	})
	if err != nil {
		return err
	}

	repo := storage.NewDrinkRepository(db)
	webapi.NewDrinksService(repo, verifier, slogger).Register(router.Engine)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.IP, cfg.Server.Port),
		Handler: router.Engine,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slogger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.KindTransport, "bootstrap.serve", "http server failed", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slogger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
