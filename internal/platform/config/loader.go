package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"coffeebar-server-go/internal/platform/errors"
)

// Loader assembles configuration from defaults, an optional YAML file and
// environment variables, in that order of precedence (env wins).
type Loader struct {
	useDotEnv bool
	path      string
}

func NewLoader() *Loader {
	return &Loader{
		useDotEnv: true,
		path:      os.Getenv("COFFEEBAR_CONFIG"),
	}
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// WithPath overrides the YAML config file location (useful for tests).
func (l *Loader) WithPath(path string) *Loader {
	l.path = path
	return l
}

// Result captures the loaded configuration and its origin path.
type Result struct {
	Config *Config
	Path   string
}

func (l *Loader) Load() (*Result, error) {
	if l.useDotEnv {
		if err := godotenv.Load(); err != nil {
			// Not an error: fall through to the process environment.
			fmt.Println("no .env file found, using system environment")
		}
	}

	cfg := defaultConfig()

	path := l.path
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.KindConfig, "config.load", "failed to read config file", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.KindConfig, "config.load", "failed to parse config file", err)
		}
	}

	applyEnv(cfg)

	if cfg.Auth.Issuer == "" && cfg.Auth.Domain != "" {
		cfg.Auth.Issuer = "https://" + cfg.Auth.Domain + "/"
	}

	return &Result{Config: cfg, Path: path}, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			IP:   "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
			File:  "coffeebar.log",
		},
		Database: DatabaseConfig{
			DSN: "file:coffeebar.db",
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SERVER_IP"); v != "" {
		cfg.Server.IP = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_DIR"); v != "" {
		cfg.Log.Dir = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("DATABASE_SEED"); v != "" {
		if seed, err := strconv.ParseBool(v); err == nil {
			cfg.Database.Seed = seed
		}
	}
	if v := os.Getenv("AUTH_DOMAIN"); v != "" {
		cfg.Auth.Domain = v
	}
	if v := os.Getenv("AUTH_AUDIENCE"); v != "" {
		cfg.Auth.Audience = v
	}
	if v := os.Getenv("AUTH_ISSUER"); v != "" {
		cfg.Auth.Issuer = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.Web.Enabled = true
		cfg.Web.StaticDir = v
	}
}
