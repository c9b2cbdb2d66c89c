package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/light-bringer/invcat-service/internal/pkg/logx"
	"github.com/light-bringer/invcat-service/internal/pkg/redisx"
)

// Remote catalog backends.
const (
	BackendHTTP    = "http"
	BackendSpanner = "spanner"
	BackendMemory  = "memory"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration sourced from the environment.
type Config struct {
	Environment     logx.Environment `envconfig:"APP_ENV" default:"development"`
	GRPCPort        string           `envconfig:"GRPC_PORT" default:"9090"`
	HTTPPort        string           `envconfig:"HTTP_PORT" default:"8080"`
	ShutdownTimeout time.Duration    `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	PageSize    int   `envconfig:"CATALOG_PAGE_SIZE" default:"6"`
	LocalIDBase int64 `envconfig:"CATALOG_LOCAL_ID_BASE" default:"1000000"`

	ViewIdleTTL time.Duration `envconfig:"CATALOG_VIEW_IDLE_TTL" default:"30m"`
	MaxViews    int           `envconfig:"CATALOG_MAX_VIEWS" default:"10000"`

	Remote RemoteConfig

	SpannerDB string `envconfig:"SPANNER_DATABASE" default:"projects/test-project/instances/dev-instance/databases/invcat-db"`

	AuthEnabled bool          `envconfig:"AUTH_ENABLED" default:"false"`
	SessionTTL  time.Duration `envconfig:"SESSION_TTL" default:"1h"`
	Redis       redisx.Config
}

// RemoteConfig selects and configures the remote catalog backend.
type RemoteConfig struct {
	Backend   string        `envconfig:"REMOTE_BACKEND" default:"http"`
	BaseURL   string        `envconfig:"REMOTE_BASE_URL" default:"https://dummyjson.com"`
	Timeout   time.Duration `envconfig:"REMOTE_TIMEOUT" default:"10s"`
	SeedCount int           `envconfig:"REMOTE_SEED_COUNT" default:"30"`
}

// Load reads an optional .env file, then the environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive, got %d", ErrInvalidConfig, c.PageSize)
	}
	if c.LocalIDBase <= 0 {
		return fmt.Errorf("%w: local id base must be positive, got %d", ErrInvalidConfig, c.LocalIDBase)
	}

	if c.ViewIdleTTL < 0 || c.MaxViews < 0 {
		return fmt.Errorf("%w: view idle ttl and max views must not be negative", ErrInvalidConfig)
	}

	switch c.Environment {
	case logx.Development, logx.Production:
	default:
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidConfig, c.Environment)
	}

	switch c.Remote.Backend {
	case BackendHTTP:
		if c.Remote.BaseURL == "" {
			return fmt.Errorf("%w: remote base url is required for the http backend", ErrInvalidConfig)
		}
	case BackendSpanner:
		if c.SpannerDB == "" {
			return fmt.Errorf("%w: spanner database is required for the spanner backend", ErrInvalidConfig)
		}
	case BackendMemory:
		if c.Remote.SeedCount < 0 {
			return fmt.Errorf("%w: seed count must not be negative", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown remote backend %q", ErrInvalidConfig, c.Remote.Backend)
	}

	if c.AuthEnabled && c.Redis.URL == "" {
		return fmt.Errorf("%w: redis url is required when auth is enabled", ErrInvalidConfig)
	}
	return nil
}
