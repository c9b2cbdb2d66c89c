package services

import (
	"context"
	"fmt"
	"net/http"

	"cloud.google.com/go/spanner"
	"github.com/redis/go-redis/v9"

	"github.com/light-bringer/invcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/invcat-service/internal/app/catalog/controller"
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/invcat-service/internal/app/catalog/localstore"
	"github.com/light-bringer/invcat-service/internal/app/catalog/pager"
	"github.com/light-bringer/invcat-service/internal/app/catalog/remote/httpcatalog"
	"github.com/light-bringer/invcat-service/internal/app/catalog/remote/memcatalog"
	"github.com/light-bringer/invcat-service/internal/app/catalog/remote/spannercatalog"
	"github.com/light-bringer/invcat-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/invcat-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/invcat-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/invcat-service/internal/app/catalog/views"
	"github.com/light-bringer/invcat-service/internal/app/session"
	"github.com/light-bringer/invcat-service/internal/config"
	"github.com/light-bringer/invcat-service/internal/pkg/clock"
	"github.com/light-bringer/invcat-service/internal/pkg/logx"
	"github.com/light-bringer/invcat-service/internal/transport/grpc/catalog"
	httphandler "github.com/light-bringer/invcat-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	RedisClient   *redis.Client

	Registry       *views.Registry
	SessionGate    *session.Gate // nil when auth is disabled
	CatalogHandler *catalog.Handler
	HTTPHandler    http.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config) (*ServiceOptions, error) {
	opts := &ServiceOptions{}

	// 1. Create infrastructure components
	clk := clock.System()
	ids := domain.NewIdentifierAllocator(cfg.LocalIDBase)

	// 2. Create the remote catalog backend
	remote, err := opts.newRemote(ctx, cfg)
	if err != nil {
		opts.Close()
		return nil, err
	}

	// 3. Create the local record store, one per process
	store := localstore.New(ids, clk)

	// 4. Create mutation use cases
	createProduct := create_product.NewInteractor(store)
	updateProduct := update_product.NewInteractor(store, remote, clk)
	deleteProduct := delete_product.NewInteractor(store, remote)

	// 5. Create the engine shared by every view
	engine := controller.NewEngine(controller.Deps{
		Pages:  pager.New(store, remote, ids),
		Store:  store,
		Create: createProduct,
		Update: updateProduct,
		Delete: deleteProduct,
	})
	opts.Registry = views.NewRegistry(engine, views.Options{
		PageSize: cfg.PageSize,
		IdleTTL:  cfg.ViewIdleTTL,
		MaxViews: cfg.MaxViews,
		Clock:    clk,
	})

	// 6. Create the session gate
	if cfg.AuthEnabled {
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			opts.Close()
			return nil, fmt.Errorf("failed to create Redis client: %w", err)
		}
		opts.RedisClient = rdb
		opts.SessionGate = session.NewGate(session.NewRedisStore(rdb), clk, cfg.SessionTTL)
	}

	// 7. Create transport handlers
	opts.CatalogHandler = catalog.NewHandler(opts.Registry)

	routerOpts := httphandler.RouterOptions{Views: opts.CatalogHandler}
	if opts.SessionGate != nil {
		routerOpts.Sessions = opts.SessionGate
		routerOpts.Auth = opts.SessionGate
	}
	opts.HTTPHandler = httphandler.NewRouter(routerOpts)

	return opts, nil
}

func (s *ServiceOptions) newRemote(ctx context.Context, cfg *config.Config) (contracts.RemoteCatalog, error) {
	switch cfg.Remote.Backend {
	case config.BackendHTTP:
		logx.Info().Str("base_url", cfg.Remote.BaseURL).Msg("using http remote catalog")
		return httpcatalog.New(cfg.Remote.BaseURL, httpcatalog.WithTimeout(cfg.Remote.Timeout)), nil

	case config.BackendSpanner:
		client, err := spanner.NewClient(ctx, cfg.SpannerDB)
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		s.SpannerClient = client
		logx.Info().Str("database", cfg.SpannerDB).Msg("using spanner remote catalog")
		return spannercatalog.New(client), nil

	case config.BackendMemory:
		logx.Info().Int("products", cfg.Remote.SeedCount).Msg("using in-memory remote catalog")
		return memcatalog.New(memcatalog.Seed(cfg.Remote.SeedCount)...), nil

	default:
		return nil, fmt.Errorf("%w: unknown remote backend %q", config.ErrInvalidConfig, cfg.Remote.Backend)
	}
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
	if s.RedisClient != nil {
		if err := s.RedisClient.Close(); err != nil {
			logx.Warn().Err(err).Msg("failed to close Redis client")
		}
	}
}
