package e2e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/light-bringer/invcat-service/internal/app/catalog/controller"
	"github.com/light-bringer/invcat-service/internal/app/catalog/remote/memcatalog"
	"github.com/light-bringer/invcat-service/internal/app/catalog/remote/spannercatalog"
	"github.com/light-bringer/invcat-service/internal/config"
	"github.com/light-bringer/invcat-service/internal/pkg/logx"
	"github.com/light-bringer/invcat-service/internal/services"
	"github.com/light-bringer/invcat-service/tests/testutil"
)

// backend configures the service against one remote catalog seeded with
// memcatalog.Seed(n).
type backend struct {
	name      string
	configure func(t *testing.T, cfg *config.Config, n int)
}

func backends() []backend {
	return []backend{
		{
			name: config.BackendMemory,
			configure: func(_ *testing.T, cfg *config.Config, n int) {
				cfg.Remote.SeedCount = n
			},
		},
		{
			name: config.BackendHTTP,
			configure: func(t *testing.T, cfg *config.Config, n int) {
				srv := testutil.NewDummyJSONServer(t, memcatalog.New(memcatalog.Seed(n)...))
				cfg.Remote.BaseURL = srv.URL
			},
		},
		{
			name: config.BackendSpanner,
			configure: func(t *testing.T, cfg *config.Config, n int) {
				client, cleanup := testutil.SetupSpannerTest(t)
				t.Cleanup(cleanup)
				require.NoError(t, spannercatalog.New(client).Seed(context.Background(), memcatalog.Seed(n)))
				testutil.AssertRowCount(t, client, "catalog_products", n)
				cfg.SpannerDB = testutil.GetTestSpannerDB()
			},
		},
	}
}

// setupTest wires the whole service against b with n remote products.
func setupTest(t *testing.T, b backend, n int) *services.ServiceOptions {
	t.Helper()

	cfg := &config.Config{
		Environment: logx.Development,
		PageSize:    controller.DefaultPageSize,
		LocalIDBase: 1_000_000,
		Remote:      config.RemoteConfig{Backend: b.name},
	}
	b.configure(t, cfg, n)
	require.NoError(t, cfg.Validate())

	opts, err := services.NewServiceOptions(ctx(), cfg)
	require.NoError(t, err)
	t.Cleanup(opts.Close)

	return opts
}

// openView opens a view and returns its controller.
func openView(t *testing.T, opts *services.ServiceOptions) *controller.Controller {
	t.Helper()

	id, view, err := opts.Registry.Open(ctx())
	require.NoError(t, err)
	require.Equal(t, controller.StatusReady, view.Status, "first fetch failed: %v", view.Err)

	c, err := opts.Registry.Get(id)
	require.NoError(t, err)
	return c
}

func itemIDs(v controller.View) []int64 {
	out := make([]int64, 0, len(v.Items()))
	for _, p := range v.Items() {
		out = append(out, p.ID())
	}
	return out
}

// ctx returns a context for testing.
func ctx() context.Context {
	return context.Background()
}
