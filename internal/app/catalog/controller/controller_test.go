package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/invcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/invcat-service/internal/app/catalog/localstore"
	"github.com/light-bringer/invcat-service/internal/app/catalog/pager"
	"github.com/light-bringer/invcat-service/internal/app/catalog/remote/memcatalog"
	"github.com/light-bringer/invcat-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/invcat-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/invcat-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/invcat-service/internal/pkg/clock"
)

// gatedSource holds fetches of gated pages until released and can be switched to fail.
type gatedSource struct {
	inner PageSource

	mu      sync.Mutex
	gates   map[int]chan struct{}
	entered chan int

	fail  atomic.Bool
	calls atomic.Int64
}

func newGatedSource(inner PageSource) *gatedSource {
	return &gatedSource{
		inner:   inner,
		gates:   make(map[int]chan struct{}),
		entered: make(chan int, 16),
	}
}

func (g *gatedSource) gate(pageIndex int) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch := make(chan struct{})
	g.gates[pageIndex] = ch
	return ch
}

func (g *gatedSource) GetPage(ctx context.Context, req *pager.Request) (*domain.CatalogPage, error) {
	g.calls.Add(1)

	g.mu.Lock()
	gate := g.gates[req.PageIndex]
	delete(g.gates, req.PageIndex)
	g.mu.Unlock()

	if gate != nil {
		g.entered <- req.PageIndex
		<-gate
	}
	if g.fail.Load() {
		return nil, fmt.Errorf("%w: upstream returned 503", domain.ErrRemoteUnavailable)
	}
	return g.inner.GetPage(ctx, req)
}

// flakyRemote forwards to a catalog and fails every mutation while down is set.
type flakyRemote struct {
	*memcatalog.Catalog
	down atomic.Bool
}

func (r *flakyRemote) Update(ctx context.Context, id int64, update *contracts.RemoteUpdate) (*contracts.RawProduct, error) {
	if r.down.Load() {
		return nil, errors.New("upstream returned 503")
	}
	return r.Catalog.Update(ctx, id, update)
}

func (r *flakyRemote) Delete(ctx context.Context, id int64) error {
	if r.down.Load() {
		return errors.New("upstream returned 503")
	}
	return r.Catalog.Delete(ctx, id)
}

type fixture struct {
	engine *Engine
	source *gatedSource
	store  *localstore.Store
	remote *memcatalog.Catalog
	flaky  *flakyRemote
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	seed := memcatalog.Seed(30)
	for _, id := range []int64{5, 12, 27} {
		seed[id-1].Title = "Galaxy Handset " + seed[id-1].Title
	}

	clk := clock.NewFake(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	ids := domain.NewIdentifierAllocator(1001)
	store := localstore.New(ids, clk)
	remote := memcatalog.New(seed...)
	source := newGatedSource(pager.New(store, remote, ids))
	flaky := &flakyRemote{Catalog: remote}

	engine := NewEngine(Deps{
		Pages:  source,
		Store:  store,
		Create: create_product.NewInteractor(store),
		Update: update_product.NewInteractor(store, flaky, clk),
		Delete: delete_product.NewInteractor(store, flaky),
	})

	return &fixture{engine: engine, source: source, store: store, remote: remote, flaky: flaky}
}

func localFields(title string) domain.Fields {
	return domain.Fields{
		Details:            domain.Details{Title: title, Category: "home", Rating: 4, Stock: 2},
		OriginalPrice:      domain.NewMoneyFromFloat(100),
		DiscountPercentage: domain.MustPercent(25),
	}
}

func itemIDs(v View) []int64 {
	out := make([]int64, 0, len(v.Items()))
	for _, p := range v.Items() {
		out = append(out, p.ID())
	}
	return out
}

func TestController_InitialState(t *testing.T) {
	f := newFixture(t)
	c := f.engine.NewController(0)

	v := c.View()
	assert.Equal(t, StatusIdle, v.Status)
	assert.Equal(t, 1, v.PageIndex)
	assert.Equal(t, DefaultPageSize, v.PageSize)
	assert.Nil(t, v.Page)
	assert.Equal(t, 0, v.TotalPages())
	assert.Equal(t, int64(0), f.source.calls.Load())
}

func TestController_Navigation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.engine.NewController(6)

	_, _, err := c.CreateProduct(ctx, localFields("Local Kettle"))
	require.NoError(t, err)
	_, _, err = c.CreateProduct(ctx, localFields("Local Toaster"))
	require.NoError(t, err)

	v := c.Refresh(ctx)
	assert.Equal(t, StatusReady, v.Status)
	assert.Equal(t, []int64{1001, 1002, 1, 2, 3, 4}, itemIDs(v))
	assert.Equal(t, 32, v.TotalCount())
	assert.Equal(t, 6, v.TotalPages())

	v, err = c.GotoPage(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, StatusReady, v.Status)
	assert.Equal(t, 2, v.PageIndex)
	assert.Equal(t, []int64{5, 6, 7, 8, 9, 10}, itemIDs(v))

	v = c.Search(ctx, "galaxy")
	assert.Equal(t, 1, v.PageIndex, "search goes back to page 1")
	assert.Equal(t, "galaxy", v.Term)
	assert.Equal(t, []int64{5, 12, 27}, itemIDs(v))
	assert.Equal(t, 3, v.TotalCount())

	v = c.Search(ctx, "")
	assert.Equal(t, 32, v.TotalCount())
}

func TestController_GotoPage_Invalid(t *testing.T) {
	f := newFixture(t)
	c := f.engine.NewController(6)

	v, err := c.GotoPage(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidPage)
	assert.Equal(t, StatusIdle, v.Status)
	assert.Equal(t, int64(0), f.source.calls.Load())
}

func TestController_StaleFetchIsDropped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.engine.NewController(6)

	release := f.source.gate(1)

	// page 1 fetch is issued first and stalls
	done := make(chan View, 1)
	go func() { done <- c.Refresh(ctx) }()
	require.Equal(t, 1, <-f.source.entered)

	// page 2 is requested later and completes first
	v, err := c.GotoPage(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, StatusReady, v.Status)
	assert.Equal(t, []int64{7, 8, 9, 10, 11, 12}, itemIDs(v))

	// the late page 1 result must not replace page 2
	close(release)
	stale := <-done
	assert.Equal(t, 2, stale.Page.PageIndex)

	final := c.View()
	assert.Equal(t, StatusReady, final.Status)
	assert.Equal(t, 2, final.PageIndex)
	assert.Equal(t, 2, final.Page.PageIndex)
	assert.Equal(t, []int64{7, 8, 9, 10, 11, 12}, itemIDs(final))
}

func TestController_EarlierFetchCompletingFirstKeepsFetching(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.engine.NewController(6)

	release := f.source.gate(2)

	done := make(chan View, 1)
	go func() {
		v, _ := c.GotoPage(ctx, 2)
		done <- v
	}()
	require.Equal(t, 2, <-f.source.entered)

	// a newer fetch of page 3 is issued while page 2 is in flight
	release3 := f.source.gate(3)
	done3 := make(chan View, 1)
	go func() {
		v, _ := c.GotoPage(ctx, 3)
		done3 <- v
	}()
	require.Equal(t, 3, <-f.source.entered)

	close(release)
	v := <-done
	assert.Equal(t, StatusFetching, v.Status, "a newer request is still in flight")
	assert.Equal(t, 2, v.Page.PageIndex)

	close(release3)
	v = <-done3
	assert.Equal(t, StatusReady, v.Status)
	assert.Equal(t, 3, v.Page.PageIndex)
}

func TestController_FetchFailureKeepsLastPage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.engine.NewController(6)

	v := c.Refresh(ctx)
	require.Equal(t, StatusReady, v.Status)

	f.source.fail.Store(true)
	v, err := c.GotoPage(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, StatusError, v.Status)
	assert.ErrorIs(t, v.Err, domain.ErrRemoteUnavailable)
	assert.Equal(t, 2, v.PageIndex)
	require.NotNil(t, v.Page)
	assert.Equal(t, 1, v.Page.PageIndex, "last rendered page is kept")

	f.source.fail.Store(false)
	v = c.Refresh(ctx)
	assert.Equal(t, StatusReady, v.Status)
	assert.NoError(t, v.Err)
	assert.Equal(t, 2, v.Page.PageIndex)
}

func TestController_CreateProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.engine.NewController(6)
	c.Refresh(ctx)

	p, v, err := c.CreateProduct(ctx, localFields("Desk Lamp"))
	require.NoError(t, err)
	assert.Equal(t, "75.00", p.Price().String())
	assert.Equal(t, StatusReady, v.Status)
	assert.Equal(t, p.ID(), v.Items()[0].ID())
	assert.Equal(t, 31, v.TotalCount())

	calls := f.source.calls.Load()
	_, _, err = c.CreateProduct(ctx, localFields(""))
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	assert.Equal(t, calls, f.source.calls.Load(), "failed mutation does not refetch")
}

func TestController_EditProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("local discount to 100 zeroes price", func(t *testing.T) {
		f := newFixture(t)
		c := f.engine.NewController(6)
		p, _, err := c.CreateProduct(ctx, localFields("Desk Lamp"))
		require.NoError(t, err)

		edited, v, err := c.EditProduct(ctx, p.ID(), domain.NewPatch().WithDiscountPercentage(domain.MustPercent(100)))
		require.NoError(t, err)
		assert.True(t, edited.Price().IsZero())
		assert.Equal(t, "100.00", edited.OriginalPrice().String())

		shown := v.Items()[0]
		assert.Equal(t, p.ID(), shown.ID())
		assert.True(t, shown.Price().IsZero())
	})

	t.Run("remote product on page is forwarded and page refetched", func(t *testing.T) {
		f := newFixture(t)
		c := f.engine.NewController(6)
		c.Refresh(ctx)

		_, v, err := c.EditProduct(ctx, 2, domain.NewPatch().WithTitle("Renamed Remote"))
		require.NoError(t, err)
		assert.Equal(t, "Renamed Remote", v.Items()[1].Title())

		stored, _ := f.remote.Get(2)
		assert.Equal(t, "Renamed Remote", stored.Title)
	})

	t.Run("remote product off page is not found", func(t *testing.T) {
		f := newFixture(t)
		c := f.engine.NewController(6)
		c.Refresh(ctx)
		calls := f.source.calls.Load()

		_, _, err := c.EditProduct(ctx, 20, domain.NewPatch().WithTitle("x"))
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		assert.Equal(t, calls, f.source.calls.Load())
	})
}

func TestController_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.engine.NewController(6)

	l1, _, err := c.CreateProduct(ctx, localFields("Local Kettle"))
	require.NoError(t, err)
	l2, _, err := c.CreateProduct(ctx, localFields("Local Toaster"))
	require.NoError(t, err)

	v, err := c.DeleteProduct(ctx, l1.ID())
	require.NoError(t, err)
	assert.Equal(t, []int64{l2.ID(), 1, 2, 3, 4, 5}, itemIDs(v))
	assert.Equal(t, 31, v.TotalCount())

	v, err = c.GotoPage(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{6, 7, 8, 9, 10, 11}, itemIDs(v))

	_, err = c.DeleteProduct(ctx, l1.ID())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	v, err = c.DeleteProduct(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, []int64{6, 7, 9, 10, 11, 12}, itemIDs(v))
	assert.Equal(t, 30, v.TotalCount())
}

func TestController_RemoteMutationFailureChangesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.engine.NewController(6)

	before := c.Refresh(ctx)
	require.Equal(t, StatusReady, before.Status)
	fetches := f.source.calls.Load()
	lists := f.remote.ListCalls()

	f.flaky.down.Store(true)

	_, v, err := c.EditProduct(ctx, 2, domain.NewPatch().WithTitle("Renamed Remote"))
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	assert.Equal(t, StatusReady, v.Status)
	assert.Same(t, before.Page, v.Page)
	assert.Equal(t, 30, v.TotalCount())

	v, err = c.DeleteProduct(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	assert.Equal(t, StatusReady, v.Status)
	assert.Same(t, before.Page, v.Page)
	assert.Equal(t, itemIDs(before), itemIDs(v))
	assert.Equal(t, 30, v.TotalCount())

	assert.Equal(t, fetches, f.source.calls.Load(), "failed mutation does not refetch")
	assert.Equal(t, lists, f.remote.ListCalls())

	stored, ok := f.remote.Get(2)
	require.True(t, ok)
	assert.NotEqual(t, "Renamed Remote", stored.Title)
}

func TestController_Subscribe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.engine.NewController(6)

	var (
		mu       sync.Mutex
		statuses []Status
	)
	unsubscribe := c.Subscribe(func(v View) {
		mu.Lock()
		defer mu.Unlock()
		statuses = append(statuses, v.Status)
	})

	c.Refresh(ctx)
	mu.Lock()
	assert.Equal(t, []Status{StatusFetching, StatusReady}, statuses)
	mu.Unlock()

	unsubscribe()
	c.Refresh(ctx)
	mu.Lock()
	assert.Len(t, statuses, 2)
	mu.Unlock()
}

func TestController_ViewsShareLocalRecords(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.engine.NewController(6)
	b := f.engine.NewController(6)

	p, _, err := a.CreateProduct(ctx, localFields("Shared Lamp"))
	require.NoError(t, err)

	v := b.Refresh(ctx)
	assert.Equal(t, p.ID(), v.Items()[0].ID())
}

func TestEngine_CoalescesIdenticalFetches(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.engine.NewController(6)
	b := f.engine.NewController(6)

	release := f.source.gate(1)

	var wg sync.WaitGroup
	views := make([]View, 2)
	for i, c := range []*Controller{a, b} {
		wg.Add(1)
		go func(i int, c *Controller) {
			defer wg.Done()
			views[i] = c.Refresh(ctx)
		}(i, c)
	}

	require.Equal(t, 1, <-f.source.entered)
	// give the second view time to join the in-flight fetch
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), f.source.calls.Load())
	assert.Equal(t, itemIDs(views[0]), itemIDs(views[1]))
	assert.NotSame(t, views[0].Page, views[1].Page, "each view owns its page")
}

func TestController_CancelledFetchReportsError(t *testing.T) {
	f := newFixture(t)
	c := f.engine.NewController(6)

	ctx, cancel := context.WithCancel(context.Background())
	release := f.source.gate(1)
	defer close(release)

	done := make(chan View, 1)
	go func() { done <- c.Refresh(ctx) }()
	<-f.source.entered
	cancel()

	v := <-done
	assert.Equal(t, StatusError, v.Status)
	assert.ErrorIs(t, v.Err, context.Canceled)
}
