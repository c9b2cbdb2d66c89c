package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/invcat-service/internal/app/catalog/pager"
	"github.com/light-bringer/invcat-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/invcat-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/invcat-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/invcat-service/internal/pkg/logx"
	"github.com/light-bringer/invcat-service/internal/pkg/sequence"
)

// Controller holds the navigation state of one catalog view and turns intents
// into page fetches. Every intent ends with exactly one fresh fetch; the
// rendered page is replaced, never patched.
//
// Fetches are numbered. A result is applied only if no later fetch has
// completed, so the last issued intent wins whatever the completion order.
type Controller struct {
	engine *Engine

	mu        sync.Mutex
	pageIndex int
	pageSize  int
	term      string
	status    Status
	page      *domain.CatalogPage
	err       error
	listeners map[int]func(View)
	nextSub   int

	issued    sequence.Sequencer
	completed sequence.Watermark
}

// NewController creates an idle controller on page 1 with an empty filter.
func (e *Engine) NewController(pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{
		engine:    e,
		pageIndex: 1,
		pageSize:  pageSize,
		status:    StatusIdle,
		listeners: make(map[int]func(View)),
	}
}

// View returns a snapshot of the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Subscribe registers fn to receive every new view. The returned function
// removes the subscription.
func (c *Controller) Subscribe(fn func(View)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.listeners[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Search filters the catalog by term and goes back to page 1.
func (c *Controller) Search(ctx context.Context, term string) View {
	return c.navigate(ctx, func() {
		c.term = term
		c.pageIndex = 1
	})
}

// GotoPage moves to page n (1-based).
func (c *Controller) GotoPage(ctx context.Context, n int) (View, error) {
	if n < 1 {
		return c.View(), fmt.Errorf("%w: page index %d", domain.ErrInvalidPage, n)
	}
	return c.navigate(ctx, func() {
		c.pageIndex = n
	}), nil
}

// Refresh fetches the current page again.
func (c *Controller) Refresh(ctx context.Context) View {
	return c.navigate(ctx, func() {})
}

// CreateProduct adds a local product, then refreshes the current page.
func (c *Controller) CreateProduct(ctx context.Context, fields domain.Fields) (*domain.Product, View, error) {
	product, err := c.engine.deps.Create.Execute(ctx, &create_product.Request{Fields: fields})
	if err != nil {
		return nil, c.View(), err
	}
	c.engine.mutated()

	logx.Debug().Int64("product_id", product.ID()).Msg("local product created")
	return product, c.Refresh(ctx), nil
}

// EditProduct edits a local product, or a remote product on the rendered page,
// then refreshes the current page.
func (c *Controller) EditProduct(ctx context.Context, id int64, patch *domain.Patch) (*domain.Product, View, error) {
	product, err := c.engine.deps.Update.Execute(ctx, &update_product.Request{
		ProductID: id,
		Patch:     patch,
		Rendered:  c.renderedPage(),
	})
	if err != nil {
		return nil, c.View(), err
	}
	c.engine.mutated()

	logx.Debug().Int64("product_id", id).Str("origin", string(product.Origin())).Msg("product edited")
	return product, c.Refresh(ctx), nil
}

// DeleteProduct deletes a local product, or a remote product on the rendered
// page, then refreshes the current page.
func (c *Controller) DeleteProduct(ctx context.Context, id int64) (View, error) {
	err := c.engine.deps.Delete.Execute(ctx, &delete_product.Request{
		ProductID: id,
		Rendered:  c.renderedPage(),
	})
	if err != nil {
		return c.View(), err
	}
	c.engine.mutated()

	logx.Debug().Int64("product_id", id).Msg("product deleted")
	return c.Refresh(ctx), nil
}

// navigate applies a state change, issues a fetch for the resulting state and
// waits for it.
func (c *Controller) navigate(ctx context.Context, change func()) View {
	c.mu.Lock()
	change()
	seq := c.issued.Next()
	req := &pager.Request{
		PageIndex: c.pageIndex,
		PageSize:  c.pageSize,
		Filter:    domain.SearchFilter{Term: c.term},
	}
	c.status = StatusFetching
	view := c.viewLocked()
	listeners := c.listenersLocked()
	c.mu.Unlock()

	notify(listeners, view)

	page, err := c.engine.getPage(ctx, req)
	return c.complete(seq, req, page, err)
}

func (c *Controller) complete(seq uint64, req *pager.Request, page *domain.CatalogPage, err error) View {
	c.mu.Lock()

	if !c.completed.Advance(seq) {
		view := c.viewLocked()
		c.mu.Unlock()

		logx.Debug().
			Uint64("seq", seq).
			Int("page", req.PageIndex).
			Str("term", req.Filter.Term).
			Msg("dropping stale catalog page")
		return view
	}

	latest := seq == c.issued.Last()
	if err != nil {
		logx.Warn().Err(err).
			Uint64("seq", seq).
			Int("page", req.PageIndex).
			Str("term", req.Filter.Term).
			Msg("catalog page fetch failed")

		// The last rendered page stays visible
		if latest {
			c.status = StatusError
			c.err = err
		}
	} else {
		c.page = page
		if latest {
			c.status = StatusReady
			c.err = nil
		}
	}

	view := c.viewLocked()
	listeners := c.listenersLocked()
	c.mu.Unlock()

	notify(listeners, view)
	return view
}

func (c *Controller) renderedPage() *domain.CatalogPage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

func (c *Controller) viewLocked() View {
	return View{
		Status:    c.status,
		PageIndex: c.pageIndex,
		PageSize:  c.pageSize,
		Term:      c.term,
		Page:      c.page,
		Err:       c.err,
	}
}

func (c *Controller) listenersLocked() []func(View) {
	listeners := make([]func(View), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	return listeners
}

func notify(listeners []func(View), view View) {
	for _, fn := range listeners {
		fn(view)
	}
}
