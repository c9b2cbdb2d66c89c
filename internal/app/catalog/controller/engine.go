package controller

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/light-bringer/invcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/invcat-service/internal/app/catalog/pager"
	"github.com/light-bringer/invcat-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/invcat-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/invcat-service/internal/app/catalog/usecases/update_product"
)

// DefaultPageSize is the page size of a view when none is configured.
const DefaultPageSize = 6

// PageSource builds catalog pages.
type PageSource interface {
	GetPage(ctx context.Context, req *pager.Request) (*domain.CatalogPage, error)
}

// Deps are the collaborators shared by every controller of a process.
type Deps struct {
	Pages  PageSource
	Store  contracts.LocalStore
	Create *create_product.Interactor
	Update *update_product.Interactor
	Delete *delete_product.Interactor
}

// Engine owns the state shared by all views: the page source, the mutation
// usecases and the in-flight fetches.
type Engine struct {
	deps Deps

	flight singleflight.Group

	// generation increases after every successful mutation, so a fetch issued
	// after a mutation never joins one issued before it
	generation atomic.Uint64
}

// NewEngine creates an Engine.
func NewEngine(deps Deps) *Engine {
	return &Engine{deps: deps}
}

// getPage fetches a page, sharing the remote call with identical concurrent
// fetches. Every caller gets its own copy of the page.
func (e *Engine) getPage(ctx context.Context, req *pager.Request) (*domain.CatalogPage, error) {
	key := fmt.Sprintf("%d|%d|%q|%d|%d",
		req.PageIndex, req.PageSize, req.Filter.Term, e.deps.Store.Version(), e.generation.Load())

	ch := e.flight.DoChan(key, func() (any, error) {
		// Detached so one caller leaving does not fail the others
		return e.deps.Pages.GetPage(context.WithoutCancel(ctx), req)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.CatalogPage).Clone(), nil
	}
}

func (e *Engine) mutated() {
	e.generation.Add(1)
}
