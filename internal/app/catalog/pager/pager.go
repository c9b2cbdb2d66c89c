package pager

import (
	"context"
	"fmt"

	"github.com/light-bringer/invcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
)

// Request asks for one page of the merged catalog.
type Request struct {
	PageIndex int // 1-based
	PageSize  int
	Filter    domain.SearchFilter
}

// Validate checks the page arguments.
func (r *Request) Validate() error {
	if r.PageIndex < 1 {
		return fmt.Errorf("%w: page index %d", domain.ErrInvalidPage, r.PageIndex)
	}
	if r.PageSize < 1 {
		return fmt.Errorf("%w: page size %d", domain.ErrInvalidPage, r.PageSize)
	}
	return nil
}

// Pager merges local records and remote pages into one page-stable sequence.
type Pager struct {
	store  contracts.LocalStore
	remote contracts.RemoteCatalog
	ids    *domain.IdentifierAllocator
}

// New creates a Pager.
func New(store contracts.LocalStore, remote contracts.RemoteCatalog, ids *domain.IdentifierAllocator) *Pager {
	return &Pager{
		store:  store,
		remote: remote,
		ids:    ids,
	}
}

// GetPage builds a fresh page. Local records matching the filter come first in
// insertion order, followed by remote records; TotalCount counts both.
func (p *Pager) GetPage(ctx context.Context, req *Request) (*domain.CatalogPage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	local := p.store.Search(req.Filter)
	window := ComputeWindow(req.PageIndex, req.PageSize, len(local))

	// Always fetched, even for a page made entirely of local records: the
	// remote total is part of the page
	remotePage, err := p.remote.List(ctx, contracts.ListQuery{
		Skip:  window.RemoteSkip,
		Limit: req.PageSize,
		Term:  req.Filter.Term,
	})
	if err != nil {
		return nil, contracts.RemoteError("list remote catalog", err)
	}

	items := make([]*domain.Product, 0, req.PageSize)
	items = append(items, local[window.LocalStart:window.LocalEnd]...)

	for _, raw := range remotePage.Items {
		p.ids.Observe(raw.ID)
		if len(items) < req.PageSize {
			items = append(items, raw.ToProduct())
		}
	}

	return &domain.CatalogPage{
		Items:      items,
		TotalCount: remotePage.Total + len(local),
		PageIndex:  req.PageIndex,
		PageSize:   req.PageSize,
	}, nil
}
