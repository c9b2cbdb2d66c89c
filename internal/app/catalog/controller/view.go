package controller

import (
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
)

// Status is the fetch state of a view.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusFetching Status = "fetching"
	StatusReady    Status = "ready"
	StatusError    Status = "error"
)

// View is a snapshot of a controller's state.
type View struct {
	Status Status

	// Requested navigation state. It can run ahead of Page while a fetch is
	// in flight or after one failed.
	PageIndex int
	PageSize  int
	Term      string

	// Page is the last rendered page, nil before the first successful fetch
	Page *domain.CatalogPage

	// Err is the failure of the latest fetch when Status is StatusError
	Err error
}

// Items returns the products of the rendered page.
func (v View) Items() []*domain.Product {
	if v.Page == nil {
		return nil
	}
	return v.Page.Items
}

// TotalCount returns the merged local and remote count of the rendered page.
func (v View) TotalCount() int {
	if v.Page == nil {
		return 0
	}
	return v.Page.TotalCount
}

// TotalPages returns the page count of the rendered page.
func (v View) TotalPages() int {
	if v.Page == nil {
		return 0
	}
	return v.Page.TotalPages()
}
