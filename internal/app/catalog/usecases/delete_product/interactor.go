package delete_product

import (
	"context"

	"github.com/light-bringer/invcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
)

// Request identifies the product to delete.
type Request struct {
	ProductID int64

	// Rendered is the page the delete was issued from
	Rendered *domain.CatalogPage
}

// Interactor handles the delete product use case.
type Interactor struct {
	store  contracts.LocalStore
	remote contracts.RemoteCatalog
}

// NewInteractor creates a new delete product interactor.
func NewInteractor(store contracts.LocalStore, remote contracts.RemoteCatalog) *Interactor {
	return &Interactor{
		store:  store,
		remote: remote,
	}
}

// Execute removes a local product from the store, or deletes a remote product
// shown on the rendered page through the remote catalog.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if _, ok := i.store.Get(req.ProductID); ok {
		return i.store.Delete(req.ProductID)
	}

	if req.Rendered == nil {
		return domain.ErrProductNotFound
	}
	if product, ok := req.Rendered.Find(req.ProductID); !ok || product.IsLocal() {
		return domain.ErrProductNotFound
	}

	if err := i.remote.Delete(ctx, req.ProductID); err != nil {
		return contracts.RemoteError("delete remote product", err)
	}
	return nil
}
