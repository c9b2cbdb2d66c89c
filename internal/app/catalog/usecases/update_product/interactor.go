package update_product

import (
	"context"

	"github.com/light-bringer/invcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/invcat-service/internal/pkg/clock"
)

// Request contains the data to edit a product.
type Request struct {
	ProductID int64
	Patch     *domain.Patch

	// Rendered is the page the edit was issued from; remote products can only
	// be edited while they are on it
	Rendered *domain.CatalogPage
}

// Interactor handles the update product use case.
type Interactor struct {
	store  contracts.LocalStore
	remote contracts.RemoteCatalog
	clock  clock.Clock
}

// NewInteractor creates a new update product interactor.
func NewInteractor(store contracts.LocalStore, remote contracts.RemoteCatalog, clock clock.Clock) *Interactor {
	return &Interactor{
		store:  store,
		remote: remote,
		clock:  clock,
	}
}

// Execute edits a local product in place, or forwards the changed fields of a
// remote product to the remote catalog. It returns the edited product.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	// 1. Local products are edited in the store
	if _, ok := i.store.Get(req.ProductID); ok {
		return i.store.Update(req.ProductID, req.Patch)
	}

	// 2. Remote products must be on the rendered page
	if req.Rendered == nil {
		return nil, domain.ErrProductNotFound
	}
	product, ok := req.Rendered.Find(req.ProductID)
	if !ok || product.IsLocal() {
		return nil, domain.ErrProductNotFound
	}

	// 3. Apply the patch to the snapshot, recomputing price as needed
	if err := product.Apply(req.Patch, i.clock.Now()); err != nil {
		return nil, err
	}

	update := contracts.NewRemoteUpdate(product)
	if update.IsEmpty() {
		return product, nil
	}

	// 4. Send only what changed
	if _, err := i.remote.Update(ctx, req.ProductID, update); err != nil {
		return nil, contracts.RemoteError("update remote product", err)
	}

	return product, nil
}
