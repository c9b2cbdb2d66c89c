package create_product

import (
	"context"

	"github.com/light-bringer/invcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
)

// Request contains the data to create a local product.
type Request struct {
	Fields domain.Fields
}

// Interactor handles the create product use case. Created products live only
// in the local store; the remote catalog is never written.
type Interactor struct {
	store contracts.LocalStore
}

// NewInteractor creates a new create product interactor.
func NewInteractor(store contracts.LocalStore) *Interactor {
	return &Interactor{store: store}
}

// Execute validates the fields and inserts the product.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return i.store.Insert(req.Fields)
}
