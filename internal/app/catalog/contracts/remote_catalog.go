package contracts

import (
	"context"

	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
)

// RawProduct is a product as the remote catalog reports it. The remote service
// stores only the discounted price; the original price is derived on read.
type RawProduct struct {
	ID int64
	domain.Details
	Price              *domain.Money
	DiscountPercentage *domain.Percent
}

// ToProduct reconstructs the read-only domain snapshot of a remote record.
func (r *RawProduct) ToProduct() *domain.Product {
	return domain.ReconstructRemoteProduct(r.ID, r.Details, r.Price, r.DiscountPercentage)
}

// ListQuery selects a slice of the remote catalog. An empty Term lists everything.
type ListQuery struct {
	Skip  int
	Limit int
	Term  string
}

// RemotePage is one slice of the remote catalog plus the total matching count.
type RemotePage struct {
	Items []*RawProduct
	Total int
}

// RemoteCatalog is the authoritative product service.
// Implementations wrap transport failures in domain.ErrRemoteUnavailable and
// report unknown ids as domain.ErrProductNotFound.
type RemoteCatalog interface {
	// List returns the products in [Skip, Skip+Limit) of the filtered catalog
	List(ctx context.Context, q ListQuery) (*RemotePage, error)

	// Update applies a partial update and returns the product as stored remotely
	Update(ctx context.Context, id int64, update *RemoteUpdate) (*RawProduct, error)

	// Delete removes a product
	Delete(ctx context.Context, id int64) error
}
