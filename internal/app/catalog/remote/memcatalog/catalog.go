package memcatalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/light-bringer/invcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
)

// Catalog is an in-process RemoteCatalog, used as the "memory" backend and in tests.
type Catalog struct {
	mu       sync.RWMutex
	products []*contracts.RawProduct

	listCalls atomic.Int64
}

var _ contracts.RemoteCatalog = (*Catalog)(nil)

// New creates a catalog holding copies of products, in the given order.
func New(products ...*contracts.RawProduct) *Catalog {
	c := &Catalog{products: make([]*contracts.RawProduct, 0, len(products))}
	for _, p := range products {
		c.products = append(c.products, clone(p))
	}
	return c
}

// List returns the filtered products in [Skip, Skip+Limit).
func (c *Catalog) List(ctx context.Context, q contracts.ListQuery) (*contracts.RemotePage, error) {
	c.listCalls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	filter := domain.SearchFilter{Term: q.Term}
	matched := make([]*contracts.RawProduct, 0, len(c.products))
	for _, p := range c.products {
		if filter.Matches(p.ToProduct()) {
			matched = append(matched, p)
		}
	}

	start := min(max(q.Skip, 0), len(matched))
	end := len(matched)
	if q.Limit > 0 {
		end = min(start+q.Limit, len(matched))
	}

	items := make([]*contracts.RawProduct, 0, end-start)
	for _, p := range matched[start:end] {
		items = append(items, clone(p))
	}

	return &contracts.RemotePage{Items: items, Total: len(matched)}, nil
}

// Update merges update into the stored product.
func (c *Catalog) Update(ctx context.Context, id int64, update *contracts.RemoteUpdate) (*contracts.RawProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.products {
		if p.ID == id {
			update.ApplyTo(p)
			return clone(p), nil
		}
	}
	return nil, domain.ErrProductNotFound
}

// Delete removes the product with the given id.
func (c *Catalog) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, p := range c.products {
		if p.ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

// Get returns a copy of the stored product.
func (c *Catalog) Get(id int64) (*contracts.RawProduct, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID == id {
			return clone(p), true
		}
	}
	return nil, false
}

// ListCalls returns how many List calls were made.
func (c *Catalog) ListCalls() int64 {
	return c.listCalls.Load()
}

func clone(p *contracts.RawProduct) *contracts.RawProduct {
	c := *p
	if p.Price != nil {
		c.Price = p.Price.Copy()
	}
	if p.DiscountPercentage != nil {
		c.DiscountPercentage = p.DiscountPercentage.Copy()
	}
	return &c
}
