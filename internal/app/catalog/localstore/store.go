package localstore

import (
	"sync"

	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/invcat-service/internal/pkg/clock"
)

// Store is the in-memory, ordered record of locally authored products.
// Insertion order is display order. Products never leave the store uncopied.
type Store struct {
	mu       sync.RWMutex
	products []*domain.Product
	index    map[int64]int
	version  uint64

	ids   *domain.IdentifierAllocator
	clock clock.Clock
}

// New creates an empty store that allocates identifiers from ids.
func New(ids *domain.IdentifierAllocator, clk clock.Clock) *Store {
	return &Store{
		index: make(map[int64]int),
		ids:   ids,
		clock: clk,
	}
}

// Insert validates fields, assigns a fresh identifier and appends the product.
func (s *Store) Insert(fields domain.Fields) (*domain.Product, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := domain.NewLocalProduct(s.ids.Allocate(), fields, s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.index[product.ID()] = len(s.products)
	s.products = append(s.products, product)
	s.version++

	return product.Clone(), nil
}

// Update applies patch to the product with the given id, keeping its position.
func (s *Store) Update(id int64, patch *domain.Patch) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}

	// Apply on a copy so a rejected patch leaves the stored product untouched
	updated := s.products[i].Clone()
	if err := updated.Apply(patch, s.clock.Now()); err != nil {
		return nil, err
	}

	s.products[i] = updated
	s.version++

	return updated.Clone(), nil
}

// Delete removes the product with the given id.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return domain.ErrProductNotFound
	}

	s.products = append(s.products[:i], s.products[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.products); j++ {
		s.index[s.products[j].ID()] = j
	}
	s.version++

	return nil
}

// Get returns a copy of the product with the given id.
func (s *Store) Get(id int64) (*domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.products[i].Clone(), true
}

// Search returns copies of the matching products in insertion order.
func (s *Store) Search(filter domain.SearchFilter) []*domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if filter.Matches(p) {
			result = append(result, p.Clone())
		}
	}
	return result
}

// Count returns the number of matching products.
func (s *Store) Count(filter domain.SearchFilter) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if filter.IsEmpty() {
		return len(s.products)
	}
	n := 0
	for _, p := range s.products {
		if filter.Matches(p) {
			n++
		}
	}
	return n
}

// Version increases with every successful mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
