package contracts

import (
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
)

// LocalStore holds the products authored in this process. Every returned
// product is a copy.
type LocalStore interface {
	Insert(fields domain.Fields) (*domain.Product, error)
	Update(id int64, patch *domain.Patch) (*domain.Product, error)
	Delete(id int64) error
	Get(id int64) (*domain.Product, bool)
	Search(filter domain.SearchFilter) []*domain.Product
	Count(filter domain.SearchFilter) int
	Version() uint64
}
