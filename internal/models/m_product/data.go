package m_product

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the catalog_products table.
// Price holds the discounted price; the original price is not stored.
type Data struct {
	ProductID       int64               `spanner:"product_id"`
	Title           string              `spanner:"title"`
	Description     string              `spanner:"description"`
	Brand           string              `spanner:"brand"`
	Category        string              `spanner:"category"`
	Thumbnail       string              `spanner:"thumbnail"`
	Price           big.Rat             `spanner:"price"`
	DiscountPercent spanner.NullNumeric `spanner:"discount_percent"`
	Rating          float64             `spanner:"rating"`
	Stock           int64               `spanner:"stock"`
	CreatedAt       time.Time           `spanner:"created_at"`
	UpdatedAt       time.Time           `spanner:"updated_at"`
}
