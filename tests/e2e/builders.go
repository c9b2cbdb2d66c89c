package e2e

import (
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
)

// ProductBuilder helps create local product input with a fluent interface
type ProductBuilder struct {
	title    string
	category string
	original float64
	discount float64
	rating   float64
	stock    int64
}

// NewProductBuilder creates a new builder with default values
func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		title:    "Test Product",
		category: "home-decoration",
		original: 100.00,
		rating:   4,
		stock:    10,
	}
}

// WithTitle sets the product title
func (b *ProductBuilder) WithTitle(title string) *ProductBuilder {
	b.title = title
	return b
}

// WithCategory sets the product category
func (b *ProductBuilder) WithCategory(category string) *ProductBuilder {
	b.category = category
	return b
}

// WithOriginalPrice sets the price before discount
func (b *ProductBuilder) WithOriginalPrice(price float64) *ProductBuilder {
	b.original = price
	return b
}

// WithDiscount sets the discount percentage
func (b *ProductBuilder) WithDiscount(percent float64) *ProductBuilder {
	b.discount = percent
	return b
}

// Build creates the domain.Fields
func (b *ProductBuilder) Build() domain.Fields {
	return domain.Fields{
		Details: domain.Details{
			Title:    b.title,
			Category: b.category,
			Rating:   b.rating,
			Stock:    b.stock,
		},
		OriginalPrice:      domain.NewMoneyFromFloat(b.original),
		DiscountPercentage: domain.MustPercent(b.discount),
	}
}
