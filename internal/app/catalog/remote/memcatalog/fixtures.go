package memcatalog

import (
	"fmt"

	"github.com/light-bringer/invcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
)

var fixtureCategories = []string{"beauty", "fragrances", "furniture", "groceries", "smartphones"}

// Seed generates n remote products with ids 1..n. Every fifth product is a
// smartphone, every third carries a discount.
func Seed(n int) []*contracts.RawProduct {
	products := make([]*contracts.RawProduct, 0, n)
	for i := 1; i <= n; i++ {
		discount := domain.ZeroPercent()
		if i%3 == 0 {
			discount = domain.MustPercent(float64(i%20) + 0.5)
		}
		products = append(products, &contracts.RawProduct{
			ID: int64(i),
			Details: domain.Details{
				Title:       fmt.Sprintf("Remote Item %02d", i),
				Description: fmt.Sprintf("Catalog entry number %d", i),
				Brand:       fmt.Sprintf("Brand%c", 'A'+rune(i%4)),
				Category:    fixtureCategories[i%len(fixtureCategories)],
				Thumbnail:   fmt.Sprintf("https://cdn.example.com/products/%d/thumbnail.png", i),
				Rating:      float64(i%50) / 10,
				Stock:       int64(i * 3),
			},
			Price:              domain.NewMoneyFromFloat(float64(i) + 0.99),
			DiscountPercentage: discount,
		})
	}
	return products
}
