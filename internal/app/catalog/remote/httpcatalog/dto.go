package httpcatalog

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/invcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
)

// productDTO is the wire form of a product. Prices are decoded as decimals so
// 9.99 never passes through a binary float.
type productDTO struct {
	ID                 int64           `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Brand              string          `json:"brand"`
	Category           string          `json:"category"`
	Thumbnail          string          `json:"thumbnail"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Rating             float64         `json:"rating"`
	Stock              int64           `json:"stock"`
}

type listResponse struct {
	Products []productDTO `json:"products"`
	Total    int          `json:"total"`
	Skip     int          `json:"skip"`
	Limit    int          `json:"limit"`
}

// updateRequest is sent with only the changed fields.
type updateRequest struct {
	Title              *string      `json:"title,omitempty"`
	Description        *string      `json:"description,omitempty"`
	Brand              *string      `json:"brand,omitempty"`
	Category           *string      `json:"category,omitempty"`
	Thumbnail          *string      `json:"thumbnail,omitempty"`
	Price              *json.Number `json:"price,omitempty"`
	DiscountPercentage *json.Number `json:"discountPercentage,omitempty"`
	Rating             *float64     `json:"rating,omitempty"`
	Stock              *int64       `json:"stock,omitempty"`
}

func (d *productDTO) toRaw() (*contracts.RawProduct, error) {
	discount, err := domain.NewPercentFromRat(d.DiscountPercentage.Rat())
	if err != nil {
		return nil, fmt.Errorf("product %d discount %s: %w", d.ID, d.DiscountPercentage, err)
	}
	if d.Price.IsNegative() {
		return nil, fmt.Errorf("product %d price %s: %w", d.ID, d.Price, domain.ErrInvalidPrice)
	}

	return &contracts.RawProduct{
		ID: d.ID,
		Details: domain.Details{
			Title:       d.Title,
			Description: d.Description,
			Brand:       d.Brand,
			Category:    d.Category,
			Thumbnail:   d.Thumbnail,
			Rating:      d.Rating,
			Stock:       d.Stock,
		},
		Price:              domain.NewMoneyFromRat(d.Price.Rat()),
		DiscountPercentage: discount,
	}, nil
}

func newUpdateRequest(u *contracts.RemoteUpdate) *updateRequest {
	req := &updateRequest{
		Title:       u.Title,
		Description: u.Description,
		Brand:       u.Brand,
		Category:    u.Category,
		Thumbnail:   u.Thumbnail,
		Rating:      u.Rating,
		Stock:       u.Stock,
	}
	if u.Price != nil {
		req.Price = number(u.Price.String())
	}
	if u.DiscountPercentage != nil {
		n := json.Number(u.DiscountPercentage.Decimal().String())
		req.DiscountPercentage = &n
	}
	return req
}

// number renders a two-place decimal as a bare JSON number without trailing zeros.
func number(s string) *json.Number {
	n := json.Number(decimal.RequireFromString(s).String())
	return &n
}
