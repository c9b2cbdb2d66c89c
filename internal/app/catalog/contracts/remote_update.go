package contracts

import (
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
)

// RemoteUpdate carries only the fields of an edit; nil fields are left unchanged.
type RemoteUpdate struct {
	Title              *string
	Description        *string
	Brand              *string
	Category           *string
	Thumbnail          *string
	Price              *domain.Money
	DiscountPercentage *domain.Percent
	Rating             *float64
	Stock              *int64
}

// NewRemoteUpdate builds an update from the dirty fields of an edited product.
// The remote catalog has no original price, so a change of original price or
// discount is sent as the recomputed price.
func NewRemoteUpdate(p *domain.Product) *RemoteUpdate {
	changes := p.Changes()
	u := &RemoteUpdate{}

	if changes.Dirty(domain.FieldTitle) {
		v := p.Title()
		u.Title = &v
	}
	if changes.Dirty(domain.FieldDescription) {
		v := p.Description()
		u.Description = &v
	}
	if changes.Dirty(domain.FieldBrand) {
		v := p.Brand()
		u.Brand = &v
	}
	if changes.Dirty(domain.FieldCategory) {
		v := p.Category()
		u.Category = &v
	}
	if changes.Dirty(domain.FieldThumbnail) {
		v := p.Thumbnail()
		u.Thumbnail = &v
	}
	if changes.Dirty(domain.FieldPrice) || changes.Dirty(domain.FieldOriginalPrice) {
		u.Price = p.Price()
	}
	if changes.Dirty(domain.FieldDiscount) {
		u.DiscountPercentage = p.DiscountPercentage()
	}
	if changes.Dirty(domain.FieldRating) {
		v := p.Rating()
		u.Rating = &v
	}
	if changes.Dirty(domain.FieldStock) {
		v := p.Stock()
		u.Stock = &v
	}

	return u
}

// IsEmpty reports an update without any field.
func (u *RemoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Brand == nil &&
		u.Category == nil && u.Thumbnail == nil && u.Price == nil &&
		u.DiscountPercentage == nil && u.Rating == nil && u.Stock == nil
}

// ApplyTo merges the update into a raw product in place.
func (u *RemoteUpdate) ApplyTo(r *RawProduct) {
	if u.Title != nil {
		r.Title = *u.Title
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	if u.Brand != nil {
		r.Brand = *u.Brand
	}
	if u.Category != nil {
		r.Category = *u.Category
	}
	if u.Thumbnail != nil {
		r.Thumbnail = *u.Thumbnail
	}
	if u.Price != nil {
		r.Price = u.Price.Copy()
	}
	if u.DiscountPercentage != nil {
		r.DiscountPercentage = u.DiscountPercentage.Copy()
	}
	if u.Rating != nil {
		r.Rating = *u.Rating
	}
	if u.Stock != nil {
		r.Stock = *u.Stock
	}
}
