package domain

import (
	"time"
)

// Field names for change tracking
const (
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldBrand         = "brand"
	FieldCategory      = "category"
	FieldThumbnail     = "thumbnail"
	FieldPrice         = "price"
	FieldOriginalPrice = "original_price"
	FieldDiscount      = "discount_percentage"
	FieldRating        = "rating"
	FieldStock         = "stock"
)

// MaxRating is the upper bound of a product rating.
const MaxRating = 5.0

// Origin tells where the source of truth of a product lives.
type Origin string

const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

// Details are the descriptive, freely editable attributes of a product.
type Details struct {
	Title       string
	Description string
	Brand       string
	Category    string
	Thumbnail   string
	Rating      float64
	Stock       int64
}

// Fields is the input for creating a local product. Price is not part of it:
// it is derived from OriginalPrice and DiscountPercentage.
type Fields struct {
	Details
	OriginalPrice      *Money
	DiscountPercentage *Percent // nil means no discount
}

// Product is a catalog entry, either locally authored or a snapshot of a remote record.
type Product struct {
	id            int64
	details       Details
	price         *Money
	originalPrice *Money
	discount      *Percent
	origin        Origin
	createdAt     time.Time
	updatedAt     time.Time

	// Change tracking for partial remote updates
	changes *ChangeTracker
}

// NewLocalProduct creates a locally authored product and derives its price.
func NewLocalProduct(id int64, fields Fields, now time.Time) (*Product, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	discount := fields.DiscountPercentage
	if discount == nil {
		discount = ZeroPercent()
	}

	p := &Product{
		id:            id,
		details:       fields.Details,
		originalPrice: fields.OriginalPrice.Copy(),
		discount:      discount.Copy(),
		origin:        OriginLocal,
		createdAt:     now,
		updatedAt:     now,
		changes:       NewChangeTracker(),
	}
	p.price = defaultPricingCalculator.DeriveDiscountedPrice(p.originalPrice, p.discount)

	return p, nil
}

// ReconstructRemoteProduct builds a read-only snapshot of a remote record. The remote
// catalog reports only the discounted price, so the original price is derived here once.
func ReconstructRemoteProduct(id int64, details Details, price *Money, discount *Percent) *Product {
	if discount == nil {
		discount = ZeroPercent()
	}
	if price == nil {
		price = ZeroMoney()
	}

	return &Product{
		id:            id,
		details:       details,
		price:         price.Copy(),
		originalPrice: defaultPricingCalculator.RemoteOriginalPrice(price, discount),
		discount:      discount.Copy(),
		origin:        OriginRemote,
		changes:       NewChangeTracker(), // Start with clean slate
	}
}

// Validate checks the invariants of a new product.
func (f *Fields) Validate() error {
	if err := validateDetails(f.Details); err != nil {
		return err
	}
	if f.OriginalPrice == nil || f.OriginalPrice.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

func validateDetails(d Details) error {
	if d.Title == "" {
		return ErrEmptyTitle
	}
	if d.Rating < 0 || d.Rating > MaxRating {
		return ErrInvalidRating
	}
	if d.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

// Getters
func (p *Product) ID() int64                    { return p.id }
func (p *Product) Title() string                { return p.details.Title }
func (p *Product) Description() string          { return p.details.Description }
func (p *Product) Brand() string                { return p.details.Brand }
func (p *Product) Category() string             { return p.details.Category }
func (p *Product) Thumbnail() string            { return p.details.Thumbnail }
func (p *Product) Rating() float64              { return p.details.Rating }
func (p *Product) Stock() int64                 { return p.details.Stock }
func (p *Product) Details() Details             { return p.details }
func (p *Product) Price() *Money                { return p.price.Copy() }
func (p *Product) OriginalPrice() *Money        { return p.originalPrice.Copy() }
func (p *Product) DiscountPercentage() *Percent { return p.discount.Copy() }
func (p *Product) Origin() Origin               { return p.origin }
func (p *Product) IsLocal() bool                { return p.origin == OriginLocal }
func (p *Product) CreatedAt() time.Time         { return p.createdAt }
func (p *Product) UpdatedAt() time.Time         { return p.updatedAt }
func (p *Product) Changes() *ChangeTracker      { return p.changes }

// Apply applies a patch atomically: either every field is validated and set, or
// the product is left untouched. Price is recomputed when the original price or
// the discount changes; the stored original price is never re-derived from price.
func (p *Product) Apply(patch *Patch, now time.Time) error {
	if patch == nil || patch.IsEmpty() {
		return nil
	}

	details := p.details
	if patch.title != nil {
		details.Title = *patch.title
	}
	if patch.description != nil {
		details.Description = *patch.description
	}
	if patch.brand != nil {
		details.Brand = *patch.brand
	}
	if patch.category != nil {
		details.Category = *patch.category
	}
	if patch.thumbnail != nil {
		details.Thumbnail = *patch.thumbnail
	}
	if patch.rating != nil {
		details.Rating = *patch.rating
	}
	if patch.stock != nil {
		details.Stock = *patch.stock
	}
	if err := validateDetails(details); err != nil {
		return err
	}

	originalPrice := p.originalPrice
	if patch.originalPrice != nil {
		if patch.originalPrice.IsNegative() {
			return ErrInvalidPrice
		}
		originalPrice = patch.originalPrice.Copy()
	}

	discount := p.discount
	if patch.discount != nil {
		discount = patch.discount.Copy()
	}

	p.details = details
	for _, field := range patch.changes.DirtyFields() {
		p.changes.MarkDirty(field)
	}

	if patch.originalPrice != nil || patch.discount != nil {
		p.originalPrice = originalPrice
		p.discount = discount
		p.price = defaultPricingCalculator.DeriveDiscountedPrice(originalPrice, discount)
		p.changes.MarkDirty(FieldPrice)
	}

	p.updatedAt = now
	return nil
}

// Clone returns a deep copy with a clean change tracker.
func (p *Product) Clone() *Product {
	return &Product{
		id:            p.id,
		details:       p.details,
		price:         p.price.Copy(),
		originalPrice: p.originalPrice.Copy(),
		discount:      p.discount.Copy(),
		origin:        p.origin,
		createdAt:     p.createdAt,
		updatedAt:     p.updatedAt,
		changes:       NewChangeTracker(),
	}
}
