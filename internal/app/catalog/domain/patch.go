package domain

// Patch is a partial edit of a product. Only the fields set through its With*
// methods are applied; the change tracker records which ones.
type Patch struct {
	title         *string
	description   *string
	brand         *string
	category      *string
	thumbnail     *string
	originalPrice *Money
	discount      *Percent
	rating        *float64
	stock         *int64

	changes *ChangeTracker
}

// NewPatch creates an empty patch.
func NewPatch() *Patch {
	return &Patch{changes: NewChangeTracker()}
}

func (p *Patch) WithTitle(v string) *Patch {
	p.title = &v
	p.changes.MarkDirty(FieldTitle)
	return p
}

func (p *Patch) WithDescription(v string) *Patch {
	p.description = &v
	p.changes.MarkDirty(FieldDescription)
	return p
}

func (p *Patch) WithBrand(v string) *Patch {
	p.brand = &v
	p.changes.MarkDirty(FieldBrand)
	return p
}

func (p *Patch) WithCategory(v string) *Patch {
	p.category = &v
	p.changes.MarkDirty(FieldCategory)
	return p
}

func (p *Patch) WithThumbnail(v string) *Patch {
	p.thumbnail = &v
	p.changes.MarkDirty(FieldThumbnail)
	return p
}

func (p *Patch) WithOriginalPrice(v *Money) *Patch {
	p.originalPrice = v.Copy()
	p.changes.MarkDirty(FieldOriginalPrice)
	return p
}

func (p *Patch) WithDiscountPercentage(v *Percent) *Patch {
	p.discount = v.Copy()
	p.changes.MarkDirty(FieldDiscount)
	return p
}

func (p *Patch) WithRating(v float64) *Patch {
	p.rating = &v
	p.changes.MarkDirty(FieldRating)
	return p
}

func (p *Patch) WithStock(v int64) *Patch {
	p.stock = &v
	p.changes.MarkDirty(FieldStock)
	return p
}

// IsEmpty reports a patch without any field set.
func (p *Patch) IsEmpty() bool {
	return !p.changes.HasChanges()
}

// Changes exposes the fields this patch touches.
func (p *Patch) Changes() *ChangeTracker {
	return p.changes
}
