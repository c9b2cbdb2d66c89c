package domain

// CatalogPage is one rendered page of the merged catalog. A new page is built
// for every fetch; pages are never patched after the fact.
type CatalogPage struct {
	Items      []*Product
	TotalCount int
	PageIndex  int
	PageSize   int
}

// TotalPages returns ceil(TotalCount / PageSize).
func (p *CatalogPage) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

// Find returns the item with the given id if it is on this page.
func (p *CatalogPage) Find(id int64) (*Product, bool) {
	for _, item := range p.Items {
		if item.ID() == id {
			return item.Clone(), true
		}
	}
	return nil, false
}

// Clone returns a copy whose items are copies.
func (p *CatalogPage) Clone() *CatalogPage {
	items := make([]*Product, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, item.Clone())
	}
	return &CatalogPage{
		Items:      items,
		TotalCount: p.TotalCount,
		PageIndex:  p.PageIndex,
		PageSize:   p.PageSize,
	}
}
