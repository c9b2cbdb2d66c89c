package domain

import "strings"

// SearchFilter selects products by a case-insensitive substring of their
// title, description, category or brand. An empty term matches everything.
type SearchFilter struct {
	Term string
}

// IsEmpty reports a filter that matches every product.
func (f SearchFilter) IsEmpty() bool {
	return f.Term == ""
}

// Matches reports whether the product satisfies the filter.
func (f SearchFilter) Matches(p *Product) bool {
	if f.IsEmpty() {
		return true
	}
	term := strings.ToLower(f.Term)
	for _, field := range []string{p.Title(), p.Description(), p.Category(), p.Brand()} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
