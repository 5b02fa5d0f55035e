package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Filter narrows a product list. The zero value of every field disables the
// corresponding predicate, so the zero Filter matches everything.
type Filter struct {
	// SearchText matches case-insensitively against name or description.
	SearchText string
	// Category matches exactly (case-sensitive).
	Category string
	// MinPrice and MaxPrice are inclusive bounds. A zero MaxPrice leaves the
	// upper bound open.
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
	// MinRating excludes products rated below it. Zero disables the predicate.
	MinRating float64
}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool {
	return f.SearchText == "" && f.Category == "" &&
		f.MinPrice.IsZero() && f.MaxPrice.IsZero() && f.MinRating == 0
}

// Apply returns the products matching every active predicate, preserving the
// relative order of the input. The input is never mutated.
func Apply(products []Product, f Filter) []Product {
	if f.IsZero() {
		out := make([]Product, len(products))
		copy(out, products)
		return out
	}

	search := strings.ToLower(f.SearchText)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !matches(p, f, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(p Product, f Filter, search string) bool {
	if search != "" &&
		!strings.Contains(strings.ToLower(p.Name), search) &&
		!strings.Contains(strings.ToLower(p.Description), search) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if p.Price.LessThan(f.MinPrice) {
		return false
	}
	if !f.MaxPrice.IsZero() && p.Price.GreaterThan(f.MaxPrice) {
		return false
	}
	if f.MinRating > 0 && p.Rating < f.MinRating {
		return false
	}
	return true
}

// Filter applies f to the full catalog.
func (c *Catalog) Filter(f Filter) []Product {
	return Apply(c.products, f)
}
