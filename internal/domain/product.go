package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Images      []string        `json:"images"`
	Rating      float64         `json:"rating"`
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	p.Images = slices.Clone(p.Images)
	return p
}

// CloneProducts deep-copies items, keeping nil as nil.
func CloneProducts(items []Product) []Product {
	if items == nil {
		return nil
	}
	out := make([]Product, len(items))
	for i, p := range items {
		out[i] = p.Clone()
	}
	return out
}

// CategoryFacet is derived from a catalog response, never stored on its own.
type CategoryFacet struct {
	Name string
}

// FacetsFromNames keeps the server's order and drops blanks and duplicates.
func FacetsFromNames(names []string) []CategoryFacet {
	facets := make([]CategoryFacet, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		facets = append(facets, CategoryFacet{Name: n})
	}
	return facets
}
