// Package catalog implements the product filtering, sorting and
// query-string state pipeline that drives the storefront grid.
package catalog

import (
	"sort"
	"strings"

	"github.com/aurelia-jewels/catalog-api/internal/domain"
)

// SortOrder selects the ordering applied after the filter stages.
type SortOrder string

const (
	SortNewest       SortOrder = "newest"
	SortPriceLowHigh SortOrder = "price-low-high"
	SortPriceHighLow SortOrder = "price-high-low"
	SortPopular      SortOrder = "popular"
)

// PriceRange is a closed interval, inclusive on both ends.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FilterSpec is the complete, serializable description of the
// storefront's active filter and sort choices.
//
// Category and Categories are intentionally redundant: Categories is the
// multi-select refinement and wins whenever it is non-empty. The UI keeps
// the two reconciled (zero selected means Category is "all", exactly one
// selected means Category equals it); the engine only honours the
// precedence rule.
type FilterSpec struct {
	Category    domain.Category   `json:"category"`
	Categories  []domain.Category `json:"categories"`
	PriceRange  *PriceRange       `json:"priceRange,omitempty"`
	Materials   []string          `json:"materials"`
	OnlyInStock bool              `json:"onlyInStock"`
	SearchQuery string            `json:"searchQuery"`
	SortBy      SortOrder         `json:"sortBy"`
}

// DefaultSpec returns the all-defaults spec, the one an empty query
// string decodes to.
func DefaultSpec() FilterSpec {
	return FilterSpec{
		Category: domain.CategoryAll,
		SortBy:   SortNewest,
	}
}

// IsDefault reports whether the spec equals the all-defaults spec.
func (s FilterSpec) IsDefault() bool {
	return (s.Category == domain.CategoryAll || s.Category == "") &&
		len(s.Categories) == 0 &&
		s.PriceRange == nil &&
		len(s.Materials) == 0 &&
		!s.OnlyInStock &&
		s.SearchQuery == "" &&
		(s.SortBy == SortNewest || s.SortBy == "")
}

// ApplyFilters narrows and orders products according to spec. It is pure:
// the input slice is never mutated and the result is always a fresh slice.
// Unknown sort orders leave the filtered list in its original relative
// order; there is no error path.
func ApplyFilters(products []*domain.Product, spec FilterSpec) []*domain.Product {
	result := make([]*domain.Product, 0, len(products))
	result = append(result, products...)

	result = filterCategory(result, spec)
	result = filterPrice(result, spec.PriceRange)
	result = filterMaterials(result, spec.Materials)
	result = filterStock(result, spec.OnlyInStock)
	result = filterSearch(result, spec.SearchQuery)

	sortProducts(result, spec.SortBy)

	return result
}

// Categories wins over the single Category value when both are set.
func filterCategory(products []*domain.Product, spec FilterSpec) []*domain.Product {
	if len(spec.Categories) > 0 {
		selected := make(map[domain.Category]struct{}, len(spec.Categories))
		for _, c := range spec.Categories {
			selected[c] = struct{}{}
		}
		return keep(products, func(p *domain.Product) bool {
			_, ok := selected[p.Category]
			return ok
		})
	}

	if spec.Category != "" && spec.Category != domain.CategoryAll {
		return keep(products, func(p *domain.Product) bool {
			return p.Category == spec.Category
		})
	}

	return products
}

func filterPrice(products []*domain.Product, pr *PriceRange) []*domain.Product {
	if pr == nil {
		return products
	}
	return keep(products, func(p *domain.Product) bool {
		return p.Price >= pr.Min && p.Price <= pr.Max
	})
}

// OR semantics: a product matches when any selected material is a
// case-insensitive substring of its material field.
func filterMaterials(products []*domain.Product, materials []string) []*domain.Product {
	if len(materials) == 0 {
		return products
	}
	return keep(products, func(p *domain.Product) bool {
		material := strings.ToLower(p.Material)
		for _, m := range materials {
			if strings.Contains(material, strings.ToLower(m)) {
				return true
			}
		}
		return false
	})
}

func filterStock(products []*domain.Product, onlyInStock bool) []*domain.Product {
	if !onlyInStock {
		return products
	}
	return keep(products, func(p *domain.Product) bool {
		return p.InStock
	})
}

func filterSearch(products []*domain.Product, query string) []*domain.Product {
	if query == "" {
		return products
	}
	q := strings.ToLower(query)
	return keep(products, func(p *domain.Product) bool {
		if strings.Contains(strings.ToLower(p.Name), q) {
			return true
		}
		if strings.Contains(strings.ToLower(p.Description), q) {
			return true
		}
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				return true
			}
		}
		return false
	})
}

// sortProducts orders in place. Sorts are stable so that equal keys keep
// their relative input order and repeated calls are byte-identical.
func sortProducts(products []*domain.Product, by SortOrder) {
	switch by {
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	case SortPriceLowHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceHighLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortPopular:
		sort.SliceStable(products, func(i, j int) bool {
			return ratingOf(products[i]) > ratingOf(products[j])
		})
	default:
		// unknown sort order, leave input order untouched
	}
}

func ratingOf(p *domain.Product) float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

func keep(products []*domain.Product, pred func(*domain.Product) bool) []*domain.Product {
	out := products[:0]
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
