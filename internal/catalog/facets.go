package catalog

import (
	"sort"
	"strings"

	"github.com/aurelia-jewels/catalog-api/internal/domain"
)

// Facets is the derived, read-only view over a product set that the
// filter UI is populated from. Values are recomputed whole on every
// product-set change rather than maintained incrementally.
type Facets struct {
	Categories []domain.Category `json:"categories"`
	Materials  []string          `json:"materials"`

	// PriceBounds is absent for an empty product set; callers treat
	// absence as "no price filtering possible", never as [0,0].
	PriceBounds *PriceRange `json:"priceBounds,omitempty"`
}

// ComputeFacets derives the distinct category list (sorted), the distinct
// material list (first-seen order) and the inclusive price bounds of the
// given product set. Composite material fields ("Rose Quartz, Gold-plated
// brass") are split into individual tokens: the comma is the query
// codec's list separator, so facet values must never contain one. The
// filter engine matches materials by substring, so each token still
// selects products carrying the composite field.
func ComputeFacets(products []*domain.Product) Facets {
	f := Facets{
		Categories: []domain.Category{},
		Materials:  []string{},
	}

	seenCategories := map[domain.Category]struct{}{}
	seenMaterials := map[string]struct{}{}

	for _, p := range products {
		if _, ok := seenCategories[p.Category]; !ok {
			seenCategories[p.Category] = struct{}{}
			f.Categories = append(f.Categories, p.Category)
		}

		for _, material := range strings.Split(p.Material, ",") {
			material = strings.TrimSpace(material)
			if material == "" {
				continue
			}
			if _, ok := seenMaterials[material]; !ok {
				seenMaterials[material] = struct{}{}
				f.Materials = append(f.Materials, material)
			}
		}

		if f.PriceBounds == nil {
			f.PriceBounds = &PriceRange{Min: p.Price, Max: p.Price}
			continue
		}
		if p.Price < f.PriceBounds.Min {
			f.PriceBounds.Min = p.Price
		}
		if p.Price > f.PriceBounds.Max {
			f.PriceBounds.Max = p.Price
		}
	}

	sort.Slice(f.Categories, func(i, j int) bool {
		return f.Categories[i] < f.Categories[j]
	})

	return f
}
