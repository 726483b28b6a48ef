package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/aurelia-jewels/catalog-api/internal/domain"
)

// Recognized query-string keys. Anything else is ignored.
const (
	keyCategory   = "category"
	keyCategories = "categories"
	keySearch     = "search"
	keyPriceRange = "priceRange"
	keyMaterials  = "materials"
	keyInStock    = "inStock"
	keySortBy     = "sortBy"
)

// ParseQuery decodes a raw query string into a FilterSpec. Absent keys
// resolve to the field's default, unknown keys are ignored and malformed
// values degrade silently to defaults. It never returns an error; an
// empty query string yields DefaultSpec exactly.
func ParseQuery(rawQuery string) FilterSpec {
	spec := DefaultSpec()

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return spec
	}

	if c := values.Get(keyCategory); c != "" {
		if cat := domain.Category(c); domain.ValidCategory(cat) || cat == domain.CategoryAll {
			spec.Category = cat
		}
	}

	if cs := values.Get(keyCategories); cs != "" {
		for _, c := range strings.Split(cs, ",") {
			if cat := domain.Category(strings.TrimSpace(c)); domain.ValidCategory(cat) {
				spec.Categories = append(spec.Categories, cat)
			}
		}
	}

	if pr, ok := parsePriceRange(values.Get(keyPriceRange)); ok {
		spec.PriceRange = pr
	}

	if ms := values.Get(keyMaterials); ms != "" {
		for _, m := range strings.Split(ms, ",") {
			if m = strings.TrimSpace(m); m != "" {
				spec.Materials = append(spec.Materials, m)
			}
		}
	}

	if values.Get(keyInStock) == "true" {
		spec.OnlyInStock = true
	}

	spec.SearchQuery = values.Get(keySearch)

	if sb := values.Get(keySortBy); sb != "" {
		spec.SortBy = SortOrder(sb)
	}

	return spec
}

// parsePriceRange decodes "min-max". Non-parseable input counts as
// absent, never as an error.
func parsePriceRange(s string) (*PriceRange, bool) {
	if s == "" {
		return nil, false
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return nil, false
	}
	min, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, false
	}
	max, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, false
	}
	return &PriceRange{Min: min, Max: max}, true
}

// Encode serializes the spec as a query string, emitting only the fields
// that differ from their defaults so that URLs stay short. An
// all-defaults spec encodes to the empty string. For every spec built
// from the recognized keys, ParseQuery(s.Encode()) reproduces s. The
// comma is the list separator for categories and materials, so list
// values must not contain one; ComputeFacets tokenizes composite
// material fields to keep that true for every facet-offered value.
func (s FilterSpec) Encode() string {
	values := url.Values{}

	if len(s.Categories) > 0 {
		cs := make([]string, len(s.Categories))
		for i, c := range s.Categories {
			cs[i] = string(c)
		}
		values.Set(keyCategories, strings.Join(cs, ","))
	}

	if s.Category != "" && s.Category != domain.CategoryAll {
		values.Set(keyCategory, string(s.Category))
	}

	if s.PriceRange != nil {
		values.Set(keyPriceRange, fmt.Sprintf("%d-%d", s.PriceRange.Min, s.PriceRange.Max))
	}

	if len(s.Materials) > 0 {
		values.Set(keyMaterials, strings.Join(s.Materials, ","))
	}

	if s.OnlyInStock {
		values.Set(keyInStock, "true")
	}

	if s.SearchQuery != "" {
		values.Set(keySearch, s.SearchQuery)
	}

	if s.SortBy != "" && s.SortBy != SortNewest {
		values.Set(keySortBy, string(s.SortBy))
	}

	return values.Encode()
}
