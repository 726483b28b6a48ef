package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelia-jewels/catalog-api/internal/domain"
)

func product(id string, mutate func(p *domain.Product)) *domain.Product {
	p := &domain.Product{
		ID:        id,
		Name:      "Product " + id,
		Price:     1000,
		Category:  domain.CategoryRings,
		InStock:   true,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if mutate != nil {
		mutate(p)
	}
	return p
}

func ids(products []*domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApplyFiltersPriceRangeInclusive(t *testing.T) {
	products := []*domain.Product{
		product("low", func(p *domain.Product) { p.Price = 500 }),
		product("mid", func(p *domain.Product) { p.Price = 1500 }),
		product("high", func(p *domain.Product) { p.Price = 2500 }),
	}

	spec := DefaultSpec()
	spec.PriceRange = &PriceRange{Min: 1000, Max: 2000}

	got := ApplyFilters(products, spec)
	assert.Equal(t, []string{"mid"}, ids(got))
}

func TestApplyFiltersSortPriceLowHigh(t *testing.T) {
	products := []*domain.Product{
		product("a", func(p *domain.Product) { p.Price = 900 }),
		product("b", func(p *domain.Product) { p.Price = 100 }),
		product("c", func(p *domain.Product) { p.Price = 500 }),
	}

	spec := DefaultSpec()
	spec.SortBy = SortPriceLowHigh

	got := ApplyFilters(products, spec)
	require.Len(t, got, 3)
	assert.Equal(t, []int{100, 500, 900}, []int{got[0].Price, got[1].Price, got[2].Price})
}

func TestApplyFiltersSearchMatchesTags(t *testing.T) {
	products := []*domain.Product{
		product("tagged", func(p *domain.Product) {
			p.Name = "Moonstone Ring"
			p.Description = "A delicate ring"
			p.Tags = []string{"silver", "minimal"}
		}),
		product("plain", func(p *domain.Product) {
			p.Name = "Gold Band"
			p.Description = "Classic gold"
		}),
	}

	spec := DefaultSpec()
	spec.SearchQuery = "silver"

	got := ApplyFilters(products, spec)
	assert.Equal(t, []string{"tagged"}, ids(got))
}

func TestApplyFiltersMultiSelectWinsOverSingleCategory(t *testing.T) {
	products := []*domain.Product{
		product("ring", nil),
		product("necklace", func(p *domain.Product) { p.Category = domain.CategoryNecklaces }),
		product("earring", func(p *domain.Product) { p.Category = domain.CategoryEarrings }),
	}

	spec := DefaultSpec()
	spec.Category = domain.CategoryNecklaces // stale single value
	spec.Categories = []domain.Category{domain.CategoryRings, domain.CategoryEarrings}

	got := ApplyFilters(products, spec)
	assert.ElementsMatch(t, []string{"ring", "earring"}, ids(got))
}

func TestApplyFiltersMaterialSubstringCaseInsensitive(t *testing.T) {
	products := []*domain.Product{
		product("silver", func(p *domain.Product) { p.Material = "925 Sterling Silver" }),
		product("gold", func(p *domain.Product) { p.Material = "18k Gold" }),
		product("mixed", func(p *domain.Product) { p.Material = "Gold-plated silver" }),
	}

	spec := DefaultSpec()
	spec.Materials = []string{"SILVER"}

	got := ApplyFilters(products, spec)
	assert.ElementsMatch(t, []string{"silver", "mixed"}, ids(got))
}

func TestApplyFiltersIdempotent(t *testing.T) {
	products := []*domain.Product{
		product("a", func(p *domain.Product) { p.Price = 300; p.InStock = false }),
		product("b", func(p *domain.Product) { p.Price = 700 }),
		product("c", func(p *domain.Product) { p.Price = 700; p.Category = domain.CategoryStones }),
		product("d", func(p *domain.Product) { p.Price = 1200 }),
	}

	specs := []FilterSpec{
		DefaultSpec(),
		{Category: domain.CategoryRings, SortBy: SortPriceLowHigh},
		{Category: domain.CategoryAll, OnlyInStock: true, SortBy: SortPopular},
		{Category: domain.CategoryAll, PriceRange: &PriceRange{Min: 500, Max: 1000}, SortBy: SortPriceHighLow},
	}

	for _, spec := range specs {
		once := ApplyFilters(products, spec)
		twice := ApplyFilters(once, spec)
		assert.Equal(t, ids(once), ids(twice), "spec %+v", spec)
	}
}

func TestApplyFiltersStockConstraintIsMonotonic(t *testing.T) {
	products := []*domain.Product{
		product("a", func(p *domain.Product) { p.InStock = false }),
		product("b", nil),
		product("c", func(p *domain.Product) { p.InStock = false; p.Price = 2000 }),
		product("d", func(p *domain.Product) { p.Price = 2000 }),
	}

	specs := []FilterSpec{
		DefaultSpec(),
		{Category: domain.CategoryAll, PriceRange: &PriceRange{Min: 0, Max: 1500}, SortBy: SortNewest},
		{Category: domain.CategoryAll, SearchQuery: "product", SortBy: SortNewest},
	}

	for _, spec := range specs {
		unconstrained := ApplyFilters(products, spec)

		constrained := spec
		constrained.OnlyInStock = true
		got := ApplyFilters(products, constrained)

		assert.LessOrEqual(t, len(got), len(unconstrained))
	}
}

func TestApplyFiltersSortStability(t *testing.T) {
	rating := func(r float64) *float64 { return &r }

	// equal sort keys throughout, relative input order must survive
	products := []*domain.Product{
		product("first", func(p *domain.Product) { p.Rating = rating(4.0) }),
		product("second", func(p *domain.Product) { p.Rating = rating(4.0) }),
		product("third", func(p *domain.Product) { p.Rating = rating(4.0) }),
		product("top", func(p *domain.Product) { p.Rating = rating(5.0) }),
		product("unrated", nil),
	}

	spec := DefaultSpec()
	spec.SortBy = SortPopular

	first := ApplyFilters(products, spec)
	second := ApplyFilters(products, spec)

	assert.Equal(t, []string{"top", "first", "second", "third", "unrated"}, ids(first))
	assert.Equal(t, ids(first), ids(second))
}

func TestApplyFiltersSortNewestDescending(t *testing.T) {
	at := func(day int) time.Time { return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC) }

	products := []*domain.Product{
		product("older", func(p *domain.Product) { p.CreatedAt = at(1) }),
		product("newest", func(p *domain.Product) { p.CreatedAt = at(20) }),
		product("middle", func(p *domain.Product) { p.CreatedAt = at(10) }),
	}

	got := ApplyFilters(products, DefaultSpec())
	assert.Equal(t, []string{"newest", "middle", "older"}, ids(got))
}

func TestApplyFiltersUnknownSortKeepsInputOrder(t *testing.T) {
	products := []*domain.Product{
		product("a", func(p *domain.Product) { p.Price = 900 }),
		product("b", func(p *domain.Product) { p.Price = 100 }),
	}

	spec := DefaultSpec()
	spec.SortBy = "best-vibes"

	got := ApplyFilters(products, spec)
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestApplyFiltersDoesNotMutateInput(t *testing.T) {
	products := []*domain.Product{
		product("a", func(p *domain.Product) { p.Price = 900 }),
		product("b", func(p *domain.Product) { p.Price = 100 }),
		product("c", func(p *domain.Product) { p.Price = 500 }),
	}

	spec := DefaultSpec()
	spec.SortBy = SortPriceLowHigh
	ApplyFilters(products, spec)

	assert.Equal(t, []string{"a", "b", "c"}, ids(products))
}

func TestApplyFiltersEmptyInput(t *testing.T) {
	spec := DefaultSpec()
	spec.OnlyInStock = true
	spec.SearchQuery = "ring"

	got := ApplyFilters(nil, spec)
	assert.Empty(t, got)
}
