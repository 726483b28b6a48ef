package service

import (
	"context"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelia-jewels/catalog-api/internal/catalog"
	"github.com/aurelia-jewels/catalog-api/internal/domain"
	"github.com/aurelia-jewels/catalog-api/internal/events"
	"github.com/aurelia-jewels/catalog-api/internal/repository"
)

func newTestService(t *testing.T) (CatalogService, repository.ProductRepository, *events.EventBus[any]) {
	t.Helper()
	repo := repository.NewMemoryProductRepository()
	bus := events.NewEventBus[any]()
	cs := NewCatalogService(repo, bus, hclog.NewNullLogger())
	t.Cleanup(func() { cs.Close() })
	return cs, repo, bus
}

func TestCatalogServiceReads(t *testing.T) {
	cs, _, _ := newTestService(t)
	ctx := context.Background()

	products, err := cs.GetProducts(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, products)

	got, err := cs.GetProductByID(ctx, products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, products[0].ID, got.ID)

	_, err = cs.GetProductByID(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = cs.GetProductsByCategory(ctx, "watches")
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	rings, err := cs.GetProductsByCategory(ctx, domain.CategoryRings)
	require.NoError(t, err)
	for _, p := range rings {
		assert.Equal(t, domain.CategoryRings, p.Category)
	}

	categories, err := cs.ListCategories(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, categories)
}

func TestCatalogServiceFilter(t *testing.T) {
	cs, _, _ := newTestService(t)
	ctx := context.Background()

	spec := catalog.DefaultSpec()
	spec.OnlyInStock = true

	filtered, err := cs.Filter(ctx, spec)
	require.NoError(t, err)
	for _, p := range filtered {
		assert.True(t, p.InStock)
	}

	all, err := cs.Filter(ctx, catalog.DefaultSpec())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(all), len(filtered))
}

func TestCatalogServiceFacetsInvalidation(t *testing.T) {
	cs, repo, bus := newTestService(t)
	ctx := context.Background()

	before, err := cs.Facets(ctx)
	require.NoError(t, err)
	require.NotNil(t, before.PriceBounds)

	// write a product cheaper than the current lower bound, then signal
	cheap := before.PriceBounds.Min - 100
	_, err = repo.Upsert(ctx, &domain.Product{
		ID:       "bargain-stone",
		Name:     "Bargain Stone",
		Price:    cheap,
		Category: domain.CategoryStones,
	})
	require.NoError(t, err)

	bus.Publish(events.ProductSaved{ProductID: "bargain-stone"})

	assert.Eventually(t, func() bool {
		after, err := cs.Facets(ctx)
		return err == nil && after.PriceBounds != nil && after.PriceBounds.Min == cheap
	}, time.Second, 10*time.Millisecond)
}

func TestCatalogServiceImmediateClose(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	bus := events.NewEventBus[any]()
	cs := NewCatalogService(repo, bus, hclog.NewNullLogger())

	// Close right after construction must not hang, even when the
	// subscriber goroutine has not been scheduled yet.
	done := make(chan struct{})
	go func() {
		cs.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not return")
	}

	// Second Close is a no-op.
	assert.NoError(t, cs.Close())
}

func TestCatalogServiceFacetsEmptyCatalog(t *testing.T) {
	repo := repository.NewEmptyMemoryProductRepository()
	bus := events.NewEventBus[any]()
	cs := NewCatalogService(repo, bus, hclog.NewNullLogger())
	defer cs.Close()

	f, err := cs.Facets(context.Background())
	require.NoError(t, err)
	assert.Nil(t, f.PriceBounds)
}
