package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelia-jewels/catalog-api/internal/domain"
)

func TestMemoryRepositorySeedIsValid(t *testing.T) {
	repo := NewMemoryProductRepository()
	v := domain.NewValidation()

	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, products)

	seen := map[string]struct{}{}
	for _, p := range products {
		require.NotEmpty(t, p.ID)
		_, dup := seen[p.ID]
		require.False(t, dup, "duplicate id %q", p.ID)
		seen[p.ID] = struct{}{}

		assert.Empty(t, v.Validate(p), "seed product %q must validate", p.ID)
		assert.False(t, p.CreatedAt.IsZero())
	}
}

func TestMemoryRepositoryGetByID(t *testing.T) {
	repo := NewMemoryProductRepository()
	ctx := context.Background()

	products, err := repo.GetAll(ctx)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, products[0].Name, got.Name)

	_, err = repo.GetByID(ctx, "no-such-id")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMemoryRepositoryUpsertInsertsAndUpdates(t *testing.T) {
	repo := NewEmptyMemoryProductRepository()
	ctx := context.Background()

	p := &domain.Product{
		ID:       "opal-ring-test",
		Name:     "Opal Ring",
		Price:    2100,
		Category: domain.CategoryRings,
	}

	saved, err := repo.Upsert(ctx, p)
	require.NoError(t, err)
	assert.False(t, saved.CreatedAt.IsZero(), "insert assigns CreatedAt")

	createdAt := saved.CreatedAt

	update := *saved
	update.Price = 1800
	update.CreatedAt = time.Time{}
	saved, err = repo.Upsert(ctx, &update)
	require.NoError(t, err)
	assert.Equal(t, 1800, saved.Price)
	assert.Equal(t, createdAt, saved.CreatedAt, "update keeps original CreatedAt")

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryRepositoryDelete(t *testing.T) {
	repo := NewEmptyMemoryProductRepository()
	ctx := context.Background()

	_, err := repo.Upsert(ctx, &domain.Product{ID: "x", Name: "X", Category: domain.CategoryStones})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "x"))
	assert.ErrorIs(t, repo.Delete(ctx, "x"), domain.ErrProductNotFound)
}

func TestMemoryRepositorySubsets(t *testing.T) {
	repo := NewEmptyMemoryProductRepository()
	ctx := context.Background()

	seedSubset := []*domain.Product{
		{ID: "r1", Name: "R1", Category: domain.CategoryRings, IsFeatured: true},
		{ID: "r2", Name: "R2", Category: domain.CategoryRings, IsNew: true},
		{ID: "n1", Name: "N1", Category: domain.CategoryNecklaces, IsFeatured: true, IsNew: true},
	}
	for _, p := range seedSubset {
		_, err := repo.Upsert(ctx, p)
		require.NoError(t, err)
	}

	rings, err := repo.GetByCategory(ctx, domain.CategoryRings)
	require.NoError(t, err)
	assert.Len(t, rings, 2)

	featured, err := repo.GetFeatured(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, 2)

	fresh, err := repo.GetNew(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"necklaces", "rings"}, categories)
}
