package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelia-jewels/catalog-api/internal/domain"
)

var errStoreDown = errors.New("store unreachable")

// failingRepository errors on every read and records write calls.
type failingRepository struct {
	upserts int
	deletes int
}

func (f *failingRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return nil, errStoreDown
}
func (f *failingRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return nil, errStoreDown
}
func (f *failingRepository) GetByCategory(ctx context.Context, c domain.Category) ([]*domain.Product, error) {
	return nil, errStoreDown
}
func (f *failingRepository) GetFeatured(ctx context.Context) ([]*domain.Product, error) {
	return nil, errStoreDown
}
func (f *failingRepository) GetNew(ctx context.Context) ([]*domain.Product, error) {
	return nil, errStoreDown
}
func (f *failingRepository) Categories(ctx context.Context) ([]string, error) {
	return nil, errStoreDown
}
func (f *failingRepository) Upsert(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	f.upserts++
	return nil, errStoreDown
}
func (f *failingRepository) Delete(ctx context.Context, id string) error {
	f.deletes++
	return errStoreDown
}

func TestFallbackAnswersReadsWhenPrimaryFails(t *testing.T) {
	repo := NewFallbackProductRepository(
		&failingRepository{},
		NewMemoryProductRepository(),
		hclog.NewNullLogger(),
	)
	ctx := context.Background()

	products, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, products, "catalog must never appear empty on a backend hiccup")

	got, err := repo.GetByID(ctx, products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, products[0].ID, got.ID)

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, categories)

	rings, err := repo.GetByCategory(ctx, domain.CategoryRings)
	require.NoError(t, err)
	assert.NotEmpty(t, rings)
}

func TestFallbackOnEmptyPrimaryCatalog(t *testing.T) {
	repo := NewFallbackProductRepository(
		NewEmptyMemoryProductRepository(),
		NewMemoryProductRepository(),
		hclog.NewNullLogger(),
	)

	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, products)
}

func TestFallbackPrefersHealthyPrimary(t *testing.T) {
	primary := NewEmptyMemoryProductRepository()
	_, err := primary.Upsert(context.Background(), &domain.Product{
		ID: "primary-only", Name: "Primary Only", Category: domain.CategoryRings,
	})
	require.NoError(t, err)

	repo := NewFallbackProductRepository(primary, NewMemoryProductRepository(), hclog.NewNullLogger())

	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "primary-only", products[0].ID)
}

func TestFallbackWritesGoToPrimaryOnly(t *testing.T) {
	primary := &failingRepository{}
	repo := NewFallbackProductRepository(primary, NewMemoryProductRepository(), hclog.NewNullLogger())
	ctx := context.Background()

	_, err := repo.Upsert(ctx, &domain.Product{ID: "w", Name: "W", Category: domain.CategoryRings})
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, 1, primary.upserts)

	assert.ErrorIs(t, repo.Delete(ctx, "w"), errStoreDown)
	assert.Equal(t, 1, primary.deletes)
}

func TestFallbackGetByIDNotFoundAnywhere(t *testing.T) {
	repo := NewFallbackProductRepository(
		&failingRepository{},
		NewEmptyMemoryProductRepository(),
		hclog.NewNullLogger(),
	)

	_, err := repo.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
