package repository

import (
	"context"
	"errors"

	"github.com/hashicorp/go-hclog"

	"github.com/aurelia-jewels/catalog-api/internal/domain"
)

// fallbackProductRepository decorates a primary repository with a static
// fallback. Reads that fail, or come back empty, are answered from the
// fallback so the catalog never appears empty solely because of a
// backend hiccup. Writes go to the primary only.
type fallbackProductRepository struct {
	primary  ProductRepository
	fallback ProductRepository
	logger   hclog.Logger
}

// NewFallbackProductRepository composes primary with fallback.
func NewFallbackProductRepository(primary, fallback ProductRepository, logger hclog.Logger) ProductRepository {
	return &fallbackProductRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// GetAll additionally treats an empty primary result as a miss: an empty
// storefront is indistinguishable from a broken one for the visitor.
func (r *fallbackProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	products, err := r.primary.GetAll(ctx)
	if err == nil && len(products) > 0 {
		return products, nil
	}
	if err != nil {
		r.logger.Warn("Primary store failed, using fallback", "op", "GetAll", "error", err)
	}
	return r.fallback.GetAll(ctx)
}

func (r *fallbackProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := r.primary.GetByID(ctx, id)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, domain.ErrProductNotFound) {
		r.logger.Warn("Primary store failed, using fallback", "op", "GetByID", "id", id, "error", err)
	}
	return r.fallback.GetByID(ctx, id)
}

func (r *fallbackProductRepository) GetByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error) {
	return r.listWithFallback(ctx, "GetByCategory",
		func(repo ProductRepository) ([]*domain.Product, error) { return repo.GetByCategory(ctx, category) })
}

func (r *fallbackProductRepository) GetFeatured(ctx context.Context) ([]*domain.Product, error) {
	return r.listWithFallback(ctx, "GetFeatured",
		func(repo ProductRepository) ([]*domain.Product, error) { return repo.GetFeatured(ctx) })
}

func (r *fallbackProductRepository) GetNew(ctx context.Context) ([]*domain.Product, error) {
	return r.listWithFallback(ctx, "GetNew",
		func(repo ProductRepository) ([]*domain.Product, error) { return repo.GetNew(ctx) })
}

func (r *fallbackProductRepository) Categories(ctx context.Context) ([]string, error) {
	categories, err := r.primary.Categories(ctx)
	if err == nil && len(categories) > 0 {
		return categories, nil
	}
	if err != nil {
		r.logger.Warn("Primary store failed, using fallback", "op", "Categories", "error", err)
	}
	return r.fallback.Categories(ctx)
}

func (r *fallbackProductRepository) Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return r.primary.Upsert(ctx, product)
}

func (r *fallbackProductRepository) Delete(ctx context.Context, id string) error {
	return r.primary.Delete(ctx, id)
}

// listWithFallback answers subset queries from the fallback only on
// primary failure; an empty subset is a legitimate answer.
func (r *fallbackProductRepository) listWithFallback(
	ctx context.Context,
	op string,
	list func(ProductRepository) ([]*domain.Product, error),
) ([]*domain.Product, error) {
	products, err := list(r.primary)
	if err == nil {
		return products, nil
	}
	r.logger.Warn("Primary store failed, using fallback", "op", op, "error", err)
	return list(r.fallback)
}
