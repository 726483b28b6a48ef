package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aurelia-jewels/catalog-api/internal/domain"
)

// ProductRepository is the storage abstraction for the catalog. Upsert
// replaces the whole record keyed by id, inserting when the id is new.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error)
	GetFeatured(ctx context.Context) ([]*domain.Product, error)
	GetNew(ctx context.Context) ([]*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type memoryProductRepository struct {
	products []*domain.Product
	mutex    sync.RWMutex
}

// NewMemoryProductRepository creates a repository holding the bundled
// seed catalog. It doubles as the static fallback dataset: the storefront
// should never appear empty solely because an upstream store hiccuped.
func NewMemoryProductRepository() ProductRepository {
	return &memoryProductRepository{products: seedProducts()}
}

// NewEmptyMemoryProductRepository creates a repository with no records,
// useful for tests and for running without the seed catalog.
func NewEmptyMemoryProductRepository() ProductRepository {
	return &memoryProductRepository{}
}

func (r *memoryProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]*domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *memoryProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, product := range r.products {
		if product.ID == id {
			return product, nil
		}
	}

	return nil, domain.ErrProductNotFound
}

func (r *memoryProductRepository) GetByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := []*domain.Product{}
	for _, product := range r.products {
		if product.Category == category {
			out = append(out, product)
		}
	}
	return out, nil
}

func (r *memoryProductRepository) GetFeatured(ctx context.Context) ([]*domain.Product, error) {
	return r.filter(func(p *domain.Product) bool { return p.IsFeatured })
}

func (r *memoryProductRepository) GetNew(ctx context.Context) ([]*domain.Product, error) {
	return r.filter(func(p *domain.Product) bool { return p.IsNew })
}

func (r *memoryProductRepository) Categories(ctx context.Context) ([]string, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	seen := map[string]struct{}{}
	out := []string{}
	for _, product := range r.products {
		c := string(product.Category)
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *memoryProductRepository) Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID {
			if product.CreatedAt.IsZero() {
				product.CreatedAt = p.CreatedAt
			}
			r.products[i] = product
			return product, nil
		}
	}

	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	r.products = append(r.products, product)
	return product, nil
}

func (r *memoryProductRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, product := range r.products {
		if product.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}

	return domain.ErrProductNotFound
}

func (r *memoryProductRepository) filter(pred func(*domain.Product) bool) ([]*domain.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := []*domain.Product{}
	for _, product := range r.products {
		if pred(product) {
			out = append(out, product)
		}
	}
	return out, nil
}
