package service

import (
	"context"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/aurelia-jewels/catalog-api/internal/catalog"
	"github.com/aurelia-jewels/catalog-api/internal/domain"
	"github.com/aurelia-jewels/catalog-api/internal/events"
	"github.com/aurelia-jewels/catalog-api/internal/repository"
)

// CatalogService is the read side of the storefront: product lookups,
// server-side filtering and the derived facet index.
type CatalogService interface {
	GetProducts(ctx context.Context) ([]*domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	GetProductsByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error)
	GetFeatured(ctx context.Context) ([]*domain.Product, error)
	GetNew(ctx context.Context) ([]*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	Filter(ctx context.Context, spec catalog.FilterSpec) ([]*domain.Product, error)
	Facets(ctx context.Context) (catalog.Facets, error)
	Close() error
}

type catalogService struct {
	repo   repository.ProductRepository
	bus    *events.EventBus[any]
	logger hclog.Logger

	facetsMu  sync.Mutex
	facets    *catalog.Facets
	changeSub events.Subscriber[any]
	wg        sync.WaitGroup
	once      sync.Once
}

func NewCatalogService(
	repo repository.ProductRepository,
	bus *events.EventBus[any],
	logger hclog.Logger,
) CatalogService {
	cs := &catalogService{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}

	cs.changeSub = bus.Subscribe()

	cs.wg.Add(1)
	go cs.handleCatalogChanges(cs.changeSub)

	return cs
}

// handleCatalogChanges drops the cached facet index whenever the product
// set changes. Facets are always recomputed whole, never patched. The
// subscriber channel is passed in so the goroutine never reads the
// struct field Close touches.
func (s *catalogService) handleCatalogChanges(sub events.Subscriber[any]) {
	defer s.wg.Done()
	for event := range sub {
		switch e := event.(type) {
		case events.ProductSaved, events.ProductDeleted, events.CatalogReloaded:
			s.logger.Debug("Catalog changed, invalidating facets", "event", e)
			s.facetsMu.Lock()
			s.facets = nil
			s.facetsMu.Unlock()
		}
	}
}

func (s *catalogService) GetProducts(ctx context.Context) ([]*domain.Product, error) {
	s.logger.Debug("Getting all products")

	products, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Unable to get products", "error", err)
		return nil, err
	}
	return products, nil
}

func (s *catalogService) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	s.logger.Debug("Getting product by ID", "id", id)

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err != domain.ErrProductNotFound {
			s.logger.Error("Unable to get the product by ID", "id", id, "error", err)
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) GetProductsByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error) {
	s.logger.Debug("Getting products by category", "category", category)

	if !domain.ValidCategory(category) {
		return nil, domain.ErrInvalidCategory
	}

	products, err := s.repo.GetByCategory(ctx, category)
	if err != nil {
		s.logger.Error("Unable to get products by category", "category", category, "error", err)
		return nil, err
	}
	return products, nil
}

func (s *catalogService) GetFeatured(ctx context.Context) ([]*domain.Product, error) {
	s.logger.Debug("Getting featured products")
	return s.repo.GetFeatured(ctx)
}

func (s *catalogService) GetNew(ctx context.Context) ([]*domain.Product, error) {
	s.logger.Debug("Getting new products")
	return s.repo.GetNew(ctx)
}

func (s *catalogService) ListCategories(ctx context.Context) ([]string, error) {
	s.logger.Debug("Listing categories")

	categories, err := s.repo.Categories(ctx)
	if err != nil {
		s.logger.Error("Unable to list categories", "error", err)
		return nil, err
	}
	return categories, nil
}

// Filter applies the spec against the full product set.
func (s *catalogService) Filter(ctx context.Context, spec catalog.FilterSpec) ([]*domain.Product, error) {
	s.logger.Debug("Filtering products", "query", spec.Encode())

	products, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Unable to get products for filtering", "error", err)
		return nil, err
	}
	return catalog.ApplyFilters(products, spec), nil
}

// Facets returns the cached facet index, recomputing it after a catalog
// change invalidated it.
func (s *catalogService) Facets(ctx context.Context) (catalog.Facets, error) {
	s.facetsMu.Lock()
	if s.facets != nil {
		f := *s.facets
		s.facetsMu.Unlock()
		return f, nil
	}
	s.facetsMu.Unlock()

	products, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Unable to get products for facets", "error", err)
		return catalog.Facets{}, err
	}

	f := catalog.ComputeFacets(products)

	s.facetsMu.Lock()
	s.facets = &f
	s.facetsMu.Unlock()

	return f, nil
}

func (s *catalogService) Close() error {
	s.once.Do(func() {
		s.logger.Info("Shutting down CatalogService...")

		s.bus.Unsubscribe(s.changeSub)
		s.wg.Wait()
		s.logger.Info("CatalogService shutdown complete.")
	})

	return nil
}
