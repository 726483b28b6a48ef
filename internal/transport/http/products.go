// Package http is the REST transport for the catalog and its admin
// write surface.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hashicorp/go-hclog"

	"github.com/aurelia-jewels/catalog-api/internal/admin"
	"github.com/aurelia-jewels/catalog-api/internal/domain"
	"github.com/aurelia-jewels/catalog-api/internal/service"
)

type ProductsHandler struct {
	catalog      service.CatalogService
	synchronizer *admin.Synchronizer
	validation   *domain.Validation
	logger       hclog.Logger
}

func NewProductsHandler(
	cs service.CatalogService,
	sync *admin.Synchronizer,
	v *domain.Validation,
	logger hclog.Logger,
) *ProductsHandler {
	return &ProductsHandler{
		catalog:      cs,
		synchronizer: sync,
		validation:   v,
		logger:       logger,
	}
}

// Get handles GET /api/products, dispatching on the action query
// parameter: all (the default), byId, byCategory, featured, new and
// categories.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	action := r.URL.Query().Get("action")

	switch action {
	case "", "all":
		products, err := h.catalog.GetProducts(ctx)
		if err != nil {
			h.storeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, products)

	case "byId":
		id := r.URL.Query().Get("id")
		if id == "" {
			respondError(w, http.StatusBadRequest, "Missing required parameter: id")
			return
		}
		product, err := h.catalog.GetProductByID(ctx, id)
		if errors.Is(err, domain.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		if err != nil {
			h.storeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, product)

	case "byCategory":
		category := r.URL.Query().Get("category")
		if category == "" {
			respondError(w, http.StatusBadRequest, "Missing required parameter: category")
			return
		}
		products, err := h.catalog.GetProductsByCategory(ctx, domain.Category(category))
		if errors.Is(err, domain.ErrInvalidCategory) {
			respondError(w, http.StatusBadRequest, "Unknown category: "+category)
			return
		}
		if err != nil {
			h.storeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, products)

	case "featured":
		products, err := h.catalog.GetFeatured(ctx)
		if err != nil {
			h.storeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, products)

	case "new":
		products, err := h.catalog.GetNew(ctx)
		if err != nil {
			h.storeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, products)

	case "categories":
		categories, err := h.catalog.ListCategories(ctx)
		if err != nil {
			h.storeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, categories)

	default:
		respondError(w, http.StatusBadRequest, "Unrecognized action: "+action)
	}
}

// Create handles POST /api/products
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product data")
		return
	}

	if errs := h.validation.Validate(&product); len(errs) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Validation failed",
			"fields": errs,
		})
		return
	}

	saved, err := h.synchronizer.Save(r.Context(), admin.SaveRequest{Product: product})
	if err != nil {
		h.storeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, saved)
}

// Update handles PUT /api/products?id=<id>. The body may be partial:
// fields present overwrite, fields absent keep their stored value.
func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "Missing required parameter: id")
		return
	}

	existing, err := h.catalog.GetProductByID(r.Context(), id)
	if errors.Is(err, domain.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.storeError(w, err)
		return
	}

	// decode over a copy of the stored record: absent fields stay put
	product := *existing
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product data")
		return
	}
	product.ID = id

	if errs := h.validation.Validate(&product); len(errs) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Validation failed",
			"fields": errs,
		})
		return
	}

	saved, err := h.synchronizer.Save(r.Context(), admin.SaveRequest{Product: product})
	if err != nil {
		h.storeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, saved)
}

// Delete handles DELETE /api/products?id=<id>. Managed blob images go
// with the record.
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "Missing required parameter: id")
		return
	}

	err := h.synchronizer.Delete(r.Context(), id)
	if errors.Is(err, domain.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.storeError(w, err)
		return
	}

	respondSuccess(w)
}

// storeError surfaces the store's failure text with a 500, the generic
// upstream-error contract.
func (h *ProductsHandler) storeError(w http.ResponseWriter, err error) {
	h.logger.Error("Store operation failed", "error", err)
	respondError(w, http.StatusInternalServerError, err.Error())
}
