package http

import (
	"net/http"

	"github.com/hashicorp/go-hclog"

	"github.com/aurelia-jewels/catalog-api/internal/catalog"
	"github.com/aurelia-jewels/catalog-api/internal/domain"
	"github.com/aurelia-jewels/catalog-api/internal/service"
)

// CatalogHandler exposes the filter pipeline and the facet index.
type CatalogHandler struct {
	catalog service.CatalogService
	logger  hclog.Logger
}

func NewCatalogHandler(cs service.CatalogService, logger hclog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: cs, logger: logger}
}

type filterResponse struct {
	// Query is the canonical re-encoding of the applied filter, the
	// value a client should put in its address bar.
	Query    string            `json:"query"`
	Count    int               `json:"count"`
	Products []*domain.Product `json:"products"`
}

// Filter handles GET /api/catalog. The raw query string is the filter
// spec; malformed values degrade silently to defaults, so this endpoint
// has no 400 path.
func (h *CatalogHandler) Filter(w http.ResponseWriter, r *http.Request) {
	spec := catalog.ParseQuery(r.URL.RawQuery)

	products, err := h.catalog.Filter(r.Context(), spec)
	if err != nil {
		h.logger.Error("Unable to filter products", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, filterResponse{
		Query:    spec.Encode(),
		Count:    len(products),
		Products: products,
	})
}

// Facets handles GET /api/facets
func (h *CatalogHandler) Facets(w http.ResponseWriter, r *http.Request) {
	facets, err := h.catalog.Facets(r.Context())
	if err != nil {
		h.logger.Error("Unable to compute facets", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, facets)
}
