package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/aurelia-jewels/catalog-api/internal/domain"
)

// restProductRepository talks to a hosted product store exposing the
// action-style products endpoint.
type restProductRepository struct {
	baseURL string
	client  *http.Client
	logger  hclog.Logger
}

// NewRESTProductRepository creates a repository backed by a remote store
// at baseURL, e.g. "https://store.example.com".
func NewRESTProductRepository(baseURL string, logger hclog.Logger) ProductRepository {
	return &restProductRepository{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

func (r *restProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return r.list(ctx, url.Values{"action": {"all"}})
}

func (r *restProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := url.Values{"action": {"byId"}, "id": {id}}

	resp, err := r.get(ctx, query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote store returned status %d", resp.StatusCode)
	}

	var product domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("unable to decode product: %w", err)
	}
	return &product, nil
}

func (r *restProductRepository) GetByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error) {
	return r.list(ctx, url.Values{"action": {"byCategory"}, "category": {string(category)}})
}

func (r *restProductRepository) GetFeatured(ctx context.Context) ([]*domain.Product, error) {
	return r.list(ctx, url.Values{"action": {"featured"}})
}

func (r *restProductRepository) GetNew(ctx context.Context) ([]*domain.Product, error) {
	return r.list(ctx, url.Values{"action": {"new"}})
}

func (r *restProductRepository) Categories(ctx context.Context) ([]string, error) {
	resp, err := r.get(ctx, url.Values{"action": {"categories"}})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote store returned status %d", resp.StatusCode)
	}

	var categories []string
	if err := json.NewDecoder(resp.Body).Decode(&categories); err != nil {
		return nil, fmt.Errorf("unable to decode categories: %w", err)
	}
	return categories, nil
}

func (r *restProductRepository) Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	body, err := json.Marshal(product)
	if err != nil {
		return nil, fmt.Errorf("unable to encode product: %w", err)
	}

	endpoint := r.baseURL + "/api/products"
	method := http.MethodPost
	if product.ID != "" {
		method = http.MethodPut
		endpoint += "?id=" + url.QueryEscape(product.ID)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote store unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, remoteError(resp)
	}

	var saved domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		return nil, fmt.Errorf("unable to decode saved product: %w", err)
	}
	return &saved, nil
}

func (r *restProductRepository) Delete(ctx context.Context, id string) error {
	endpoint := r.baseURL + "/api/products?id=" + url.QueryEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("remote store unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return remoteError(resp)
	}
	return nil
}

func (r *restProductRepository) list(ctx context.Context, query url.Values) ([]*domain.Product, error) {
	resp, err := r.get(ctx, query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, remoteError(resp)
	}

	var products []*domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("unable to decode products: %w", err)
	}
	return products, nil
}

func (r *restProductRepository) get(ctx context.Context, query url.Values) (*http.Response, error) {
	endpoint := r.baseURL + "/api/products?" + query.Encode()
	r.logger.Debug("Remote store request", "url", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote store unreachable: %w", err)
	}
	return resp, nil
}

// remoteError surfaces the store's own error text when it sent one.
func remoteError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("remote store: %s", payload.Error)
	}
	return fmt.Errorf("remote store returned status %d", resp.StatusCode)
}
