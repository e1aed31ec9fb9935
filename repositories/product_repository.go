package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"storefront-gateway/config"
	"storefront-gateway/models"
)

// ProductRepository speaks to the product backend's catalog endpoints.
// The backend is the source of truth; nothing fetched here is persisted.
type ProductRepository struct {
	baseURL string
	client  *http.Client
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		baseURL: config.AppConfig.BackendBaseURL,
		client:  &http.Client{Timeout: config.AppConfig.BackendTimeout},
	}
}

// Search fetches the products matching the query and category. Both
// parameters are always sent, empty or not, and the backend's result
// order is preserved; no filtering happens on this side.
func (r *ProductRepository) Search(ctx context.Context, q, category string) ([]models.Product, error) {
	params := url.Values{}
	params.Set("q", q)
	params.Set("category", category)

	endpoint := fmt.Sprintf("%s/api/products?%s", r.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, backendError(resp)
	}

	products := []models.Product{}
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}
	return products, nil
}

// Seed asks the backend to load its demo dataset.
func (r *ProductRepository) Seed(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/products/seed", nil)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("seeding products: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return backendError(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// Create submits a new product and returns the backend's stored copy.
func (r *ProductRepository) Create(ctx context.Context, product models.NewProduct) (*models.Product, error) {
	body, err := json.Marshal(product)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/products", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, backendError(resp)
	}

	var created models.Product
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decoding created product: %w", err)
	}
	return &created, nil
}
