package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"storefront-gateway/config"
	"storefront-gateway/models"
)

// OrderRepository submits orders to the product backend.
type OrderRepository struct {
	baseURL string
	client  *http.Client
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		baseURL: config.AppConfig.BackendBaseURL,
		client:  &http.Client{Timeout: config.AppConfig.BackendTimeout},
	}
}

// SubmitOrder posts the order and returns the id the backend assigned.
// A non-2xx response comes back as a BackendError with the backend's
// detail message.
func (r *OrderRepository) SubmitOrder(ctx context.Context, order models.OrderRequest) (models.FlexID, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/orders", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("submitting order: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return "", backendError(resp)
	}

	var result models.OrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding order response: %w", err)
	}
	return result.OrderID, nil
}
