package repositories

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"storefront-gateway/models"
)

// backendError turns a non-2xx backend response into a BackendError,
// keeping the backend's own detail message when it sent one.
func backendError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Detail == "" {
		payload.Detail = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}
	return &models.BackendError{Status: resp.StatusCode, Detail: payload.Detail}
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
