package models

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrCheckoutInFlight = errors.New("checkout already in progress")
	ErrSubmitInFlight   = errors.New("submission already in progress")
	ErrFormNotOpen      = errors.New("form is not open")
)

// BackendError carries a failure reported by the product backend itself,
// as opposed to a transport problem reaching it.
type BackendError struct {
	Status int
	Detail string
}

func (e *BackendError) Error() string {
	return e.Detail
}

// BackendDetail returns the backend's own message for err when there is
// one, and fallback otherwise.
func BackendDetail(err error, fallback string) string {
	var backendErr *BackendError
	if errors.As(err, &backendErr) && backendErr.Detail != "" {
		return backendErr.Detail
	}
	return fallback
}
