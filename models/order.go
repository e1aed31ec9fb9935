package models

import "github.com/shopspring/decimal"

// OrderItem is one line of an order as submitted to the backend.
type OrderItem struct {
	ProductID FlexID          `json:"product_id,omitempty"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

// OrderRequest is the checkout payload. It is built from a snapshot of
// the cart taken when checkout starts and discarded once submitted; the
// customer fields are the configured storefront placeholders.
type OrderRequest struct {
	Items           []OrderItem `json:"items"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerAddress string      `json:"customer_address"`
}

type OrderResult struct {
	OrderID FlexID `json:"order_id"`
}
