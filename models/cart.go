package models

import "github.com/shopspring/decimal"

// CartLineItem is one cart entry: a snapshot of the product as it was
// added, plus how many units of it are in the cart.
type CartLineItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal is this line's contribution to the cart subtotal.
func (i CartLineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Totals are derived from line items on every read and never stored.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Taxes    decimal.Decimal `json:"taxes"`
	Total    decimal.Decimal `json:"total"`
}

type CartView struct {
	Items              []CartLineItem `json:"items"`
	Totals             Totals         `json:"totals"`
	Empty              bool           `json:"empty"`
	CheckoutInProgress bool           `json:"checkout_in_progress"`
}
