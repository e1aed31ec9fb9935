// Package pricing derives cart totals from line items. It is pure: the
// same items always produce the same totals and nothing here is stored.
package pricing

import (
	"storefront-gateway/models"

	"github.com/shopspring/decimal"
)

var (
	// FreeShippingThreshold is the subtotal at which shipping becomes free.
	FreeShippingThreshold = decimal.RequireFromString("50.00")
	// FlatShippingRate applies to orders under the free shipping threshold.
	FlatShippingRate = decimal.RequireFromString("6.99")
	// TaxRate is the flat tax applied to the subtotal.
	TaxRate = decimal.RequireFromString("0.07")
)

// ComputeTotals derives the totals for a set of line items. Taxes are
// rounded to cents before entering the total, and the total is rounded
// again after summing.
func ComputeTotals(items []models.CartLineItem) models.Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
	}

	shipping := decimal.Zero
	if subtotal.LessThan(FreeShippingThreshold) {
		shipping = FlatShippingRate
	}

	taxes := subtotal.Mul(TaxRate).Round(2)
	total := subtotal.Add(shipping).Add(taxes).Round(2)

	return models.Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Taxes:    taxes,
		Total:    total,
	}
}
