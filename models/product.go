package models

import "github.com/shopspring/decimal"

func init() {
	// Prices and totals go over the wire as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

var defaultRating = decimal.RequireFromString("4.5")

// Product is a catalog entry exactly as the backend sent it. Products are
// never edited on this side; the cart and order snapshots copy them.
type Product struct {
	ID          FlexID           `json:"id,omitempty"`
	Title       string           `json:"title"`
	Price       decimal.Decimal  `json:"price"`
	Category    string           `json:"category"`
	Rating      *decimal.Decimal `json:"rating,omitempty"`
	Image       string           `json:"image,omitempty"`
	BuyURL      string           `json:"buy_url,omitempty"`
	Description string           `json:"description,omitempty"`
}

// DisplayRating is the rating shown on product cards. Items without one
// fall back to 4.5; the stored product keeps its missing rating.
func (p Product) DisplayRating() decimal.Decimal {
	if p.Rating == nil {
		return defaultRating
	}
	return *p.Rating
}

// SameItem reports whether two products count as the same cart entry:
// ids are compared when both sides carry one, titles otherwise.
func (p Product) SameItem(other Product) bool {
	if p.ID != "" && other.ID != "" {
		return p.ID == other.ID
	}
	return p.Title == other.Title
}

// NewProduct is the payload for submitting a product to the backend.
// Optional fields left blank are omitted rather than sent empty.
type NewProduct struct {
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image,omitempty"`
	BuyURL      string          `json:"buy_url,omitempty"`
	Description string          `json:"description,omitempty"`
}
