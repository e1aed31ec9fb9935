package models

// CatalogView is the catalog pane as the UI should render it: the active
// filters, the products the backend returned for them, and the loading
// and error state of the latest fetch. CanSeed marks the genuinely empty
// case where offering to seed demo data makes sense.
type CatalogView struct {
	Query    string    `json:"query"`
	Category string    `json:"category"`
	Products []Product `json:"products"`
	Loading  bool      `json:"loading"`
	Error    string    `json:"error,omitempty"`
	CanSeed  bool      `json:"can_seed"`
}
