package models

// FormStatus is the product form's lifecycle state.
type FormStatus string

const (
	// FormClosed is the collapsed initial state; no draft is being edited.
	FormClosed FormStatus = "closed"
	// FormOpen means the form is visible and accepting input.
	FormOpen FormStatus = "open"
	// FormSubmitting means a submission is in flight; further submits are
	// rejected until it settles.
	FormSubmitting FormStatus = "submitting"
)

// ProductDraft holds the form input as typed. Price stays a string here
// so invalid input can be kept and shown back for correction.
type ProductDraft struct {
	Title       string `json:"title" form:"title"`
	Price       string `json:"price" form:"price"`
	Category    string `json:"category" form:"category"`
	Image       string `json:"image" form:"image"`
	BuyURL      string `json:"buy_url" form:"buy_url"`
	Description string `json:"description" form:"description"`
}

type FormView struct {
	Status FormStatus   `json:"status"`
	Error  string       `json:"error,omitempty"`
	Draft  ProductDraft `json:"draft"`
}
