package services

import (
	"context"
	"log"
	"storefront-gateway/models"
	"storefront-gateway/repositories"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductFormService runs the product submission form's state machine:
// closed until opened, open while editing, submitting while a request is
// in flight, then back to closed on success or open with the backend's
// message on failure.
type ProductFormService struct {
	productRepo *repositories.ProductRepository
	catalog     *CatalogService
}

func NewProductFormService(catalog *CatalogService) *ProductFormService {
	return &ProductFormService{
		productRepo: repositories.NewProductRepository(),
		catalog:     catalog,
	}
}

// State reports the form as the UI should render it.
func (s *ProductFormService) State(sess *Session) models.FormView {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return formViewLocked(&sess.form)
}

// Open expands the form with a blank draft. Opening a form that is not
// closed changes nothing.
func (s *ProductFormService) Open(sess *Session) models.FormView {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.form.status == models.FormClosed || sess.form.status == "" {
		sess.form = formState{status: models.FormOpen}
	}
	return formViewLocked(&sess.form)
}

// Submit validates the draft and, when it passes, sends it to the
// backend. Validation failures never reach the network and keep the
// visitor's input for correction. Success resets and closes the form;
// a backend rejection reopens it with the backend's message and the
// draft untouched. Only one submission can be in flight.
func (s *ProductFormService) Submit(ctx context.Context, sess *Session, draft models.ProductDraft) (*models.Product, models.FormView, error) {
	sess.mu.Lock()
	switch sess.form.status {
	case models.FormSubmitting:
		view := formViewLocked(&sess.form)
		sess.mu.Unlock()
		return nil, view, models.ErrSubmitInFlight
	case models.FormOpen:
	default:
		view := formViewLocked(&sess.form)
		sess.mu.Unlock()
		return nil, view, models.ErrFormNotOpen
	}

	draft = trimDraft(draft)
	price, msg := validateDraft(draft)
	if msg != "" {
		sess.form.err = msg
		sess.form.draft = draft
		view := formViewLocked(&sess.form)
		sess.mu.Unlock()
		return nil, view, models.ErrValidation
	}

	sess.form.status = models.FormSubmitting
	sess.form.err = ""
	sess.form.draft = draft
	sess.mu.Unlock()

	product := models.NewProduct{
		Title:       draft.Title,
		Price:       price,
		Category:    draft.Category,
		Image:       draft.Image,
		BuyURL:      draft.BuyURL,
		Description: draft.Description,
	}
	if product.Category == "" {
		product.Category = "Other"
	}

	created, err := s.productRepo.Create(ctx, product)

	sess.mu.Lock()
	if err != nil {
		log.Printf("Product submission failed: %v", err)
		sess.form.status = models.FormOpen
		sess.form.err = models.BackendDetail(err, "Could not submit product")
		view := formViewLocked(&sess.form)
		sess.mu.Unlock()
		return nil, view, err
	}

	sess.form = formState{status: models.FormClosed}
	view := formViewLocked(&sess.form)
	sess.mu.Unlock()

	s.catalog.InvalidateCache()
	return created, view, nil
}

func trimDraft(draft models.ProductDraft) models.ProductDraft {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Price = strings.TrimSpace(draft.Price)
	draft.Category = strings.TrimSpace(draft.Category)
	draft.Image = strings.TrimSpace(draft.Image)
	draft.BuyURL = strings.TrimSpace(draft.BuyURL)
	draft.Description = strings.TrimSpace(draft.Description)
	return draft
}

func validateDraft(draft models.ProductDraft) (decimal.Decimal, string) {
	if draft.Title == "" {
		return decimal.Zero, "Title is required"
	}
	if draft.Price == "" {
		return decimal.Zero, "Price is required"
	}
	price, err := decimal.NewFromString(draft.Price)
	if err != nil {
		return decimal.Zero, "Price must be a number"
	}
	if price.IsNegative() {
		return decimal.Zero, "Price must not be negative"
	}
	return price, ""
}

func formViewLocked(fs *formState) models.FormView {
	status := fs.status
	if status == "" {
		status = models.FormClosed
	}
	return models.FormView{Status: status, Error: fs.err, Draft: fs.draft}
}
