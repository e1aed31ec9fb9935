package services

import (
	"context"
	"encoding/json"
	"net/http"
	"storefront-gateway/models"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFormService() *ProductFormService {
	return NewProductFormService(NewCatalogService())
}

func TestFormStartsClosed(t *testing.T) {
	startBackend(t, http.NotFoundHandler())
	svc := newFormService()
	sess := newTestSession()

	view := svc.State(sess)
	assert.Equal(t, models.FormClosed, view.Status)
	assert.Empty(t, view.Error)
	assert.Equal(t, models.ProductDraft{}, view.Draft)
}

func TestOpenThenSubmitHappyPath(t *testing.T) {
	startBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":77,"title":"Walnut Tray","price":24.00,"category":"Other"}`))
	}))

	svc := newFormService()
	sess := newTestSession()

	view := svc.Open(sess)
	assert.Equal(t, models.FormOpen, view.Status)

	created, view, err := svc.Submit(context.Background(), sess, models.ProductDraft{
		Title: "Walnut Tray",
		Price: "24.00",
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, models.FlexID("77"), created.ID)

	assert.Equal(t, models.FormClosed, view.Status, "success collapses the form")
	assert.Empty(t, view.Error)
	assert.Equal(t, models.ProductDraft{}, view.Draft, "success resets the draft")
}

func TestSubmitValidationNeverReachesBackend(t *testing.T) {
	tests := []struct {
		name    string
		draft   models.ProductDraft
		wantMsg string
	}{
		{"missing title", models.ProductDraft{Price: "10.00"}, "Title is required"},
		{"blank title", models.ProductDraft{Title: "   ", Price: "10.00"}, "Title is required"},
		{"missing price", models.ProductDraft{Title: "Walnut Tray"}, "Price is required"},
		{"unparseable price", models.ProductDraft{Title: "Walnut Tray", Price: "abc"}, "Price must be a number"},
		{"negative price", models.ProductDraft{Title: "Walnut Tray", Price: "-5"}, "Price must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int64
			startBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
			}))

			svc := newFormService()
			sess := newTestSession()
			svc.Open(sess)

			_, view, err := svc.Submit(context.Background(), sess, tt.draft)
			assert.ErrorIs(t, err, models.ErrValidation)
			assert.EqualValues(t, 0, calls.Load(), "invalid input must not reach the backend")

			assert.Equal(t, models.FormOpen, view.Status)
			assert.Equal(t, tt.wantMsg, view.Error)
		})
	}
}

func TestSubmitKeepsDraftOnValidationFailure(t *testing.T) {
	startBackend(t, http.NotFoundHandler())
	svc := newFormService()
	sess := newTestSession()
	svc.Open(sess)

	_, view, err := svc.Submit(context.Background(), sess, models.ProductDraft{
		Title:       "",
		Price:       "24.00",
		Description: "hand finished",
	})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Equal(t, "24.00", view.Draft.Price)
	assert.Equal(t, "hand finished", view.Draft.Description)

	reopened := svc.Open(sess)
	assert.Equal(t, "24.00", reopened.Draft.Price, "opening an open form changes nothing")
}

func TestSubmitDefaultsCategoryAndOmitsBlanks(t *testing.T) {
	var gotBody map[string]interface{}
	startBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":78,"title":"Walnut Tray","price":24.00,"category":"Other"}`))
	}))

	svc := newFormService()
	sess := newTestSession()
	svc.Open(sess)

	_, _, err := svc.Submit(context.Background(), sess, models.ProductDraft{
		Title: "  Walnut Tray  ",
		Price: "24.00",
	})
	require.NoError(t, err)

	assert.Equal(t, "Walnut Tray", gotBody["title"])
	assert.Equal(t, "Other", gotBody["category"], "blank category defaults to Other")
	assert.EqualValues(t, 24.00, gotBody["price"])
	assert.NotContains(t, gotBody, "image")
	assert.NotContains(t, gotBody, "buy_url")
	assert.NotContains(t, gotBody, "description")
}

func TestSubmitSendsOptionalFieldsWhenPresent(t *testing.T) {
	var gotBody map[string]interface{}
	startBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":79,"title":"Walnut Tray","price":24.00,"category":"Decor"}`))
	}))

	svc := newFormService()
	sess := newTestSession()
	svc.Open(sess)

	_, _, err := svc.Submit(context.Background(), sess, models.ProductDraft{
		Title:       "Walnut Tray",
		Price:       "24.00",
		Category:    "Decor",
		Image:       "https://example.com/tray.jpg",
		Description: "hand finished",
	})
	require.NoError(t, err)

	assert.Equal(t, "Decor", gotBody["category"])
	assert.Equal(t, "https://example.com/tray.jpg", gotBody["image"])
	assert.Equal(t, "hand finished", gotBody["description"])
	assert.NotContains(t, gotBody, "buy_url")
}

func TestSubmitAcceptsZeroPrice(t *testing.T) {
	var calls atomic.Int64
	startBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":80,"title":"Freebie","price":0,"category":"Other"}`))
	}))

	svc := newFormService()
	sess := newTestSession()
	svc.Open(sess)

	_, _, err := svc.Submit(context.Background(), sess, models.ProductDraft{Title: "Freebie", Price: "0"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestSubmitBackendRejectionKeepsFormOpen(t *testing.T) {
	startBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"title already exists"}`))
	}))

	svc := newFormService()
	sess := newTestSession()
	svc.Open(sess)

	created, view, err := svc.Submit(context.Background(), sess, models.ProductDraft{
		Title: "Walnut Tray",
		Price: "24.00",
	})
	require.Error(t, err)
	assert.Nil(t, created)

	assert.Equal(t, models.FormOpen, view.Status)
	assert.Equal(t, "title already exists", view.Error)
	assert.Equal(t, "Walnut Tray", view.Draft.Title, "failed submission keeps the input")
}

func TestSubmitRequiresOpenForm(t *testing.T) {
	startBackend(t, http.NotFoundHandler())
	svc := newFormService()
	sess := newTestSession()

	_, _, err := svc.Submit(context.Background(), sess, models.ProductDraft{Title: "Walnut Tray", Price: "24.00"})
	assert.ErrorIs(t, err, models.ErrFormNotOpen)
}

func TestSecondSubmitRejectedWhileInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	startBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(entered) })
		<-release
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":81,"title":"Walnut Tray","price":24.00,"category":"Other"}`))
	}))

	svc := newFormService()
	sess := newTestSession()
	svc.Open(sess)

	firstErr := make(chan error, 1)
	go func() {
		_, _, err := svc.Submit(context.Background(), sess, models.ProductDraft{Title: "Walnut Tray", Price: "24.00"})
		firstErr <- err
	}()
	<-entered

	view := svc.State(sess)
	assert.Equal(t, models.FormSubmitting, view.Status)

	_, _, err := svc.Submit(context.Background(), sess, models.ProductDraft{Title: "Another", Price: "1.00"})
	assert.ErrorIs(t, err, models.ErrSubmitInFlight)

	close(release)
	require.NoError(t, <-firstErr)
	assert.Equal(t, models.FormClosed, svc.State(sess).Status)
}
