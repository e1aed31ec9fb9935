package services

import (
	"context"
	"net/http"
	"storefront-gateway/models"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshLoadsProductsForFilters(t *testing.T) {
	startBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "lamp", r.URL.Query().Get("q"))
		assert.Equal(t, "Office", r.URL.Query().Get("category"))
		w.Write([]byte(`[{"id":2,"title":"Desk Lamp","price":30.00,"category":"Office"},{"id":3,"title":"Floor Lamp","price":89.00,"category":"Office"}]`))
	}))

	svc := NewCatalogService()
	sess := newTestSession()

	view := svc.Refresh(context.Background(), sess, "lamp", "Office")

	assert.Equal(t, "lamp", view.Query)
	assert.Equal(t, "Office", view.Category)
	assert.False(t, view.Loading)
	assert.Empty(t, view.Error)
	assert.False(t, view.CanSeed)
	require.Len(t, view.Products, 2)
	assert.Equal(t, "Desk Lamp", view.Products[0].Title)
}

func TestRefreshFillsDisplayRating(t *testing.T) {
	startBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"title":"Ceramic Mug","price":20.00,"category":"Kitchen"},{"id":2,"title":"Desk Lamp","price":30.00,"category":"Office","rating":4.1}]`))
	}))

	svc := NewCatalogService()
	sess := newTestSession()

	view := svc.Refresh(context.Background(), sess, "", "")

	require.Len(t, view.Products, 2)
	require.NotNil(t, view.Products[0].Rating)
	assert.True(t, view.Products[0].Rating.Equal(decimal.RequireFromString("4.5")))
	require.NotNil(t, view.Products[1].Rating)
	assert.True(t, view.Products[1].Rating.Equal(decimal.RequireFromString("4.1")))
}

func TestRefreshEmptyCatalogOffersSeed(t *testing.T) {
	startBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	svc := NewCatalogService()
	sess := newTestSession()

	view := svc.Refresh(context.Background(), sess, "", "")

	assert.Empty(t, view.Products)
	assert.True(t, view.CanSeed)
}

func TestRefreshFailureKeepsPreviousProducts(t *testing.T) {
	var fail atomic.Bool
	startBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"search exploded"}`))
			return
		}
		w.Write([]byte(`[{"id":1,"title":"Ceramic Mug","price":20.00,"category":"Kitchen"}]`))
	}))

	svc := NewCatalogService()
	sess := newTestSession()

	first := svc.Refresh(context.Background(), sess, "", "")
	require.Len(t, first.Products, 1)

	fail.Store(true)
	second := svc.Refresh(context.Background(), sess, "mug", "")

	assert.Equal(t, "search exploded", second.Error)
	require.Len(t, second.Products, 1, "previous products should survive a failed fetch")
	assert.Equal(t, "Ceramic Mug", second.Products[0].Title)
	assert.False(t, second.CanSeed, "seeding is not offered while an error is shown")
	assert.Equal(t, "mug", second.Query)
}

func TestStaleFetchNeverOverwritesNewerResult(t *testing.T) {
	slowStarted := make(chan struct{})
	slowRelease := make(chan struct{})
	var once sync.Once

	startBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "slow" {
			once.Do(func() { close(slowStarted) })
			<-slowRelease
			w.Write([]byte(`[{"id":1,"title":"Slow Widget","price":10.00,"category":"Misc"}]`))
			return
		}
		w.Write([]byte(`[{"id":2,"title":"Fast Widget","price":12.00,"category":"Misc"}]`))
	}))

	svc := NewCatalogService()
	sess := newTestSession()

	slowResult := make(chan models.CatalogView, 1)
	go func() {
		slowResult <- svc.Refresh(context.Background(), sess, "slow", "")
	}()
	<-slowStarted

	fastView := svc.Refresh(context.Background(), sess, "fast", "")
	require.Len(t, fastView.Products, 1)
	assert.Equal(t, "Fast Widget", fastView.Products[0].Title)

	close(slowRelease)
	slowView := <-slowResult

	require.Len(t, slowView.Products, 1, "stale response must not replace the newer result")
	assert.Equal(t, "Fast Widget", slowView.Products[0].Title)
	assert.Equal(t, "fast", slowView.Query)
	assert.False(t, slowView.Loading)
}

func TestSeedReloadsWithCurrentFilters(t *testing.T) {
	var seeded atomic.Bool
	var lastListQuery atomic.Value

	startBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/products/seed":
			seeded.Store(true)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"seeded":8}`))
		case r.URL.Path == "/api/products":
			lastListQuery.Store(r.URL.Query().Get("q"))
			if seeded.Load() {
				w.Write([]byte(`[{"id":1,"title":"Ceramic Mug","price":20.00,"category":"Kitchen"}]`))
			} else {
				w.Write([]byte(`[]`))
			}
		default:
			http.NotFound(w, r)
		}
	}))

	svc := NewCatalogService()
	sess := newTestSession()

	empty := svc.Refresh(context.Background(), sess, "mug", "")
	require.True(t, empty.CanSeed)

	view, err := svc.Seed(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, "mug", view.Query, "seed keeps the filters the session was using")
	assert.Equal(t, "mug", lastListQuery.Load())
	require.Len(t, view.Products, 1)
	assert.False(t, view.CanSeed)
}

func TestSeedFailureSurfacesMessage(t *testing.T) {
	startBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/products/seed" {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"detail":"seeding disabled"}`))
			return
		}
		w.Write([]byte(`[]`))
	}))

	svc := NewCatalogService()
	sess := newTestSession()

	view, err := svc.Seed(context.Background(), sess)
	require.Error(t, err)
	assert.Equal(t, "seeding disabled", view.Error)
}

func TestCategoriesAreDistinctInFirstSeenOrder(t *testing.T) {
	startBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":1,"title":"Ceramic Mug","price":20.00,"category":"Kitchen"},
			{"id":2,"title":"Desk Lamp","price":30.00,"category":"Office"},
			{"id":3,"title":"Chef Knife","price":45.00,"category":"Kitchen"},
			{"id":4,"title":"Mystery Box","price":5.00,"category":""}
		]`))
	}))

	svc := NewCatalogService()
	sess := newTestSession()
	svc.Refresh(context.Background(), sess, "", "")

	assert.Equal(t, []string{"Kitchen", "Office"}, svc.Categories(sess))
}
