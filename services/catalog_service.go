package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"storefront-gateway/config"
	"storefront-gateway/models"
	"storefront-gateway/repositories"
	"time"
)

const catalogCachePrefix = "catalog_list_"

// CatalogService drives each session's catalog pane: it records the
// active filters, fetches matching products from the backend, and keeps
// the loading and error state the UI renders. The displayed list is
// always exactly what the backend returned for the filters.
type CatalogService struct {
	productRepo *repositories.ProductRepository
	cacheTTL    time.Duration
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		productRepo: repositories.NewProductRepository(),
		cacheTTL:    config.AppConfig.CatalogCacheTTL,
	}
}

func catalogCacheKey(q, category string) string {
	return fmt.Sprintf("%sq=%s&category=%s", catalogCachePrefix, q, category)
}

// InvalidateCache drops every cached catalog listing. Called after
// anything that can change what the backend would return.
func (s *CatalogService) InvalidateCache() {
	if models.RedisClient == nil {
		return
	}
	ctx := context.Background()
	iter := models.RedisClient.Scan(ctx, 0, catalogCachePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		models.RedisClient.Del(ctx, iter.Val())
	}
}

// Refresh records the new filter pair for the session and reloads its
// product list. Every call is a fetch trigger; a response that lost the
// race to a newer trigger is discarded, so the last filter change wins
// no matter how the network interleaves. A failed fetch keeps the
// previous list and sets the error message instead.
func (s *CatalogService) Refresh(ctx context.Context, sess *Session, q, category string) models.CatalogView {
	sess.mu.Lock()
	sess.catalog.query = q
	sess.catalog.category = category
	sess.catalog.loading = true
	sess.catalog.err = ""
	sess.catalog.seq++
	seq := sess.catalog.seq
	sess.mu.Unlock()

	products, err := s.fetchProducts(ctx, q, category)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if seq == sess.catalog.seq {
		sess.catalog.loading = false
		if err != nil {
			log.Printf("Catalog fetch failed: %v", err)
			sess.catalog.err = models.BackendDetail(err, "Could not load products")
		} else {
			sess.catalog.products = products
		}
	}
	return catalogViewLocked(&sess.catalog)
}

// Seed asks the backend to load its demo data, then reloads the catalog
// with the filters the session was already using.
func (s *CatalogService) Seed(ctx context.Context, sess *Session) (models.CatalogView, error) {
	if err := s.productRepo.Seed(ctx); err != nil {
		log.Printf("Seed failed: %v", err)
		sess.mu.Lock()
		sess.catalog.err = models.BackendDetail(err, "Could not seed products")
		view := catalogViewLocked(&sess.catalog)
		sess.mu.Unlock()
		return view, err
	}

	s.InvalidateCache()

	sess.mu.Lock()
	q, category := sess.catalog.query, sess.catalog.category
	sess.mu.Unlock()

	return s.Refresh(ctx, sess, q, category), nil
}

// Categories lists the distinct category names in the session's current
// product list, in first-seen order.
func (s *CatalogService) Categories(sess *Session) []string {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	seen := map[string]bool{}
	categories := []string{}
	for _, p := range sess.catalog.products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}

// fetchProducts goes through the cache when one is connected. Cached
// entries are short-lived; the backend stays the source of truth.
func (s *CatalogService) fetchProducts(ctx context.Context, q, category string) ([]models.Product, error) {
	cacheKey := catalogCacheKey(q, category)

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			products := []models.Product{}
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				return products, nil
			}
		}
	}

	products, err := s.productRepo.Search(ctx, q, category)
	if err != nil {
		return nil, err
	}

	if models.RedisClient != nil {
		if data, err := json.Marshal(products); err == nil {
			models.RedisClient.Set(ctx, cacheKey, string(data), s.cacheTTL)
		}
	}
	return products, nil
}

// catalogViewLocked snapshots the state for rendering. Display ratings
// are filled in here so the stored products stay exactly as fetched.
func catalogViewLocked(cs *catalogState) models.CatalogView {
	products := make([]models.Product, len(cs.products))
	copy(products, cs.products)
	for i := range products {
		if products[i].Rating == nil {
			rating := products[i].DisplayRating()
			products[i].Rating = &rating
		}
	}

	return models.CatalogView{
		Query:    cs.query,
		Category: cs.category,
		Products: products,
		Loading:  cs.loading,
		Error:    cs.err,
		CanSeed:  !cs.loading && cs.err == "" && len(cs.products) == 0,
	}
}
