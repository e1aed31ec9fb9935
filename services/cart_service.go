package services

import (
	"context"
	"log"
	"storefront-gateway/config"
	"storefront-gateway/models"
	"storefront-gateway/pricing"
	"storefront-gateway/repositories"
)

// CartService owns cart mutation and checkout. Totals are never stored;
// every view recomputes them from the line items.
type CartService struct {
	orderRepo *repositories.OrderRepository
}

func NewCartService() *CartService {
	return &CartService{
		orderRepo: repositories.NewOrderRepository(),
	}
}

// View returns the cart with freshly derived totals.
func (s *CartService) View(sess *Session) models.CartView {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return cartViewLocked(sess)
}

// Add puts one unit of the product in the cart. An item for the same
// product raises its quantity instead of adding a new line; new products
// append, keeping the existing order. Adds are rejected while a checkout
// is in flight.
func (s *CartService) Add(sess *Session, product models.Product) (models.CartView, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.checkoutInFlight {
		return cartViewLocked(sess), models.ErrCheckoutInFlight
	}

	merged := false
	for i := range sess.cart {
		if sess.cart[i].SameItem(product) {
			sess.cart[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		sess.cart = append(sess.cart, models.CartLineItem{Product: product, Quantity: 1})
	}

	return cartViewLocked(sess), nil
}

// Checkout submits the cart as an order. The line items are snapshotted
// before the network call and cart changes stay blocked until it
// settles; the cart is cleared only when the backend accepted the order,
// so a failed checkout loses nothing.
func (s *CartService) Checkout(ctx context.Context, sess *Session) (models.FlexID, error) {
	sess.mu.Lock()
	if sess.checkoutInFlight {
		sess.mu.Unlock()
		return "", models.ErrCheckoutInFlight
	}
	if len(sess.cart) == 0 {
		sess.mu.Unlock()
		return "", models.ErrCartEmpty
	}
	items := make([]models.CartLineItem, len(sess.cart))
	copy(items, sess.cart)
	sess.checkoutInFlight = true
	sess.mu.Unlock()

	orderID, err := s.orderRepo.SubmitOrder(ctx, buildOrder(items))

	sess.mu.Lock()
	sess.checkoutInFlight = false
	if err == nil {
		sess.cart = nil
	}
	sess.mu.Unlock()

	if err != nil {
		log.Printf("Checkout failed: %v", err)
		return "", err
	}
	return orderID, nil
}

func buildOrder(items []models.CartLineItem) models.OrderRequest {
	orderItems := make([]models.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = models.OrderItem{
			ProductID: item.ID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		}
	}

	return models.OrderRequest{
		Items:           orderItems,
		CustomerName:    config.AppConfig.CustomerName,
		CustomerEmail:   config.AppConfig.CustomerEmail,
		CustomerAddress: config.AppConfig.CustomerAddress,
	}
}

func cartViewLocked(sess *Session) models.CartView {
	items := make([]models.CartLineItem, len(sess.cart))
	copy(items, sess.cart)

	return models.CartView{
		Items:              items,
		Totals:             pricing.ComputeTotals(items),
		Empty:              len(items) == 0,
		CheckoutInProgress: sess.checkoutInFlight,
	}
}
