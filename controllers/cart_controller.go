package controllers

import (
	"errors"
	"net/http"
	"storefront-gateway/models"
	"storefront-gateway/services"
	"strings"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService *services.CartService
}

func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// @Summary View the cart
// @Description Line items plus totals derived from them on this read
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	sess := c.MustGet("session").(*services.Session)

	view := ctrl.cartService.View(sess)
	c.JSON(200, gin.H{"success": true, "message": "Cart retrieved", "data": view})
}

// @Summary Add a product to the cart
// @Description Add one unit of the posted product. The same product twice raises its quantity instead of duplicating the line.
// @Tags Cart
// @Accept json
// @Produce json
// @Param product body models.Product true "Product as rendered in the catalog"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	sess := c.MustGet("session").(*services.Session)

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product payload"})
		return
	}

	product.Title = strings.TrimSpace(product.Title)
	if product.Title == "" {
		c.JSON(400, gin.H{"success": false, "message": "Product title is required"})
		return
	}
	if product.Price.IsNegative() {
		c.JSON(400, gin.H{"success": false, "message": "Product price must not be negative"})
		return
	}

	view, err := ctrl.cartService.Add(sess, product)
	if err != nil {
		c.JSON(409, gin.H{"success": false, "message": "Cart is locked while checkout is in progress"})
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "Product added to cart", "data": view})
}

// @Summary Check out
// @Description Submit the cart as an order. The cart is cleared only when the backend accepts it; any failure leaves the cart as it was.
// @Tags Cart
// @Produce json
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /cart/checkout [post]
func (ctrl *CartController) Checkout(c *gin.Context) {
	sess := c.MustGet("session").(*services.Session)

	orderID, err := ctrl.cartService.Checkout(c.Request.Context(), sess)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrCartEmpty):
			c.JSON(400, gin.H{"success": false, "message": "Cart is empty"})
		case errors.Is(err, models.ErrCheckoutInFlight):
			c.JSON(409, gin.H{"success": false, "message": "Checkout is already in progress"})
		default:
			c.JSON(backendStatus(err), gin.H{"success": false, "message": models.BackendDetail(err, "Could not place order")})
		}
		return
	}

	c.JSON(201, gin.H{
		"success": true, "message": "Order placed successfully",
		"data": models.OrderResult{OrderID: orderID},
	})
}

// backendStatus picks the response code for an upstream failure: backend
// 4xx responses pass through, anything else reads as a bad gateway.
func backendStatus(err error) int {
	var backendErr *models.BackendError
	if errors.As(err, &backendErr) && backendErr.Status >= 400 && backendErr.Status < 500 {
		return backendErr.Status
	}
	return http.StatusBadGateway
}
