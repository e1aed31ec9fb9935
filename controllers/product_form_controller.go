package controllers

import (
	"errors"
	"storefront-gateway/models"
	"storefront-gateway/services"

	"github.com/gin-gonic/gin"
)

type ProductFormController struct {
	formService *services.ProductFormService
}

func NewProductFormController(formService *services.ProductFormService) *ProductFormController {
	return &ProductFormController{formService: formService}
}

// @Summary Product form state
// @Description The submission form as the UI should render it: status, last error, and the preserved draft
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /products/form [get]
func (ctrl *ProductFormController) GetForm(c *gin.Context) {
	sess := c.MustGet("session").(*services.Session)

	view := ctrl.formService.State(sess)
	c.JSON(200, gin.H{"success": true, "message": "Form state retrieved", "data": view})
}

// @Summary Open the product form
// @Description Expand the form with a blank draft; opening an already open form changes nothing
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /products/form/open [post]
func (ctrl *ProductFormController) OpenForm(c *gin.Context) {
	sess := c.MustGet("session").(*services.Session)

	view := ctrl.formService.Open(sess)
	c.JSON(200, gin.H{"success": true, "message": "Form opened", "data": view})
}

// @Summary Submit a new product
// @Description Validate the draft and submit it to the backend. Invalid input never leaves this service; a backend rejection reopens the form with its message and the draft kept.
// @Tags Products
// @Accept json
// @Produce json
// @Param draft body models.ProductDraft true "Form input"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /products/form [post]
func (ctrl *ProductFormController) SubmitForm(c *gin.Context) {
	sess := c.MustGet("session").(*services.Session)

	var draft models.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid form payload"})
		return
	}

	created, view, err := ctrl.formService.Submit(c.Request.Context(), sess, draft)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			c.JSON(400, gin.H{"success": false, "message": view.Error, "data": view})
		case errors.Is(err, models.ErrSubmitInFlight):
			c.JSON(409, gin.H{"success": false, "message": "A submission is already in progress", "data": view})
		case errors.Is(err, models.ErrFormNotOpen):
			c.JSON(409, gin.H{"success": false, "message": "Open the form before submitting", "data": view})
		default:
			c.JSON(backendStatus(err), gin.H{"success": false, "message": view.Error, "data": view})
		}
		return
	}

	c.JSON(201, gin.H{
		"success": true, "message": "Product submitted successfully",
		"data": gin.H{"product": created, "form": view},
	})
}
