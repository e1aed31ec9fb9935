package controllers

import (
	"storefront-gateway/services"
	"strings"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	catalogService *services.CatalogService
}

func NewCatalogController(catalogService *services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// @Summary Browse the catalog
// @Description Load products for the given filters. Every call refreshes from the product backend; the response carries the catalog pane state including any fetch error.
// @Tags Catalog
// @Produce json
// @Param q query string false "Search text"
// @Param category query string false "Category filter"
// @Success 200 {object} models.Response
// @Router /catalog [get]
func (ctrl *CatalogController) GetCatalog(c *gin.Context) {
	sess := c.MustGet("session").(*services.Session)
	q := strings.TrimSpace(c.Query("q"))
	category := strings.TrimSpace(c.Query("category"))

	view := ctrl.catalogService.Refresh(c.Request.Context(), sess, q, category)
	c.JSON(200, gin.H{"success": true, "message": "Catalog retrieved", "data": view})
}

// @Summary List categories
// @Description Distinct category names from the current product list, for the filter control
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.Response
// @Router /catalog/categories [get]
func (ctrl *CatalogController) GetCategories(c *gin.Context) {
	sess := c.MustGet("session").(*services.Session)

	categories := ctrl.catalogService.Categories(sess)
	c.JSON(200, gin.H{"success": true, "message": "Categories retrieved", "data": categories})
}

// @Summary Seed demo products
// @Description Ask the backend to load demo data, then reload the catalog with the session's current filters
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.Response
// @Failure 502 {object} models.ErrorResponse
// @Router /catalog/seed [post]
func (ctrl *CatalogController) SeedCatalog(c *gin.Context) {
	sess := c.MustGet("session").(*services.Session)

	view, err := ctrl.catalogService.Seed(c.Request.Context(), sess)
	if err != nil {
		c.JSON(backendStatus(err), gin.H{"success": false, "message": view.Error, "data": view})
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "Demo products seeded", "data": view})
}
