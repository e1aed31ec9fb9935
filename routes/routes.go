package routes

import (
	"storefront-gateway/config"
	"storefront-gateway/controllers"
	"storefront-gateway/middleware"
	"storefront-gateway/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine) *services.SessionStore {
	store := services.NewSessionStore(config.AppConfig.SessionTTL)

	catalogService := services.NewCatalogService()
	cartService := services.NewCartService()
	formService := services.NewProductFormService(catalogService)

	catalogCtrl := controllers.NewCatalogController(catalogService)
	cartCtrl := controllers.NewCartController(cartService)
	formCtrl := controllers.NewProductFormController(formService)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	storefront := router.Group("/")
	storefront.Use(middleware.SessionMiddleware(store))
	{
		storefront.GET("/catalog", catalogCtrl.GetCatalog)
		storefront.GET("/catalog/categories", catalogCtrl.GetCategories)
		storefront.POST("/catalog/seed", catalogCtrl.SeedCatalog)

		storefront.GET("/cart", cartCtrl.GetCart)
		storefront.POST("/cart/items", cartCtrl.AddItem)
		storefront.POST("/cart/checkout", cartCtrl.Checkout)

		storefront.GET("/products/form", formCtrl.GetForm)
		storefront.POST("/products/form/open", formCtrl.OpenForm)
		storefront.POST("/products/form", formCtrl.SubmitForm)
	}

	return store
}
