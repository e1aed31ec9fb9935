package main

import (
	"log"
	"storefront-gateway/config"
	_ "storefront-gateway/docs"
	"storefront-gateway/middleware"
	"storefront-gateway/models"
	"storefront-gateway/routes"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Storefront Gateway API
// @version 1.0
// @BasePath /
func main() {

	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	models.InitRedis()
	defer models.CloseRedis()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	store := routes.SetupRoutes(router)
	store.StartSweeper(time.Hour)

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", config.AppConfig.AppEnv)
	log.Printf("Product backend: %s", config.AppConfig.BackendBaseURL)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
