package api

import (
	"net/http"
	"storefront-gateway/config"
	_ "storefront-gateway/docs"
	"storefront-gateway/middleware"
	"storefront-gateway/models"
	"storefront-gateway/routes"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	router *gin.Engine
	once   sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		models.InitRedis()

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.CORSMiddleware())

		store := routes.SetupRoutes(router)
		store.StartSweeper(time.Hour)
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
