package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv          string
	Port            string
	BackendBaseURL  string
	BackendTimeout  time.Duration
	RedisURL        string
	RedisAddr       string
	RedisPassword   string
	CatalogCacheTTL time.Duration
	SessionTTL      time.Duration
	CustomerName    string
	CustomerEmail   string
	CustomerAddress string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	AppConfig = &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		Port:            getEnv("APP_PORT", getEnv("PORT", "8082")),
		BackendBaseURL:  strings.TrimRight(getEnv("BACKEND_BASE_URL", "http://localhost:8000"), "/"),
		BackendTimeout:  getDurationEnv("BACKEND_TIMEOUT", 10*time.Second),
		RedisURL:        getEnv("REDIS_URL", ""),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CatalogCacheTTL: getDurationEnv("CATALOG_CACHE_TTL", time.Minute),
		SessionTTL:      getDurationEnv("SESSION_TTL", 24*time.Hour),
		CustomerName:    getEnv("CUSTOMER_NAME", "Guest Customer"),
		CustomerEmail:   getEnv("CUSTOMER_EMAIL", "guest@example.com"),
		CustomerAddress: getEnv("CUSTOMER_ADDRESS", "N/A"),
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
	log.Printf("Product backend: %s", AppConfig.BackendBaseURL)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid duration %q for %s, using default", value, key)
		return defaultValue
	}
	return d
}
