package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port              string
	CartDB            string // sqlite DSN for the durable cart storage
	RedisAddr         string // optional; switches cart storage to redis
	APIBaseURL        string // external storefront API
	LogFile           string
	LowStockThreshold int
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	cartDB := os.Getenv("CART_DB")
	if cartDB == "" {
		cartDB = "shopfront.db" // sqlite file in project root
	}
	api := os.Getenv("API_BASE_URL")
	if api == "" {
		api = "http://localhost:9000/api/v1"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./shopfront.log"
	}
	threshold := 5
	if v := os.Getenv("LOW_STOCK_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			threshold = n
		}
	}

	cfg := Config{
		Port:              port,
		CartDB:            cartDB,
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		APIBaseURL:        api,
		LogFile:           logFile,
		LowStockThreshold: threshold,
	}
	log.Printf("[config] PORT=%s CART_DB=%s REDIS_ADDR=%s API_BASE_URL=%s LOW_STOCK_THRESHOLD=%d",
		cfg.Port, cfg.CartDB, cfg.RedisAddr, cfg.APIBaseURL, cfg.LowStockThreshold)
	return cfg
}
