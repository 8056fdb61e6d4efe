package main

import (
	"context" // context package is needed for Redis operations

	"contact_manager/internal/api"    // Custom package for API handlers
	"contact_manager/internal/config" // Custom package for configuration
	"contact_manager/internal/db"     // Custom package for database access

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/google/uuid"       // Fallback token secret
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.Warnf("unknown log level %q, using info", cfg.LogLevel)
	}

	// Tokens are signed so that made-up values never reach the database
	if cfg.TokenSecret == "" {
		if cfg.IsProd {
			logrus.Fatal("TOKEN_SECRET must be set in production")
		}
		cfg.TokenSecret = uuid.NewString()
		logrus.Warn("TOKEN_SECRET not set, using a random secret; sessions will not survive a restart")
	}

	// Connect to the database
	database, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client, the token cache is optional
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(database, redisClient, cfg) // Gin router with all routes

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"port":   cfg.AppPort,
		"driver": cfg.DBDriver,
		"cache":  redisClient != nil,
	}).Info("Server running") // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
