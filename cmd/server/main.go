package main

import (
	"context"                             // context package is needed for Redis operations and shutdown
	"currency_wizard/internal/api"        // Custom package for API handlers
	"currency_wizard/internal/auth"       // Custom package for authentication
	"currency_wizard/internal/config"     // Custom package for configuration
	"currency_wizard/internal/conversion" // Custom package for conversions
	"currency_wizard/internal/db"         // Custom package for database setup
	"currency_wizard/internal/rates"      // Custom package for the rate provider
	"currency_wizard/internal/session"    // Custom package for sessions
	"currency_wizard/internal/store"      // Custom package for persistence
	"errors"                              // For detecting server shutdown
	"net/http"                            // HTTP server
	"os"                                  // For signal handling
	"os/signal"                           // For signal handling
	"syscall"                             // For SIGTERM
	"time"                                // For shutdown timeout

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"golang.org/x/crypto/bcrypt"   // Password hashing cost
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Connect to the database and bring the schema up to date
	gdb, err := db.Open(cfg.DSN(), cfg.IsProd)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.AutoMigrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		logrus.Fatalf("failed to get DB handle: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	if cfg.RateAPIKey == "" {
		logrus.Warn("RATE_API_KEY is empty; rate lookups will fail")
	}

	// Services
	hasher := auth.NewHasher(bcrypt.DefaultCost)
	users := store.NewUserStore(gdb, hasher)
	rateClient := rates.NewClient(cfg.RateAPIURL, cfg.RateAPIKey, cfg.RateAPITimeout)
	converter := conversion.NewService(rateClient, store.NewHistoryStore(gdb))

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.Routes(r, api.Deps{
		Auth:      auth.NewService(users, hasher),
		Sessions:  session.NewStore(redisClient),
		Converter: converter,
		Rates:     rateClient,
		Health: map[string]api.Pinger{
			"database": api.PingFunc(sqlDB.PingContext),
			"redis":    api.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }),
		},
		JWTSecret: cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Info("Server running on " + cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	// Wait for an interrupt, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("server shutdown: %v", err)
	}
	_ = redisClient.Close()
	_ = sqlDB.Close()
	logrus.Info("Server stopped")
}
