package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For timeouts

	"github.com/joho/godotenv" // For loading .env files
)

// Default values used when the environment leaves a setting empty
const (
	DefaultAppPort        = "8080"                            // Application port
	DefaultRateAPIURL     = "https://v6.exchangerate-api.com" // Rate provider base URL
	DefaultRateAPITimeout = 10 * time.Second                  // Rate provider request timeout
)

// Config holds the application configuration
type Config struct {
	AppPort        string        // Application port
	DBUser         string        // Database user
	DBPassword     string        // Database password
	DBHost         string        // Database host
	DBPort         string        // Database port
	DBName         string        // Database name
	JWTSecret      string        // JWT secret key
	RedisAddr      string        // Redis server address
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	IsProd         bool          // Is production environment
	RateAPIKey     string        // Exchange-rate provider API key
	RateAPIURL     string        // Exchange-rate provider base URL
	RateAPITimeout time.Duration // Exchange-rate provider request timeout
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	timeout := DefaultRateAPITimeout
	if secs, err := strconv.Atoi(os.Getenv("RATE_API_TIMEOUT")); err == nil && secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}

	return &Config{
		AppPort:        getEnv("APP_PORT", DefaultAppPort),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		DBName:         os.Getenv("DB_NAME"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPass:      os.Getenv("REDIS_PASS"),
		RedisDB:        redisDB,
		IsProd:         os.Getenv("IS_PROD") == "true",
		RateAPIKey:     os.Getenv("RATE_API_KEY"),
		RateAPIURL:     getEnv("RATE_API_URL", DefaultRateAPIURL),
		RateAPITimeout: timeout,
	}
}

// DSN builds the MySQL Data Source Name for the configured database
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&clientFoundRows=true"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
