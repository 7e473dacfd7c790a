package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "currencywizard")
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("IS_PROD", "true")
	t.Setenv("RATE_API_KEY", "key")
	t.Setenv("RATE_API_URL", "http://rates.local")
	t.Setenv("RATE_API_TIMEOUT", "3")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "jwt", cfg.JWTSecret)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.IsProd)
	assert.Equal(t, "key", cfg.RateAPIKey)
	assert.Equal(t, "http://rates.local", cfg.RateAPIURL)
	assert.Equal(t, 3*time.Second, cfg.RateAPITimeout)
	assert.Equal(t, "root:secret@tcp(localhost:3306)/currencywizard?parseTime=true&clientFoundRows=true", cfg.DSN())
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("RATE_API_URL", "")
	t.Setenv("RATE_API_TIMEOUT", "not-a-number")
	t.Setenv("IS_PROD", "")

	cfg := LoadConfig()

	assert.Equal(t, DefaultAppPort, cfg.AppPort)
	assert.Equal(t, DefaultRateAPIURL, cfg.RateAPIURL)
	assert.Equal(t, DefaultRateAPITimeout, cfg.RateAPITimeout)
	assert.False(t, cfg.IsProd)
}
