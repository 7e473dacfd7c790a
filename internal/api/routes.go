package api

import (
	"currency_wizard/internal/middleware" // JWT middleware

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps are the services the HTTP layer is built on
type Deps struct {
	Auth      Authenticator     // Registration, login and password reset
	Sessions  SessionStore      // Logged-in sessions
	Converter Converter         // Conversions and history
	Rates     RateLookup        // Currency list and historical rates
	Health    map[string]Pinger // Dependencies checked by /health
	JWTSecret string            // JWT signing secret
}

// Routes registers every endpoint on r
func Routes(r *gin.Engine, d Deps) {
	r.GET("/health", HealthHandler(d.Health)) // Health endpoint

	// Auth routes
	r.POST("/user", RegisterHandler(d.Auth))                             // Registration endpoint
	r.POST("/user/login", LoginHandler(d.Auth, d.Sessions, d.JWTSecret)) // Login endpoint
	r.POST("/user/password/reset", ResetPasswordHandler(d.Auth))         // Password reset endpoint
	r.GET("/currencies", CurrenciesHandler(d.Rates))                     // Supported currencies

	// Protected routes (JWT plus a logged-in session)
	authed := r.Group("")
	authed.Use(middleware.JWTAuthMiddleware(d.JWTSecret, d.Sessions))
	authed.GET("/session", GetSessionHandler())                   // Current session
	authed.DELETE("/session", LogoutHandler(d.Sessions))          // Logout endpoint
	authed.POST("/convert", ConvertHandler(d.Converter))          // Convert endpoint
	authed.GET("/history", HistoryHandler(d.Converter))           // Conversion history
	authed.GET("/rates/history", HistoricalRatesHandler(d.Rates)) // Historical rates
}
