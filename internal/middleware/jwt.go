package middleware

import (
	"context"                          // Context for session lookups
	"currency_wizard/internal/session" // Session states and store errors
	"currency_wizard/internal/utils"   // JWT utility functions
	"errors"                           // Error inspection
	"net/http"                         // HTTP status codes
	"strings"                          // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Context keys set for authenticated requests
const (
	UserIDKey   = "userID"
	UsernameKey = "username"
	SessionKey  = "session"
)

// SessionGetter loads a session by id
type SessionGetter interface {
	Get(ctx context.Context, id string) (*session.Session, error)
}

// JWTAuthMiddleware validates JWT tokens and requires a logged-in session behind them
func JWTAuthMiddleware(secret string, sessions SessionGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated", "message": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated", "message": "Invalid or expired token"})
			return
		}
		sess, err := sessions.Get(c.Request.Context(), claims.ID) // Look up the session behind the token
		if err != nil && !errors.Is(err, session.ErrNotFound) {
			logrus.WithFields(logrus.Fields{
				"session_id": claims.ID,
				"error":      err.Error(),
			}).Error("Session lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "store_error", "message": "Session lookup failed"})
			return
		}
		// Logged out or expired sessions no longer authenticate their token
		if sess == nil || sess.State != session.LoggedIn || sess.UserID != claims.UserID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated", "message": "Session is not logged in"})
			return
		}
		c.Set(UserIDKey, claims.UserID)     // Store userID in context
		c.Set(UsernameKey, claims.Username) // Store username in context
		c.Set(SessionKey, sess)             // Store session in context
		c.Next()                            // Proceed to the next handler
	}
}
