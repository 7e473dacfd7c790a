package api

import (
	"currency_wizard/internal/middleware" // Context keys
	"currency_wizard/internal/session"    // Session state machine
	"net/http"                            // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// currentSession returns the session the auth middleware attached to the request
func currentSession(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(middleware.SessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok && sess != nil
}

// GetSessionHandler returns the caller's session
func GetSessionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			writeErrorCode(c, ErrNotAuthenticated, "Not authenticated")
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": sess})
	}
}

// LogoutHandler ends the caller's session; its token stops authenticating
func LogoutHandler(sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			writeErrorCode(c, ErrNotAuthenticated, "Not authenticated")
			return
		}
		next, err := session.Transition(sess.State, session.LogoutRequested)
		if err != nil {
			writeErrorCode(c, ErrNotAuthenticated, err.Error())
			return
		}
		if err := sessions.Delete(c.Request.Context(), sess.ID); err != nil {
			logrus.WithFields(logrus.Fields{
				"session_id": sess.ID,
				"error":      err.Error(),
			}).Error("Failed to delete session")
			writeErrorCode(c, ErrStore, "Failed to end session")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    sess.UserID,
			"session_id": sess.ID,
		}).Info("User logged out")
		c.JSON(http.StatusOK, gin.H{"message": "Logged out", "state": next})
	}
}
