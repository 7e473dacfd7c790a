package api

import (
	"context"                          // Context for service calls
	"currency_wizard/internal/auth"    // Authentication messages
	"currency_wizard/internal/domain"  // Importing domain models
	"currency_wizard/internal/session" // Session state machine
	"currency_wizard/internal/utils"   // Utility functions
	"net/http"                         // HTTP status codes
	"time"                             // Session timestamps

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Authenticator is the credential lifecycle used by the handlers
type Authenticator interface {
	Register(ctx context.Context, username, email, password, fullName string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
}

// SessionStore persists logged-in sessions
type SessionStore interface {
	Save(ctx context.Context, s *session.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*session.Session, error)
	Delete(ctx context.Context, id string) error
}

// Request struct for registration
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`         // Username must be provided
	Email           string `json:"email" binding:"required"`            // Email must be provided
	FullName        string `json:"full_name" binding:"required"`        // Full name must be provided
	Password        string `json:"password" binding:"required"`         // Password must be provided
	ConfirmPassword string `json:"confirm_password" binding:"required"` // Must equal Password
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for password reset
type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required"`            // Email of the account
	NewPassword     string `json:"new_password" binding:"required"`     // Replacement password
	ConfirmPassword string `json:"confirm_password" binding:"required"` // Must equal NewPassword
}

// Response struct for authentication
type AuthResponse struct {
	Token   string        `json:"token"`   // JWT token
	User    *domain.User  `json:"user"`    // Logged-in user
	State   session.State `json:"state"`   // Screen the client moves to
	Message string        `json:"message"` // Greeting
}

// RegisterHandler creates a user account and sends the client to the login form
func RegisterHandler(svc Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			writeErrorCode(c, ErrMissingFields, "Please fill in all fields!")
			return
		}
		// Confirmation must match before anything reaches the store
		if req.Password != req.ConfirmPassword {
			writeErrorCode(c, ErrPasswordMismatch, "Passwords do not match!")
			return
		}
		user, err := svc.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.FullName)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"username": req.Username,
				"error":    err.Error(),
			}).Warn("Registration failed")
			writeError(c, err)
			return
		}
		next, _ := session.Transition(session.SignupForm, session.RegisterSucceeded)
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"username": user.Username,
		}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"message": auth.MsgRegistered, "state": next})
	}
}

// LoginHandler authenticates a user, opens a session and returns a JWT token
func LoginHandler(svc Authenticator, sessions SessionStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			writeErrorCode(c, ErrMissingFields, "Please fill in all fields!")
			return
		}
		user, err := svc.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			logrus.WithFields(logrus.Fields{"error": err.Error()}).Error("Login failed")
			writeError(c, err)
			return
		}
		// Same answer for unknown usernames and wrong passwords
		if user == nil {
			writeErrorCode(c, ErrInvalidCredentials, "Invalid username or password!")
			return
		}
		state, _ := session.Transition(session.LoginForm, session.LoginSucceeded)
		token, sessionID, err := utils.GenerateJWT(user.ID, user.Username, jwtSecret)
		if err != nil {
			writeErrorCode(c, ErrInternal, "Failed to generate token")
			return
		}
		sess := &session.Session{
			ID:        sessionID,
			UserID:    user.ID,
			Username:  user.Username,
			FullName:  user.FullName,
			State:     state,
			CreatedAt: time.Now(),
		}
		if err := sessions.Save(c.Request.Context(), sess, utils.TokenTTL); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"error":   err.Error(),
			}).Error("Failed to save session")
			writeErrorCode(c, ErrStore, "Failed to start session")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    user.ID,
			"session_id": sessionID,
		}).Info("User logged in")
		c.JSON(http.StatusOK, AuthResponse{
			Token:   token,
			User:    user,
			State:   state,
			Message: "Welcome back, " + user.FullName + "!",
		})
	}
}

// ResetPasswordHandler replaces the password of the account registered with an email
func ResetPasswordHandler(svc Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			writeErrorCode(c, ErrMissingFields, "Please fill in all fields!")
			return
		}
		if req.NewPassword != req.ConfirmPassword {
			writeErrorCode(c, ErrPasswordMismatch, "Passwords do not match!")
			return
		}
		if err := svc.ResetPassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
			writeError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{"email": req.Email}).Info("Password reset")
		c.JSON(http.StatusOK, gin.H{"message": auth.MsgPasswordReset, "state": session.LoginForm})
	}
}
