// Package auth implements registration, login and password reset on top of the
// credential store.
package auth

import (
	"context"                         // Context for store calls
	"currency_wizard/internal/domain" // Importing domain models
	"errors"                          // Error inspection
	"fmt"                             // Error wrapping
	"strings"                         // Input trimming
	"time"                            // Login timestamps
)

// CredentialStore is the persistence contract the service needs
type CredentialStore interface {
	FindByUsernameAndPassword(ctx context.Context, username, password string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// PasswordHasher produces the stored form of a password
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

const (
	MsgRegistered    = "Registration successful!"   // Shown after sign-up
	MsgPasswordReset = "Password reset successful!" // Shown after a reset
)

// Service handles the credential lifecycle
type Service struct {
	store  CredentialStore
	hasher PasswordHasher
	now    func() time.Time
}

// NewService creates an authentication Service
func NewService(store CredentialStore, hasher PasswordHasher) *Service {
	return &Service{store: store, hasher: hasher, now: time.Now}
}

// Register validates the input and creates a user. Nothing is written when validation fails.
func (s *Service) Register(ctx context.Context, username, email, password, fullName string) (*domain.User, error) {
	username = strings.TrimSpace(username) // Same trimming as Login
	email = strings.TrimSpace(email)
	fullName = strings.TrimSpace(fullName)

	if username == "" || email == "" || fullName == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(password) // Hash the password
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStore, err)
	}

	user := &domain.User{Username: username, Email: email, Password: hash, FullName: fullName}
	if err := s.store.Insert(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateCredential) {
			return nil, err
		}
		return nil, storeErr(err)
	}
	return user, nil
}

// Login returns the user matching username and password and records the login time.
// A nil user with a nil error means no match; unknown usernames and wrong passwords
// are indistinguishable.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username) // Stored usernames are trimmed at registration
	if username == "" || password == "" {
		return nil, nil
	}

	user, err := s.store.FindByUsernameAndPassword(ctx, username, password)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}

	now := s.now() // Record the login time
	if err := s.store.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, storeErr(err)
	}
	user.LastLogin = &now
	return user, nil
}

// ResetPassword replaces the password of the user registered with email.
// The new password must satisfy the same policy as registration.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	email = strings.TrimSpace(email)
	if email == "" || newPassword == "" {
		return domain.ErrMissingFields
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	if _, err := s.store.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrEmailNotFound
		}
		return storeErr(err)
	}

	hash, err := s.hasher.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	if err := s.store.UpdatePassword(ctx, email, hash); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrEmailNotFound
		}
		return storeErr(err)
	}
	return nil
}

func storeErr(err error) error {
	if errors.Is(err, domain.ErrStore) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStore, err)
}
