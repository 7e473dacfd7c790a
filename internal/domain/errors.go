package domain

import "errors"

var (
	// credential errors
	ErrWeakPassword        = errors.New("password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, one digit, and one special character")
	ErrDuplicateCredential = errors.New("username or email already exists")
	ErrEmailNotFound       = errors.New("email not found")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrMissingFields       = errors.New("please fill in all fields")

	// session errors
	ErrNotAuthenticated = errors.New("not authenticated")

	// conversion errors
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrRateUnavailable = errors.New("conversion rate not available")
	ErrProviderError   = errors.New("rate provider error")
	ErrInvalidTargets  = errors.New("select between 1 and 4 target currencies")
	ErrInvalidPeriod   = errors.New("invalid history period")
	ErrInvalidPage     = errors.New("invalid page")

	// store errors
	ErrNotFound = errors.New("not found")
	ErrStore    = errors.New("store error")
)
