package api

import (
	"currency_wizard/internal/domain" // Importing domain errors
	"errors"                          // Error inspection
	"net/http"                        // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

const (
	ErrInvalidRequest      = "invalid_request"
	ErrPasswordMismatch    = "password_mismatch"
	ErrMissingFields       = "missing_fields"
	ErrWeakPassword        = "weak_password"
	ErrInvalidEmail        = "invalid_email"
	ErrDuplicateCredential = "duplicate_credential"
	ErrEmailNotFound       = "email_not_found"
	ErrInvalidCredentials  = "invalid_credentials"
	ErrNotAuthenticated    = "not_authenticated"
	ErrInvalidAmount       = "invalid_amount"
	ErrRateUnavailable     = "rate_unavailable"
	ErrProviderError       = "provider_error"
	ErrInvalidTargets      = "invalid_targets"
	ErrInvalidPeriod       = "invalid_period"
	ErrInvalidPage         = "invalid_page"
	ErrStore               = "store_error"
	ErrInternal            = "internal_error"
)

var errorStatusMap = map[string]int{
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrPasswordMismatch:    http.StatusBadRequest,
	ErrMissingFields:       http.StatusBadRequest,
	ErrWeakPassword:        http.StatusBadRequest,
	ErrInvalidEmail:        http.StatusBadRequest,
	ErrDuplicateCredential: http.StatusConflict,
	ErrEmailNotFound:       http.StatusNotFound,
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrNotAuthenticated:    http.StatusUnauthorized,
	ErrInvalidAmount:       http.StatusBadRequest,
	ErrRateUnavailable:     http.StatusUnprocessableEntity,
	ErrProviderError:       http.StatusBadGateway,
	ErrInvalidTargets:      http.StatusBadRequest,
	ErrInvalidPeriod:       http.StatusBadRequest,
	ErrInvalidPage:         http.StatusBadRequest,
	ErrStore:               http.StatusInternalServerError,
	ErrInternal:            http.StatusInternalServerError,
}

// errorCodes maps domain errors to response codes, checked in order
var errorCodes = []struct {
	err  error
	code string
}{
	{domain.ErrWeakPassword, ErrWeakPassword},
	{domain.ErrDuplicateCredential, ErrDuplicateCredential},
	{domain.ErrEmailNotFound, ErrEmailNotFound},
	{domain.ErrInvalidEmail, ErrInvalidEmail},
	{domain.ErrMissingFields, ErrMissingFields},
	{domain.ErrNotAuthenticated, ErrNotAuthenticated},
	{domain.ErrInvalidAmount, ErrInvalidAmount},
	{domain.ErrRateUnavailable, ErrRateUnavailable},
	{domain.ErrProviderError, ErrProviderError},
	{domain.ErrInvalidTargets, ErrInvalidTargets},
	{domain.ErrInvalidPeriod, ErrInvalidPeriod},
	{domain.ErrInvalidPage, ErrInvalidPage},
	{domain.ErrStore, ErrStore},
}

func statusForError(code string) int {
	if status, ok := errorStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError // Unknown codes are server errors
}

func codeForError(err error) string {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return ErrInternal // Unmapped errors never leak their text
}

// writeError responds with the code and user-facing message for err
func writeError(c *gin.Context, err error) {
	code := codeForError(err) // Map the domain error to a response code
	message := err.Error()
	if code == ErrInternal {
		message = "An unexpected error occurred"
	}
	c.JSON(statusForError(code), gin.H{"error": code, "message": message})
}

// writeErrorCode responds with a fixed code and message
func writeErrorCode(c *gin.Context, code, message string) {
	c.JSON(statusForError(code), gin.H{"error": code, "message": message})
}
