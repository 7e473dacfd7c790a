// Package conversion ties rate lookups to the conversion ledger.
package conversion

import (
	"context"                         // Context for provider and store calls
	"currency_wizard/internal/domain" // Importing domain models
	"currency_wizard/internal/rates"  // Currency code normalization
	"errors"                          // Error inspection
	"fmt"                             // Error wrapping
	"math"                            // NaN and Inf checks
)

// RateSource converts amounts between currencies
type RateSource interface {
	Convert(ctx context.Context, amount float64, base, target string) (float64, error)
}

// Ledger is the append-only conversion history
type Ledger interface {
	Append(ctx context.Context, username, conversionType string, inputValue, convertedValue float64) (*domain.ConversionRecord, error)
	ListByUser(ctx context.Context, username string) ([]domain.ConversionRecord, error)
	PageByUser(ctx context.Context, username string, page, pageSize int) ([]domain.ConversionRecord, int64, error)
}

// Result is the outcome of one successful conversion
type Result struct {
	From           string                   `json:"from"`
	To             string                   `json:"to"`
	Amount         float64                  `json:"amount"`
	ConvertedValue float64                  `json:"converted_value"`
	Record         *domain.ConversionRecord `json:"record"`
}

// Page is one page of a user's conversion history, most recent first
type Page struct {
	History    []domain.ConversionRecord `json:"history"`     // Conversions on this page
	Page       int                       `json:"page"`        // Current page
	PageSize   int                       `json:"page_size"`   // Page size
	Total      int64                     `json:"total"`       // Total conversions
	TotalPages int64                     `json:"total_pages"` // Total pages
}

// Service performs conversions for authenticated users
type Service struct {
	rates  RateSource
	ledger Ledger
}

// NewService creates a conversion Service
func NewService(rates RateSource, ledger Ledger) *Service {
	return &Service{rates: rates, ledger: ledger}
}

// Convert converts amount from one currency to another for username and records it.
// Nothing is recorded unless the rate lookup succeeds.
func (s *Service) Convert(ctx context.Context, username string, amount float64, from, to string) (*Result, error) {
	if username == "" {
		return nil, domain.ErrNotAuthenticated // Only logged-in users convert
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, domain.ErrInvalidAmount
	}
	from, to = rates.NormalizeCode(from), rates.NormalizeCode(to)
	if from == "" || to == "" {
		return nil, fmt.Errorf("%w: currency codes are required", domain.ErrRateUnavailable)
	}

	converted, err := s.rates.Convert(ctx, amount, from, to)
	if err != nil {
		return nil, err // Nothing is recorded
	}

	rec, err := s.ledger.Append(ctx, username, domain.ConversionType(from, to), amount, converted)
	if err != nil {
		if !errors.Is(err, domain.ErrStore) {
			err = fmt.Errorf("%w: %v", domain.ErrStore, err)
		}
		return nil, err
	}
	return &Result{From: from, To: to, Amount: amount, ConvertedValue: converted, Record: rec}, nil
}

// History returns the user's conversions, most recent first
func (s *Service) History(ctx context.Context, username string) ([]domain.ConversionRecord, error) {
	if username == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return s.ledger.ListByUser(ctx, username)
}

// HistoryPage returns one page of the user's conversions. page and pageSize must be positive.
func (s *Service) HistoryPage(ctx context.Context, username string, page, pageSize int) (*Page, error) {
	if username == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("%w: page and page size must be positive", domain.ErrInvalidPage)
	}
	records, total, err := s.ledger.PageByUser(ctx, username, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &Page{
		History:    records,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (total + int64(pageSize) - 1) / int64(pageSize),
	}, nil
}
