package store

import (
	"context"                         // Context for request-scoped queries
	"currency_wizard/internal/domain" // Importing domain models
	"errors"                          // Validation errors
	"fmt"                             // Error wrapping
	"time"                            // Record timestamps

	"gorm.io/gorm" // GORM ORM library
)

var errEmptyField = errors.New("username and conversion type are required")

// HistoryStore is the append-only conversion ledger
type HistoryStore struct {
	db  *gorm.DB         // Database handle
	now func() time.Time // Clock for record timestamps
}

// NewHistoryStore creates a HistoryStore backed by db
func NewHistoryStore(db *gorm.DB) *HistoryStore {
	return &HistoryStore{db: db, now: time.Now}
}

// Append records one conversion with a server-assigned timestamp
func (s *HistoryStore) Append(ctx context.Context, username, conversionType string, inputValue, convertedValue float64) (*domain.ConversionRecord, error) {
	if username == "" || conversionType == "" {
		return nil, fmt.Errorf("%w: %v", domain.ErrStore, errEmptyField)
	}
	rec := domain.ConversionRecord{
		Username:       username,
		ConversionType: conversionType,
		InputValue:     inputValue,
		ConvertedValue: convertedValue,
		Timestamp:      s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	return &rec, nil
}

// ListByUser returns the user's conversions, most recent first. No history is an empty slice.
func (s *HistoryStore) ListByUser(ctx context.Context, username string) ([]domain.ConversionRecord, error) {
	records := make([]domain.ConversionRecord, 0)
	err := s.db.WithContext(ctx).
		Where("username = ?", username).
		Order("timestamp DESC").
		Order("id DESC"). // Stable order for equal timestamps
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	return records, nil
}

// PageByUser returns one page of the user's conversions, most recent first, with the
// user's total count. Pages outside 1..totalPages are empty.
func (s *HistoryStore) PageByUser(ctx context.Context, username string, page, pageSize int) ([]domain.ConversionRecord, int64, error) {
	records := make([]domain.ConversionRecord, 0)
	var total int64 // Total conversions for the user
	err := s.db.WithContext(ctx).
		Model(&domain.ConversionRecord{}).
		Where("username = ?", username).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	if page < 1 || pageSize < 1 {
		return records, total, nil
	}
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize) // Calculate total pages
	// Checked before computing the offset so huge page numbers cannot overflow it
	if int64(page) > totalPages {
		return records, total, nil
	}
	err = s.db.WithContext(ctx).
		Where("username = ?", username).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize). // Calculate offset
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	return records, total, nil
}
