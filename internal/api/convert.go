package api

import (
	"context"                             // Context for service calls
	"currency_wizard/internal/conversion" // Conversion service types
	"currency_wizard/internal/middleware" // Context keys
	"currency_wizard/internal/rates"      // Rate provider types
	"net/http"                            // HTTP status codes
	"strconv"                             // String conversion
	"strings"                             // Splitting target lists

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Converter performs and records conversions
type Converter interface {
	Convert(ctx context.Context, username string, amount float64, from, to string) (*conversion.Result, error)
	HistoryPage(ctx context.Context, username string, page, pageSize int) (*conversion.Page, error)
}

// RateLookup reads currency metadata and historical rates from the provider
type RateLookup interface {
	ListCurrencies(ctx context.Context) (map[string]string, error)
	GetHistoricalRates(ctx context.Context, base string, targets []string, period rates.Period, days int) (*rates.HistoryTable, error)
}

// Request struct for a conversion
type ConvertRequest struct {
	Amount float64 `json:"amount"`                  // Amount in the source currency
	From   string  `json:"from" binding:"required"` // Source currency code
	To     string  `json:"to" binding:"required"`   // Target currency code
}

// ConvertHandler converts an amount for the logged-in user and records it in their history
func ConvertHandler(svc Converter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ConvertRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			writeErrorCode(c, ErrInvalidRequest, "Amount, from and to are required")
			return
		}
		username := c.GetString(middleware.UsernameKey) // Set by the auth middleware
		result, err := svc.Convert(c.Request.Context(), username, req.Amount, req.From, req.To)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"username": username,
				"from":     req.From,
				"to":       req.To,
				"error":    err.Error(),
			}).Warn("Conversion failed")
			writeError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"username": username,
			"type":     result.Record.ConversionType,
			"amount":   result.Amount,
		}).Info("Conversion recorded")
		c.JSON(http.StatusOK, result)
	}
}

// CurrenciesHandler lists the supported currency codes with their names
func CurrenciesHandler(src RateLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		currencies, err := src.ListCurrencies(c.Request.Context())
		if err != nil {
			logrus.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to list currencies")
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"currencies": currencies})
	}
}

// HistoricalRatesHandler returns a time-indexed rate table for one base and up to four targets
func HistoricalRatesHandler(src RateLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		base := c.Query("base")
		if strings.TrimSpace(base) == "" {
			writeErrorCode(c, ErrInvalidRequest, "base is required")
			return
		}
		var targets []string
		for _, t := range strings.Split(c.Query("targets"), ",") {
			if t = strings.TrimSpace(t); t != "" {
				targets = append(targets, t)
			}
		}
		period := rates.Period(c.DefaultQuery("period", string(rates.PeriodDaily)))
		days := rates.DefaultDays // Default window
		// If days exists in query
		if d := c.Query("days"); d != "" {
			v, err := strconv.Atoi(d)
			if err != nil {
				writeErrorCode(c, ErrInvalidRequest, "days must be a number")
				return
			}
			days = v
		}
		table, err := src.GetHistoricalRates(c.Request.Context(), base, targets, period, days)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"base":    base,
				"targets": targets,
				"period":  period,
				"error":   err.Error(),
			}).Warn("Historical rates failed")
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, table)
	}
}
