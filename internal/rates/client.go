// Package rates is the client for the exchange-rate provider.
package rates

import (
	"context"                         // Context for provider requests
	"currency_wizard/internal/domain" // Importing domain errors
	"encoding/json"                   // Response decoding
	"fmt"                             // Error wrapping
	"math"                            // NaN and Inf checks
	"net/http"                        // HTTP client
	"net/url"                         // Path and query escaping
	"strings"                         // Code normalization
	"time"                            // Request timeout

	"github.com/shopspring/decimal" // Exact conversion arithmetic
)

const resultSuccess = "success" // Provider result marker for a usable payload

// RateSnapshot holds the provider's rates relative to Base. It lives for one request.
type RateSnapshot struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Client talks to an exchangerate-api v6 compatible provider
type Client struct {
	baseURL string       // Provider root URL
	apiKey  string       // Provider API key
	http    *http.Client // Client with the configured timeout
}

// NewClient creates a Client. baseURL is the provider root, e.g. https://v6.exchangerate-api.com.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type latestResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

type codesResponse struct {
	Result         string     `json:"result"`
	ErrorType      string     `json:"error-type"`
	SupportedCodes [][]string `json:"supported_codes"`
}

// GetRates fetches every rate relative to base
func (c *Client) GetRates(ctx context.Context, base string) (*RateSnapshot, error) {
	base = NormalizeCode(base)
	if base == "" {
		return nil, fmt.Errorf("%w: empty base currency", domain.ErrRateUnavailable)
	}

	var body latestResponse
	status, err := c.getJSON(ctx, "latest/"+url.PathEscape(base), nil, &body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRateUnavailable, err)
	}
	if status != http.StatusOK || body.Result != resultSuccess || body.ConversionRates == nil {
		return nil, fmt.Errorf("%w: provider returned status %d %s", domain.ErrRateUnavailable, status, body.ErrorType)
	}
	return &RateSnapshot{Base: base, Rates: body.ConversionRates}, nil
}

// GetRate returns the positive rate from base to target
func (c *Client) GetRate(ctx context.Context, base, target string) (float64, error) {
	target = NormalizeCode(target)
	snap, err := c.GetRates(ctx, base)
	if err != nil {
		return 0, err
	}
	rate, ok := snap.Rates[target]
	if !ok || rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("%w: no rate for %s to %s", domain.ErrRateUnavailable, snap.Base, target)
	}
	return rate, nil
}

// Convert returns amount expressed in target. Negative amounts are rejected before any request.
func (c *Client) Convert(ctx context.Context, amount float64, base, target string) (float64, error) {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, domain.ErrInvalidAmount
	}
	rate, err := c.GetRate(ctx, base, target)
	if err != nil {
		return 0, err
	}
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate)).InexactFloat64(), nil
}

// ListCurrencies returns the supported currency codes mapped to their display names
func (c *Client) ListCurrencies(ctx context.Context) (map[string]string, error) {
	var body codesResponse
	status, err := c.getJSON(ctx, "codes", nil, &body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderError, err)
	}
	// The provider reports failures in result even with a 200
	if status != http.StatusOK || body.Result != resultSuccess || body.SupportedCodes == nil {
		return nil, fmt.Errorf("%w: error fetching currency codes (status %d %s)", domain.ErrProviderError, status, body.ErrorType)
	}

	currencies := make(map[string]string, len(body.SupportedCodes))
	for _, pair := range body.SupportedCodes {
		if len(pair) < 2 || pair[0] == "" {
			return nil, fmt.Errorf("%w: malformed currency entry %v", domain.ErrProviderError, pair)
		}
		currencies[pair[0]] = pair[1] // Code to display name
	}
	return currencies, nil
}

// getJSON issues a GET to {baseURL}/v6/{key}/{path} and decodes the body into dest.
// Non-2xx bodies are still decoded so callers can read the provider's error type.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) (int, error) {
	u := c.baseURL + "/v6/" + url.PathEscape(c.apiKey) + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req) // Send the request
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if resp.StatusCode != http.StatusOK {
			return resp.StatusCode, nil
		}
		return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
	}
	return resp.StatusCode, nil
}

// NormalizeCode upper-cases and trims a currency code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
