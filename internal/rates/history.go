package rates

import (
	"context"                         // Context for provider requests
	"currency_wizard/internal/domain" // Importing domain errors
	"fmt"                             // Error wrapping
	"net/http"                        // HTTP status codes
	"net/url"                         // Path and query escaping
	"sort"                            // Row ordering
	"strconv"                         // Day count formatting
	"strings"                         // Period parsing
	"time"                            // Dates and buckets
)

// Period selects the granularity of a history table
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

const (
	MaxTargets  = 4   // Most targets per history request
	DefaultDays = 30  // Window when none is given
	MaxDays     = 365 // Longest window

	dateLayout = "2006-01-02" // Provider date labels
)

// ParsePeriod accepts daily, weekly or monthly in any case; empty means daily
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodDaily, nil
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, s)
	}
}

// HistoryRow is one point in time. Rates holds the base (always 1) and each target present that period.
type HistoryRow struct {
	Date  time.Time          `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// HistoryTable is a time-indexed table of rates per target, oldest first
type HistoryTable struct {
	Base    string       `json:"base"`
	Period  Period       `json:"period"`
	Targets []string     `json:"targets"`
	Rows    []HistoryRow `json:"rows"`
}

type historyResponse struct {
	Result    string                        `json:"result"`
	ErrorType string                        `json:"error-type"`
	Rates     map[string]map[string]float64 `json:"rates"`
}

// GetHistoricalRates fetches the last days of daily rates for up to MaxTargets targets and
// aggregates them to period. Any target without data fails the whole call.
func (c *Client) GetHistoricalRates(ctx context.Context, base string, targets []string, period Period, days int) (*HistoryTable, error) {
	if len(targets) == 0 || len(targets) > MaxTargets {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidTargets, len(targets))
	}
	period, err := ParsePeriod(string(period))
	if err != nil {
		return nil, err
	}
	if days < 1 || days > MaxDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", domain.ErrInvalidPeriod, MaxDays)
	}
	base = NormalizeCode(base)
	if base == "" {
		return nil, fmt.Errorf("%w: empty base currency", domain.ErrProviderError)
	}
	codes := dedupe(targets)
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: no valid target currency", domain.ErrInvalidTargets)
	}

	series := make(map[string]map[time.Time]float64, len(codes))
	for _, code := range codes {
		points, err := c.fetchHistory(ctx, base, code, days) // One request per target
		if err != nil {
			return nil, err // Any failed target aborts the whole table
		}
		series[code] = points
	}

	rows := dailyRows(base, codes, series)
	if period != PeriodDaily {
		rows = aggregate(base, codes, rows, period)
	}
	return &HistoryTable{Base: base, Period: period, Targets: codes, Rows: rows}, nil
}

func (c *Client) fetchHistory(ctx context.Context, base, target string, days int) (map[time.Time]float64, error) {
	var body historyResponse
	path := "history/" + url.PathEscape(base) + "/" + strconv.Itoa(days)
	status, err := c.getJSON(ctx, path, url.Values{"period": {string(PeriodDaily)}}, &body)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching rates for %s: %v", domain.ErrProviderError, target, err)
	}
	if status != http.StatusOK || body.Result != resultSuccess {
		return nil, fmt.Errorf("%w: failed to fetch data for %s, status %d %s", domain.ErrProviderError, target, status, body.ErrorType)
	}
	if body.Rates == nil {
		return nil, fmt.Errorf("%w: no rate data available for %s", domain.ErrProviderError, target)
	}

	points := make(map[time.Time]float64, len(body.Rates))
	for label, dayRates := range body.Rates {
		day, err := time.Parse(dateLayout, label)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date label %q", domain.ErrProviderError, label)
		}
		if rate, ok := dayRates[target]; ok {
			points[day] = rate
		}
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no rate data available for %s", domain.ErrProviderError, target)
	}
	return points, nil
}

func dailyRows(base string, codes []string, series map[string]map[time.Time]float64) []HistoryRow {
	byDay := make(map[time.Time]map[string]float64)
	for _, code := range codes {
		for day, rate := range series[code] {
			row, ok := byDay[day]
			if !ok {
				row = map[string]float64{base: 1}
				byDay[day] = row
			}
			row[code] = rate
		}
	}
	return sortedRows(byDay)
}

// aggregate replaces daily rows with per-period means labelled by the period's last day
func aggregate(base string, codes []string, rows []HistoryRow, period Period) []HistoryRow {
	type acc struct{ sum, n float64 }
	buckets := make(map[time.Time]map[string]*acc)
	for _, row := range rows {
		key := periodEnd(row.Date, period)
		b, ok := buckets[key]
		if !ok {
			b = make(map[string]*acc)
			buckets[key] = b
		}
		for _, code := range codes {
			if v, ok := row.Rates[code]; ok {
				if b[code] == nil {
					b[code] = &acc{}
				}
				b[code].sum += v
				b[code].n++
			}
		}
	}

	byPeriod := make(map[time.Time]map[string]float64, len(buckets))
	for key, b := range buckets {
		out := map[string]float64{base: 1}
		for code, a := range b {
			out[code] = a.sum / a.n
		}
		byPeriod[key] = out
	}
	return sortedRows(byPeriod)
}

// periodEnd returns the Sunday ending the week, or the last day of the month
func periodEnd(d time.Time, period Period) time.Time {
	switch period {
	case PeriodWeekly:
		return d.AddDate(0, 0, (7-int(d.Weekday()))%7)
	case PeriodMonthly:
		return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location())
	default:
		return d
	}
}

func sortedRows(m map[time.Time]map[string]float64) []HistoryRow {
	rows := make([]HistoryRow, 0, len(m))
	for day, rates := range m {
		rows = append(rows, HistoryRow{Date: day, Rates: rates})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}

func dedupe(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = NormalizeCode(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
