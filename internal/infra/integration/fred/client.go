// Package fred queries the St. Louis Fed FRED API for the published average
// mortgage rate of a given term and calendar month. That value is the
// benchmark every Deal Analyzer submission is graded against.
package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Series15Year = "MORTGAGE15US"
	Series30Year = "MORTGAGE30US"

	// Weekly series, so the first four weeks of the month are enough to
	// guarantee at least one observation.
	observationWindowDays = 28
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// AverageRate returns the first published observation for the term's series
// within the first four weeks of (month, year). Any transport failure, empty
// window or non-numeric placeholder fails the whole lookup; callers treat
// that as the benchmark being unavailable.
func (c *Client) AverageRate(ctx context.Context, termYears, month, year int) (decimal.Decimal, error) {
	var seriesID string
	switch termYears {
	case 15:
		seriesID = Series15Year
	case 30:
		seriesID = Series30Year
	default:
		return decimal.Zero, fmt.Errorf("no benchmark series for %d-year loans", termYears)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, observationWindowDays-1)

	params := url.Values{}
	params.Set("series_id", seriesID)
	params.Set("observation_start", start.Format("2006-01-02"))
	params.Set("observation_end", end.Format("2006-01-02"))
	params.Set("api_key", c.apiKey)
	params.Set("file_type", "json")

	endpoint := fmt.Sprintf("%s/series/observations?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("FRED request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return decimal.Zero, fmt.Errorf("FRED rejected request (status %d): %s", resp.StatusCode, string(body))
	}

	var response observationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode FRED response: %w", err)
	}

	for _, obs := range response.Observations {
		// FRED publishes "." for weeks without data.
		value, err := decimal.NewFromString(obs.Value)
		if err != nil {
			continue
		}
		return value, nil
	}

	return decimal.Zero, fmt.Errorf("no %s observation for %04d-%02d", seriesID, year, month)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "HomeRateAPI/1.0")
}
