package collectors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	hibpAPIBase = "https://haveibeenpwned.com/api/v3"

	// Bounded retry on rate limiting: fixed attempt count and delay, so the
	// call always terminates.
	breachRetryAttempts = 3
	breachRetryDelay    = 2 * time.Second
)

// BreachStatus is the outcome of a breach lookup.
type BreachStatus string

const (
	BreachLeaked      BreachStatus = "leaked"
	BreachSafe        BreachStatus = "safe"
	BreachRateLimited BreachStatus = "rate_limited"
	BreachSkipped     BreachStatus = "skipped"
	BreachError       BreachStatus = "error"
)

// BreachResult reports whether an address appears in known breaches.
type BreachResult struct {
	Status  BreachStatus `json:"status"`
	Count   int          `json:"count"`
	Sources []string     `json:"sources,omitempty"`
	Code    int          `json:"code,omitempty"`
}

// BreachChecker queries the breach-notification API. Without an API key
// every lookup reports skipped rather than failing.
type BreachChecker struct {
	BaseURL string
	APIKey  string

	client     *http.Client
	retryDelay time.Duration
}

func NewBreachChecker(apiKey string) *BreachChecker {
	return &BreachChecker{
		BaseURL:    hibpAPIBase,
		APIKey:     apiKey,
		client:     &http.Client{Timeout: requestTimeout},
		retryDelay: breachRetryDelay,
	}
}

// CheckEmail looks up breaches for one address. 429 responses are retried
// up to the fixed attempt budget, then reported as rate_limited.
func (b *BreachChecker) CheckEmail(ctx context.Context, email string) (BreachResult, error) {
	if b.APIKey == "" {
		return BreachResult{Status: BreachSkipped}, nil
	}

	target := fmt.Sprintf("%s/breachedaccount/%s?truncateResponse=false",
		b.BaseURL, url.PathEscape(email))

	for attempt := 0; attempt < breachRetryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return BreachResult{Status: BreachError}, ctx.Err()
			case <-time.After(b.retryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return BreachResult{Status: BreachError}, err
		}
		req.Header.Set("hibp-api-key", b.APIKey)
		req.Header.Set("user-agent", "osint-surface")

		resp, err := b.client.Do(req)
		if err != nil {
			return BreachResult{Status: BreachError}, fmt.Errorf("breach lookup: %w", err)
		}

		switch resp.StatusCode {
		case http.StatusOK:
			var breaches []struct {
				Name string `json:"Name"`
			}
			err := json.NewDecoder(resp.Body).Decode(&breaches)
			resp.Body.Close()
			if err != nil {
				return BreachResult{Status: BreachError}, fmt.Errorf("breach lookup: %w", err)
			}
			sources := make([]string, 0, len(breaches))
			for _, br := range breaches {
				sources = append(sources, br.Name)
			}
			return BreachResult{Status: BreachLeaked, Count: len(breaches), Sources: sources}, nil
		case http.StatusNotFound:
			resp.Body.Close()
			return BreachResult{Status: BreachSafe}, nil
		case http.StatusTooManyRequests:
			resp.Body.Close()
			continue
		default:
			code := resp.StatusCode
			resp.Body.Close()
			return BreachResult{Status: BreachError, Code: code}, nil
		}
	}
	return BreachResult{Status: BreachRateLimited}, nil
}
