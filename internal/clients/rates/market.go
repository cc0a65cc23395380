package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/siperka/siperka_backend/internal/core/domain"
)

// marketResponse covers both Frankfurter and open.er-api.com payloads: each
// returns the IDR rate inside a "rates" object.
type marketResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// FrankfurterProvider is the tertiary source: the Frankfurter JSON API
// serving ECB reference rates. It also serves as the historical provider via
// its date-indexed endpoint.
type FrankfurterProvider struct {
	client  *http.Client
	baseURL string
}

// NewFrankfurterProvider creates a FrankfurterProvider against the given API root.
func NewFrankfurterProvider(baseURL string, timeout time.Duration) *FrankfurterProvider {
	return &FrankfurterProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (p *FrankfurterProvider) Name() domain.RateSource {
	return domain.RateSourceFrankfurter
}

// FetchCurrent returns the latest USD->IDR rate.
func (p *FrankfurterProvider) FetchCurrent(ctx context.Context) (float64, error) {
	return p.fetch(ctx, p.baseURL+"/latest?from=USD&to=IDR")
}

// FetchForDate returns the USD->IDR rate in effect on date (YYYY-MM-DD).
// Frankfurter answers with the closest preceding banking day.
func (p *FrankfurterProvider) FetchForDate(ctx context.Context, date string) (float64, error) {
	return p.fetch(ctx, fmt.Sprintf("%s/%s?from=USD&to=IDR", p.baseURL, date))
}

func (p *FrankfurterProvider) fetch(ctx context.Context, url string) (float64, error) {
	value, err := fetchIDRRate(ctx, p.client, url)
	if err != nil {
		return 0, fmt.Errorf("frankfurter: %w", err)
	}
	return value, nil
}

// ExchangerateAPIProvider is the quaternary source: open.er-api.com, the last
// live resource attempted before falling back to cached state.
type ExchangerateAPIProvider struct {
	client  *http.Client
	baseURL string
}

// NewExchangerateAPIProvider creates an ExchangerateAPIProvider against the given API root.
func NewExchangerateAPIProvider(baseURL string, timeout time.Duration) *ExchangerateAPIProvider {
	return &ExchangerateAPIProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (p *ExchangerateAPIProvider) Name() domain.RateSource {
	return domain.RateSourceExchangerate
}

// FetchCurrent returns the latest USD->IDR rate.
func (p *ExchangerateAPIProvider) FetchCurrent(ctx context.Context) (float64, error) {
	value, err := fetchIDRRate(ctx, p.client, p.baseURL+"/v6/latest/USD")
	if err != nil {
		return 0, fmt.Errorf("exchangerate-api: %w", err)
	}
	return value, nil
}

// fetchIDRRate performs a GET against a JSON rate API and extracts rates.IDR.
func fetchIDRRate(ctx context.Context, client *http.Client, url string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	res, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call rate API: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate API returned status %d", res.StatusCode)
	}

	var parsed marketResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode rate API response: %w", err)
	}

	value, ok := parsed.Rates["IDR"]
	if !ok {
		return 0, fmt.Errorf("rate API response contains no IDR rate")
	}
	if !validRate(value) {
		return 0, fmt.Errorf("invalid IDR rate from rate API: %v", value)
	}
	return value, nil
}
