package rates

import (
	"context"
	"math"

	"github.com/siperka/siperka_backend/internal/core/domain"
)

// CurrentRateProvider fetches the live USD->IDR rate from one upstream source.
// Implementations contain their own failures: any network, timeout or parse
// problem comes back as an error, never a panic. The resolver tries providers
// strictly in the order it was given them.
type CurrentRateProvider interface {
	// Name identifies the provider as a quote source tag.
	Name() domain.RateSource

	// FetchCurrent returns the current rate, validated finite and positive.
	FetchCurrent(ctx context.Context) (float64, error)
}

// HistoricalRateProvider fetches the rate in effect on a specific calendar
// date from a date-indexed upstream source.
type HistoricalRateProvider interface {
	// FetchForDate returns the rate for date (YYYY-MM-DD), validated finite
	// and positive.
	FetchForDate(ctx context.Context, date string) (float64, error)
}

// validRate reports whether an upstream value is usable as an exchange rate.
func validRate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
