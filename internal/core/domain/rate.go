package domain

import "time"

// RateSource tags which tier of the resolution chain produced a quote.
type RateSource string

const (
	// Live provider tiers, in precedence order.
	RateSourceBISoap         RateSource = "api_bi_soap"
	RateSourceBIHTML         RateSource = "api_bi_html"
	RateSourceFrankfurter    RateSource = "frankfurter"
	RateSourceExchangerate   RateSource = "exchangerate_api"
	RateSourceFrankfurterHis RateSource = "frankfurter_historical"

	// Degraded / non-live tiers.
	RateSourceCache           RateSource = "cache"
	RateSourceCacheFallback   RateSource = "cache_fallback"
	RateSourceDatabase        RateSource = "database"
	RateSourceManual          RateSource = "manual"
	RateSourceFallbackCurrent RateSource = "fallback_current"
)

// RateQuote is a resolved USD->IDR rate together with its provenance.
// FetchedAt records when the value was obtained, which for historical quotes
// is distinct from the date the rate applies to.
type RateQuote struct {
	Value     float64    `json:"value"`
	Source    RateSource `json:"source"`
	FetchedAt time.Time  `json:"fetchedAt"`
	Date      string     `json:"date,omitempty"` // YYYY-MM-DD, set for historical quotes only
}

// RateRecord is the persisted current-rate document, stored under the fixed
// key "jisdor".
type RateRecord struct {
	Value     float64    `json:"value"`
	Source    RateSource `json:"source"`
	UpdatedAt time.Time  `json:"updatedAt"`
	UpdatedBy string     `json:"updatedBy,omitempty"`
}

// HistoricalRateRecord is a persisted rate for one calendar date, keyed by the
// ISO date string. Once written it is treated as an immutable fact.
type HistoricalRateRecord struct {
	Date      string     `json:"date"` // YYYY-MM-DD
	Value     float64    `json:"value"`
	Source    RateSource `json:"source"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
