package services

import (
	"context"

	"github.com/siperka/siperka_backend/internal/core/domain"
)

// RateReaderSvc defines read operations for exchange rate resolution.
type RateReaderSvc interface {
	// GetCurrentRate resolves the current USD->IDR rate through the fallback
	// chain. With forceRefresh the in-memory cache short-circuit is skipped.
	GetCurrentRate(ctx context.Context, forceRefresh bool) (*domain.RateQuote, error)

	// GetRateForDate resolves the rate in effect on a calendar date
	// (YYYY-MM-DD). It degrades to the current rate rather than failing.
	GetRateForDate(ctx context.Context, date string) (*domain.RateQuote, error)
}

// RateWriterSvc defines write operations for exchange rate data.
type RateWriterSvc interface {
	// UpdateRateManually persists an administrator-supplied rate override.
	UpdateRateManually(ctx context.Context, value float64, updatedBy string) (*domain.RateRecord, error)
}

// RateSvcFacade combines all rate-related service interfaces.
type RateSvcFacade interface {
	RateReaderSvc
	RateWriterSvc
}
