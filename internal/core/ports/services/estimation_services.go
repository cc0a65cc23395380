package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/siperka/siperka_backend/internal/core/domain"
)

// EstimationReaderSvc defines read operations for cost estimation.
type EstimationReaderSvc interface {
	// EstimateProductCost computes a present-day cost estimate for a product
	// from its procurement history, normalized to the current exchange rate.
	EstimateProductCost(ctx context.Context, productName string) (*domain.Estimation, error)

	// ListEstimations retrieves saved estimation results, newest first.
	ListEstimations(ctx context.Context, limit int) ([]domain.EstimationRecord, error)
}

// EstimationWriterSvc defines write operations for estimation history.
type EstimationWriterSvc interface {
	// SaveEstimation persists a computed estimation to the history.
	SaveEstimation(ctx context.Context, productName string, estimatedPrice decimal.Decimal, rate float64, createdBy string) (*domain.EstimationRecord, error)
}

// EstimationSvcFacade combines all estimation-related service interfaces.
type EstimationSvcFacade interface {
	EstimationReaderSvc
	EstimationWriterSvc
}
