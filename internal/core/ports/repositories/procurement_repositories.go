package repositories

import (
	"context"

	"github.com/siperka/siperka_backend/internal/core/domain"
)

// ProcurementReader defines read operations for procurement history. The
// estimation engine only ever reads these records.
type ProcurementReader interface {
	// FindByProductName retrieves every procurement record for a product name.
	FindByProductName(ctx context.Context, productName string) ([]domain.ProcurementRecord, error)
}

// ProcurementRepositoryFacade combines all procurement repository interfaces.
type ProcurementRepositoryFacade interface {
	ProcurementReader
}

// EstimationWriter defines write operations for saved estimation results.
type EstimationWriter interface {
	// SaveEstimation persists a computed estimation to the history.
	SaveEstimation(ctx context.Context, record domain.EstimationRecord) error
}

// EstimationReader defines read operations for saved estimation results.
type EstimationReader interface {
	// ListEstimations retrieves saved estimations, newest first.
	ListEstimations(ctx context.Context, limit int) ([]domain.EstimationRecord, error)
}

// EstimationRepositoryFacade combines all estimation history repository interfaces.
type EstimationRepositoryFacade interface {
	EstimationReader
	EstimationWriter
}
