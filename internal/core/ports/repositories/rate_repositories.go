package repositories

import (
	"context"

	"github.com/siperka/siperka_backend/internal/core/domain"
)

// RateStoreReader defines read operations for persisted rate records.
type RateStoreReader interface {
	// GetCurrentRate retrieves the persisted current-rate record ("jisdor").
	GetCurrentRate(ctx context.Context) (*domain.RateRecord, error)

	// GetHistoricalRate retrieves the persisted record for one date (YYYY-MM-DD).
	GetHistoricalRate(ctx context.Context, date string) (*domain.HistoricalRateRecord, error)
}

// RateStoreWriter defines write operations for persisted rate records. Both
// writes carry set-with-merge (upsert) semantics.
type RateStoreWriter interface {
	// SaveCurrentRate upserts the current-rate record under the fixed key.
	SaveCurrentRate(ctx context.Context, record domain.RateRecord) error

	// SaveHistoricalRate upserts the record keyed by its date.
	SaveHistoricalRate(ctx context.Context, record domain.HistoricalRateRecord) error
}

// RateStoreRepositoryFacade combines all rate store repository interfaces.
type RateStoreRepositoryFacade interface {
	RateStoreReader
	RateStoreWriter
}
