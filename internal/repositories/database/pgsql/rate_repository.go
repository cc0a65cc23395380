package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/siperka/siperka_backend/internal/apperrors"
	"github.com/siperka/siperka_backend/internal/core/domain"
	"github.com/siperka/siperka_backend/internal/models"
	"github.com/siperka/siperka_backend/internal/utils/mapping"
)

// rateKey is the fixed logical key of the current-rate record.
const rateKey = "jisdor"

// PgxRateStoreRepository implements the rate store repository interfaces
// using pgxpool. It gives the resolver the generic get / set-with-merge
// contract over two tables: a single-row current record and a per-date
// history.
type PgxRateStoreRepository struct {
	BaseRepository
}

// NewPgxRateStoreRepository creates a new PgxRateStoreRepository.
func NewPgxRateStoreRepository(db *pgxpool.Pool) *PgxRateStoreRepository {
	return &PgxRateStoreRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetCurrentRate retrieves the persisted current-rate record.
func (r *PgxRateStoreRepository) GetCurrentRate(ctx context.Context) (*domain.RateRecord, error) {
	query := `
		SELECT rate_key, value, source, updated_at, updated_by
		FROM exchange_rates
		WHERE rate_key = $1;
	`

	var modelRecord models.RateRecord
	err := r.Pool.QueryRow(ctx, query, rateKey).Scan(
		&modelRecord.RateKey, &modelRecord.Value, &modelRecord.Source,
		&modelRecord.UpdatedAt, &modelRecord.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("current rate record not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get current rate", err)
	}

	domainRecord := mapping.ToDomainRateRecord(modelRecord)
	return &domainRecord, nil
}

// SaveCurrentRate upserts the current-rate record. Merge semantics: an empty
// updated_by on the incoming record keeps whatever the row already holds, so
// a background fetch never erases the last manual editor.
func (r *PgxRateStoreRepository) SaveCurrentRate(ctx context.Context, record domain.RateRecord) error {
	modelRecord := mapping.ToModelRateRecord(record)
	if modelRecord.UpdatedAt.IsZero() {
		modelRecord.UpdatedAt = time.Now()
	}

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO exchange_rates (rate_key, value, source, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (rate_key) DO UPDATE SET
			value      = EXCLUDED.value,
			source     = EXCLUDED.source,
			updated_at = EXCLUDED.updated_at,
			updated_by = COALESCE(NULLIF(EXCLUDED.updated_by, ''), exchange_rates.updated_by)`,
		modelRecord.RateKey, modelRecord.Value, modelRecord.Source,
		modelRecord.UpdatedAt, modelRecord.UpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save current rate", err)
	}
	return nil
}

// GetHistoricalRate retrieves the persisted record for one date (YYYY-MM-DD).
func (r *PgxRateStoreRepository) GetHistoricalRate(ctx context.Context, date string) (*domain.HistoricalRateRecord, error) {
	query := `
		SELECT rate_date, value, source, updated_at
		FROM exchange_rate_history
		WHERE rate_date = $1;
	`

	var modelRecord models.HistoricalRateRecord
	var rateDate time.Time
	err := r.Pool.QueryRow(ctx, query, date).Scan(
		&rateDate, &modelRecord.Value, &modelRecord.Source, &modelRecord.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no rate record for date " + date)
		}
		return nil, apperrors.NewAppError(500, "failed to get historical rate", err)
	}
	modelRecord.RateDate = rateDate.Format("2006-01-02")

	domainRecord := mapping.ToDomainHistoricalRateRecord(modelRecord)
	return &domainRecord, nil
}

// SaveHistoricalRate upserts the record keyed by its date.
func (r *PgxRateStoreRepository) SaveHistoricalRate(ctx context.Context, record domain.HistoricalRateRecord) error {
	modelRecord := mapping.ToModelHistoricalRateRecord(record)
	if modelRecord.UpdatedAt.IsZero() {
		modelRecord.UpdatedAt = time.Now()
	}

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO exchange_rate_history (rate_date, value, source, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (rate_date) DO UPDATE SET
			value      = EXCLUDED.value,
			source     = EXCLUDED.source,
			updated_at = EXCLUDED.updated_at`,
		modelRecord.RateDate, modelRecord.Value, modelRecord.Source, modelRecord.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save historical rate", err)
	}
	return nil
}
