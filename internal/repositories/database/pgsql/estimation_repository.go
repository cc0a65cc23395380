package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/siperka/siperka_backend/internal/apperrors"
	"github.com/siperka/siperka_backend/internal/core/domain"
	"github.com/siperka/siperka_backend/internal/models"
	"github.com/siperka/siperka_backend/internal/utils/mapping"
)

// PgxEstimationRepository implements the estimation history repository
// interfaces using pgxpool.
type PgxEstimationRepository struct {
	BaseRepository
}

// NewPgxEstimationRepository creates a new PgxEstimationRepository.
func NewPgxEstimationRepository(db *pgxpool.Pool) *PgxEstimationRepository {
	return &PgxEstimationRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveEstimation persists a computed estimation to the history.
func (r *PgxEstimationRepository) SaveEstimation(ctx context.Context, record domain.EstimationRecord) error {
	modelRecord := mapping.ToModelEstimationRecord(record)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO estimation_history (
			estimation_id, product_name, estimated_price, rate,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		modelRecord.EstimationID, modelRecord.ProductName, modelRecord.EstimatedPrice,
		modelRecord.Rate, modelRecord.CreatedAt, modelRecord.CreatedBy,
		modelRecord.LastUpdatedAt, modelRecord.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save estimation", err)
	}
	return nil
}

// ListEstimations retrieves saved estimations, newest first.
func (r *PgxEstimationRepository) ListEstimations(ctx context.Context, limit int) ([]domain.EstimationRecord, error) {
	query := `
		SELECT estimation_id, product_name, estimated_price, rate,
			created_at, created_by, last_updated_at, last_updated_by
		FROM estimation_history
		ORDER BY created_at DESC
		LIMIT $1;
	`

	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list estimations", err)
	}
	defer rows.Close()

	var records []domain.EstimationRecord
	for rows.Next() {
		var modelRecord models.EstimationRecord
		err := rows.Scan(
			&modelRecord.EstimationID, &modelRecord.ProductName, &modelRecord.EstimatedPrice,
			&modelRecord.Rate, &modelRecord.CreatedAt, &modelRecord.CreatedBy,
			&modelRecord.LastUpdatedAt, &modelRecord.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan estimation record", err)
		}
		records = append(records, mapping.ToDomainEstimationRecord(modelRecord))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating estimation records", err)
	}

	return records, nil
}
