package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/siperka/siperka_backend/internal/apperrors"
	"github.com/siperka/siperka_backend/internal/core/domain"
	"github.com/siperka/siperka_backend/internal/models"
	"github.com/siperka/siperka_backend/internal/utils/mapping"
)

// PgxProcurementRepository implements read access to procurement history
// using pgxpool.
type PgxProcurementRepository struct {
	BaseRepository
}

// NewPgxProcurementRepository creates a new PgxProcurementRepository.
func NewPgxProcurementRepository(db *pgxpool.Pool) *PgxProcurementRepository {
	return &PgxProcurementRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindByProductName retrieves every procurement record for a product name,
// oldest purchase first. An unknown product yields an empty slice, not an
// error; the service layer decides what absence means.
func (r *PgxProcurementRepository) FindByProductName(ctx context.Context, productName string) ([]domain.ProcurementRecord, error) {
	query := `
		SELECT procurement_id, product_name, vendor_name, total_price, release_date
		FROM procurement_records
		WHERE product_name = $1
		ORDER BY release_date ASC;
	`

	rows, err := r.Pool.Query(ctx, query, productName)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query procurement records", err)
	}
	defer rows.Close()

	var records []domain.ProcurementRecord
	for rows.Next() {
		var modelRecord models.ProcurementRecord
		err := rows.Scan(
			&modelRecord.ProcurementID, &modelRecord.ProductName, &modelRecord.VendorName,
			&modelRecord.TotalPrice, &modelRecord.ReleaseDate,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan procurement record", err)
		}
		records = append(records, mapping.ToDomainProcurementRecord(modelRecord))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating procurement records", err)
	}

	return records, nil
}
