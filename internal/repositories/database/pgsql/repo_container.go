package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/siperka/siperka_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RateStoreRepo:   NewPgxRateStoreRepository(dbPool),
		ProcurementRepo: NewPgxProcurementRepository(dbPool),
		EstimationRepo:  NewPgxEstimationRepository(dbPool),
	}
}
