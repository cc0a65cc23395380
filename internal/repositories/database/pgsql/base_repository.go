package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository holds the shared connection pool embedded by every
// repository in this package. All current operations are single-statement
// reads or upserts, so no transaction helpers live here.
type BaseRepository struct {
	Pool *pgxpool.Pool
}
