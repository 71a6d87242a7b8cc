package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrInvalidConfig is returned when the connection string cannot be
	// parsed into a pool configuration.
	ErrInvalidConfig = errors.New("pg.invalid_config")

	// ErrConnectFailed is returned when no connection could be established
	// within the configured retry budget.
	ErrConnectFailed = errors.New("pg.connect_failed")

	// ErrHealthcheckFailed is returned by the readiness probe when the pool
	// cannot reach the database.
	ErrHealthcheckFailed = errors.New("pg.healthcheck_failed")

	// ErrMigrationsFailed is returned when schema migrations cannot be
	// applied. The server must not start serving on a stale schema.
	ErrMigrationsFailed = errors.New("pg.migrations_failed")
)

// IsNotFound reports whether err means the query matched no rows. The
// repositories use it to map pgx.ErrNoRows onto their own not-found
// sentinels without importing the driver for the comparison.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKey reports whether err is a unique constraint violation
// (SQLSTATE 23505), such as two invoices racing for the same number within
// a tenant.
func IsDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
