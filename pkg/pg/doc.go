// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool
// with startup retries, goose schema migrations, and a readiness probe.
//
// The pieces cooperate but stay independent:
//
//   - Config is populated from environment variables via pkg/config and
//     controls pool limits, retry budget and migration paths.
//   - Connect opens a *pgxpool.Pool from Config and only returns once the
//     database has answered a ping, retrying with a growing delay.
//   - Migrate applies the SQL migrations from the migrations directory,
//     guaranteeing the schema is current before the server accepts traffic.
//   - Healthcheck plugs the pool into httpserver.HealthCheckHandler.
//
// Error classification helpers [IsNotFound] and [IsDuplicateKey] let the
// tenant-scoped repositories translate driver errors into their own domain
// sentinels without comparing against pgx types themselves.
package pg
