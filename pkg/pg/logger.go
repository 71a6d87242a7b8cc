package pg

import "context"

// logger is the subset of *slog.Logger that migrations need. Taking an
// interface keeps goose output routed through application logging.
type logger interface {
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}
