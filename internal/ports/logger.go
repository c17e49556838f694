package ports

import "context"

// Logger — логгер с контекстом: request_id, order_ref и trace_id берутся из ctx.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
