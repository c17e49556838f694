// Пакет ctxmeta — нейтральный слой для работы с метаданными запроса,
// которые прокидываются через context.Context (request_id, номер заказа, trace_id).
// HTTP-слой, консьюмер и логгер зависят от этого пакета, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// Ключи контекста (неэкспортируемые типы — чтобы избежать коллизий).
	KeyRequestID      ctxKey = "request_id"
	KeyOrderReference ctxKey = "order_ref"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyRequestID)
}

// WithOrderReference кладёт номер заказа в контекст (если пусто — ничего не делает).
func WithOrderReference(ctx context.Context, ref string) context.Context {
	return withString(ctx, KeyOrderReference, ref)
}

// OrderReferenceFromContext достаёт номер заказа из контекста.
func OrderReferenceFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyOrderReference)
}

func withString(ctx context.Context, key ctxKey, value string) context.Context {
	if ctx == nil || value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
