package ports

import "context"

// ReferenceCache — недавно сохранённые order reference.
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1).
type ReferenceCache interface {
	Contains(ctx context.Context, orderReference string) bool
	Add(ctx context.Context, orderReference string)
}
