package ports

import "context"

// MessageConsumer — фоновый читатель очереди заявок; Run блокируется до отмены ctx.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
