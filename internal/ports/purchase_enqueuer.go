package ports

import (
	"context"

	"github.com/Gunvolt24/ticketflow/internal/domain"
)

// PurchaseEnqueuer — передача сообщения в очередь.
// Ошибки транспорта не пробрасываются: реализация логирует их и возвращает false.
type PurchaseEnqueuer interface {
	Enqueue(ctx context.Context, msg *domain.PurchaseMessage) bool
}
