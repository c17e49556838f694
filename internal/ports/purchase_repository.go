package ports

import (
	"context"

	"github.com/Gunvolt24/ticketflow/internal/domain"
)

// PurchaseRepository — хранилище обработанных покупок.
type PurchaseRepository interface {
	// Insert — одна вставка; inserted=false, если order_reference уже сохранён (повторная доставка).
	Insert(ctx context.Context, purchase *domain.PersistedPurchase) (inserted bool, err error)
}
