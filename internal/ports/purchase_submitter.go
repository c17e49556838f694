package ports

import (
	"context"

	"github.com/Gunvolt24/ticketflow/internal/domain"
)

// PurchaseSubmitter — приём заявки: валидация и передача в очередь.
// Ошибки: *domain.ValidationError или domain.ErrEnqueueFailed.
type PurchaseSubmitter interface {
	Submit(ctx context.Context, req *domain.PurchaseRequest) (*domain.Receipt, error)
}
