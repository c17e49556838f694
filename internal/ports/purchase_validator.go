package ports

import (
	"context"

	"github.com/Gunvolt24/ticketflow/internal/domain"
)

// PurchaseValidator — проверка заявки; нарушения возвращаются данными, а не ошибкой.
type PurchaseValidator interface {
	Validate(ctx context.Context, req *domain.PurchaseRequest) domain.ValidationReport
}
