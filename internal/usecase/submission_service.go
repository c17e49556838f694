package usecase

import (
	"context"

	"github.com/Gunvolt24/ticketflow/internal/domain"
	"github.com/Gunvolt24/ticketflow/internal/ports"
	"github.com/Gunvolt24/ticketflow/pkg/ctxmeta"
	"github.com/Gunvolt24/ticketflow/pkg/metrics"
	"github.com/Gunvolt24/ticketflow/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Проверка, что SubmissionService удовлетворяет порту приёма заявок.
var _ ports.PurchaseSubmitter = (*SubmissionService)(nil)

// SubmissionService — приём заявки: валидация, номер заказа, одна попытка постановки в очередь.
type SubmissionService struct {
	validator ports.PurchaseValidator
	refs      ports.ReferenceGenerator
	queue     ports.PurchaseEnqueuer
	log       ports.Logger
}

// NewSubmissionService — DI-конструктор.
func NewSubmissionService(
	validator ports.PurchaseValidator,
	refs ports.ReferenceGenerator,
	queue ports.PurchaseEnqueuer,
	log ports.Logger,
) *SubmissionService {
	return &SubmissionService{
		validator: validator,
		refs:      refs,
		queue:     queue,
		log:       log,
	}
}

// Submit проверяет заявку и ставит её в очередь.
// Невалидная заявка не попадает в очередь и возвращается как *domain.ValidationError.
// Если брокер не подтвердил запись — domain.ErrEnqueueFailed, повторов нет.
func (s *SubmissionService) Submit(ctx context.Context, req *domain.PurchaseRequest) (*domain.Receipt, error) {
	ctx, span := telemetry.StartSpan(ctx, "purchase.submit")
	defer span.End()

	report := s.validator.Validate(ctx, req)
	if !report.Empty() {
		for _, field := range report.Fields() {
			metrics.PurchaseValidationFailures.WithLabelValues(field).Inc()
		}
		metrics.PurchaseSubmissions.WithLabelValues("rejected").Inc()
		s.log.Infof(ctx, "purchase rejected fields=%v", report.Fields())
		span.SetStatus(codes.Error, "validation failed")
		return nil, &domain.ValidationError{Report: report}
	}

	ref := s.refs.New(req.ConcertID)
	ctx = ctxmeta.WithOrderReference(ctx, ref)
	span.SetAttributes(
		attribute.String("order.reference", ref),
		attribute.Int("concert.id", req.ConcertID),
		attribute.Int("ticket.quantity", req.Quantity),
	)

	if !s.queue.Enqueue(ctx, &domain.PurchaseMessage{PurchaseRequest: *req, OrderReference: ref}) {
		metrics.PurchaseSubmissions.WithLabelValues("enqueue_failed").Inc()
		s.log.Warnf(ctx, "purchase not enqueued concert_id=%d", req.ConcertID)
		span.SetStatus(codes.Error, "enqueue failed")
		return nil, domain.ErrEnqueueFailed
	}

	metrics.PurchaseSubmissions.WithLabelValues("accepted").Inc()
	s.log.Infof(ctx, "purchase accepted concert_id=%d quantity=%d", req.ConcertID, req.Quantity)

	return &domain.Receipt{
		OrderReference:          ref,
		TicketCount:             req.Quantity,
		EstimatedProcessingTime: domain.EstimatedProcessingTime,
	}, nil
}
