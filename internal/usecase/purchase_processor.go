package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/ticketflow/internal/domain"
	"github.com/Gunvolt24/ticketflow/internal/ports"
	"github.com/Gunvolt24/ticketflow/pkg/ctxmeta"
	"github.com/Gunvolt24/ticketflow/pkg/metrics"
	"github.com/Gunvolt24/ticketflow/pkg/telemetry"
	"github.com/Gunvolt24/ticketflow/pkg/wire"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// PurchaseProcessor — обработка сообщения из очереди: декодирование и запись со статусом Completed.
type PurchaseProcessor struct {
	repo  ports.PurchaseRepository
	cache ports.ReferenceCache
	refs  ports.ReferenceGenerator
	log   ports.Logger
}

// NewPurchaseProcessor — DI-конструктор.
func NewPurchaseProcessor(
	repo ports.PurchaseRepository,
	cache ports.ReferenceCache,
	refs ports.ReferenceGenerator,
	log ports.Logger,
) *PurchaseProcessor {
	return &PurchaseProcessor{
		repo:  repo,
		cache: cache,
		refs:  refs,
		log:   log,
	}
}

// ProcessMessage — шаги:
//  1. декодирование base64 + JSON (ошибка оборачивает wire.ErrDecode и не логируется здесь);
//  2. номер заказа из сообщения, при отсутствии — новый;
//  3. повторная доставка уже сохранённой покупки отсекается кэшем и уникальным ключом в БД;
//  4. вставка строки со статусом Completed.
//
// Полная валидация не повторяется: заявка проверена при приёме.
func (p *PurchaseProcessor) ProcessMessage(ctx context.Context, raw []byte) error {
	ctx, span := telemetry.StartSpan(ctx, "purchase.process")
	defer span.End()

	msg, err := wire.Decode(raw)
	if err != nil {
		span.SetStatus(codes.Error, "decode failed")
		return err
	}

	ref := msg.OrderReference
	if ref == "" {
		ref = p.refs.New(msg.ConcertID)
		p.log.Warnf(ctx, "message without order reference, generated %s", ref)
	}
	ctx = ctxmeta.WithOrderReference(ctx, ref)
	span.SetAttributes(attribute.String("order.reference", ref))

	if p.cache.Contains(ctx, ref) {
		metrics.PurchasesPersisted.WithLabelValues("duplicate").Inc()
		p.log.Infof(ctx, "purchase already persisted, skipping")
		return nil
	}

	inserted, err := p.repo.Insert(ctx, domain.NewCompletedPurchase(msg.PurchaseRequest, ref))
	if err != nil {
		span.SetStatus(codes.Error, "insert failed")
		return fmt.Errorf("persist purchase %s: %w", ref, err)
	}
	p.cache.Add(ctx, ref)

	if !inserted {
		metrics.PurchasesPersisted.WithLabelValues("duplicate").Inc()
		p.log.Infof(ctx, "purchase already persisted (redelivery)")
		return nil
	}

	metrics.PurchasesPersisted.WithLabelValues("inserted").Inc()
	p.log.Infof(ctx, "purchase persisted concert_id=%d quantity=%d status=%s", msg.ConcertID, msg.Quantity, domain.ProcessStatusCompleted)
	return nil
}
