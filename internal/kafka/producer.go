package kafka

import (
	"context"
	"sync"

	"github.com/Gunvolt24/ticketflow/internal/domain"
	"github.com/Gunvolt24/ticketflow/internal/ports"
	"github.com/Gunvolt24/ticketflow/pkg/ctxmeta"
	"github.com/Gunvolt24/ticketflow/pkg/metrics"
	"github.com/Gunvolt24/ticketflow/pkg/wire"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Producer удовлетворяет порту очереди.
var _ ports.PurchaseEnqueuer = (*Producer)(nil)

// messageWriter — минимальный контракт над kafka.Writer для подмены в тестах.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует принятые заявки в топик обработки.
type Producer struct {
	writer    messageWriter
	topic     string
	log       ports.Logger
	closeOnce sync.Once
}

func NewProducer(cfg *ProducerConfig, log ports.Logger) *Producer {
	return newProducer(cfg.NewWriter(), cfg.Topic, log)
}

func newProducer(w messageWriter, topic string, log ports.Logger) *Producer {
	return &Producer{writer: w, topic: topic, log: log}
}

// Enqueue — одна попытка записи с подтверждением брокера.
// Ошибки логируются здесь; вызывающему достаточно признака успеха.
func (p *Producer) Enqueue(ctx context.Context, msg *domain.PurchaseMessage) bool {
	payload, err := wire.Encode(msg)
	if err != nil {
		p.log.Errorf(ctx, "encode purchase message: %v", err)
		metrics.QueueEnqueue.WithLabelValues(p.topic, "error").Inc()
		return false
	}

	km := kafka.Message{
		Key:   []byte(msg.OrderReference),
		Value: payload,
	}
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		km.Headers = append(km.Headers, kafka.Header{Key: HeaderRequestID, Value: []byte(rid)})
	}

	if err := p.writer.WriteMessages(ctx, km); err != nil {
		p.log.Errorf(ctx, "enqueue to topic=%s failed: %v", p.topic, err)
		metrics.QueueEnqueue.WithLabelValues(p.topic, "error").Inc()
		return false
	}

	metrics.QueueEnqueue.WithLabelValues(p.topic, "ok").Inc()
	return true
}

// Close — сбрасывает буфер и закрывает соединения writer'а.
func (p *Producer) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}
