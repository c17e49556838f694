package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/ticketflow/internal/domain"
	"github.com/Gunvolt24/ticketflow/pkg/ctxmeta"
	"github.com/Gunvolt24/ticketflow/pkg/metrics"
	"github.com/Gunvolt24/ticketflow/pkg/wire"
	"github.com/segmentio/kafka-go"
)

// processWithRetry обрабатывает сообщение, повторяя временные ошибки с backoff.
// Возвращает false, только если контекст отменён до успешной обработки.
func (c *Consumer) processWithRetry(ctx context.Context, topic string, msg *kafka.Message) bool {
	msgCtx := ctxmeta.WithRequestID(ctx, headerValue(msg, HeaderRequestID))
	backoff := c.retryInitial

	for attempt := 1; ; attempt++ {
		if c.handleMessage(msgCtx, topic, msg) {
			return true
		}
		if ctx.Err() != nil {
			return false
		}

		metrics.KafkaRedeliveries.WithLabelValues(topic).Inc()
		sleep := c.withJitterEqual(backoff)
		c.log.Warnf(msgCtx, "redelivering offset=%d in %s (attempt %d)", msg.Offset, sleep, attempt+1)
		if !c.sleepWithBackoff(ctx, sleep) {
			return false
		}
		backoff = c.nextBackoff(backoff)
	}
}

// handleMessage обрабатывает одно сообщение и определяет, можно ли коммитить оффсет.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	ctxTimeout, cancel := context.WithTimeout(ctx, c.processTimeout)
	err := c.processor.ProcessMessage(ctxTimeout, msg.Value)
	cancel()

	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return true
	case errors.Is(err, wire.ErrDecode):
		// Повреждённое сообщение: повтор не поможет, логируем и коммитим
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		metrics.KafkaMessagesDropped.WithLabelValues(topic).Inc()
		c.log.Errorf(ctx, "undecodable message offset=%d partition=%d: %v (dropped)", msg.Offset, msg.Partition, err)
		return true
	case errors.Is(err, domain.ErrUnstorable):
		// БД отвергла сами значения: иначе сообщение заблокирует партицию навсегда
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		metrics.KafkaMessagesDropped.WithLabelValues(topic).Inc()
		c.log.Errorf(ctx, "unstorable message offset=%d partition=%d: %v (dropped)", msg.Offset, msg.Partition, err)
		return true
	default:
		// Временная ошибка (БД/сеть/таймаут): НЕ коммитим
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "process failed offset=%d: %v", msg.Offset, err)
		return false
	}
}

// commitSafely пытается закоммитить оффсет и залогировать ошибку.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if commitErr := c.reader.CommitMessages(ctx, *msg); commitErr != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, commitErr)
	}
}

func headerValue(msg *kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// sleepWithBackoff ждет backoff или останавливается по контексту.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// nextBackoff возвращает следующее время ожидания повтора с учетом retryMax.
func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > c.retryMax {
		return c.retryMax
	}
	return current
}

// withJitterEqual — умеренная случайность: половина задержки фиксирована,
// вторая половина — случайная.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(c.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}
