package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/ticketflow/internal/ports"
	"github.com/Gunvolt24/ticketflow/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — часть kafka.Reader, которой пользуется Consumer.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// messageProcessor декодирует сообщение и сохраняет покупку.
type messageProcessor interface {
	ProcessMessage(ctx context.Context, raw []byte) error
}

// Consumer читает топик заявок последовательно, по одному сообщению,
// и коммитит оффсет только после того, как сообщение обработано или признано нераспознаваемым.
type Consumer struct {
	reader         reader
	processor      messageProcessor
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

func NewConsumer(cfg *ConsumerConfig, processor messageProcessor, log ports.Logger) *Consumer {
	pt, rInit, rMax := cfg.timings()
	return &Consumer{
		reader:         kafka.NewReader(cfg.ReaderConfig()),
		processor:      processor,
		log:            log,
		processTimeout: pt,
		retryInitial:   rInit,
		retryMax:       rMax,
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run крутит цикл fetch → process → commit до отмены ctx.
// Временная ошибка обработки повторяет то же сообщение, оффсет при этом стоит на месте.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	for {
		msg, ok := c.fetch(ctx)
		if !ok {
			return ctx.Err()
		}
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if !c.processWithRetry(ctx, rc.Topic, &msg) {
			return ctx.Err()
		}
		c.commitSafely(ctx, &msg)
	}
}

// fetch читает следующее сообщение; ошибки брокера повторяются с backoff.
// false — контекст отменён.
func (c *Consumer) fetch(ctx context.Context) (kafka.Message, bool) {
	backoff := c.retryInitial
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err == nil {
			return msg, true
		}
		if ctx.Err() != nil {
			return kafka.Message{}, false
		}

		sleep := c.withJitterEqual(backoff)
		c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", err, sleep)
		if !c.sleepWithBackoff(ctx, sleep) {
			return kafka.Message{}, false
		}
		backoff = c.nextBackoff(backoff)
	}
}

// Close закрывает reader; повторные вызовы ничего не делают.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
