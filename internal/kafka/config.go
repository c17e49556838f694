package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Заголовок сообщения с request_id HTTP-запроса, породившего заявку.
const HeaderRequestID = "X-Request-ID"

type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string

	ProcessTimeout time.Duration
	RetryInitial   time.Duration
	RetryMax       time.Duration
}

const (
	defaultProcessTimeout = 5 * time.Second
	defaultRetryInitial   = time.Second
	defaultRetryMax       = 30 * time.Second
)

// timings — таймаут обработки и границы backoff; нулевые значения заменяются значениями по умолчанию.
func (c *ConsumerConfig) timings() (process, retryInitial, retryMax time.Duration) {
	pick := func(v, def time.Duration) time.Duration {
		if v <= 0 {
			return def
		}
		return v
	}
	return pick(c.ProcessTimeout, defaultProcessTimeout),
		pick(c.RetryInitial, defaultRetryInitial),
		pick(c.RetryMax, defaultRetryMax)
}

// ReaderConfig — настройки kafka.Reader с ручным коммитом оффсетов.
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	rc := kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		CommitInterval: 0,
	}

	switch strings.ToLower(strings.TrimSpace(c.StartOffset)) {
	case "first":
		rc.StartOffset = kafka.FirstOffset
	default:
		rc.StartOffset = kafka.LastOffset
	}

	return rc
}

type ProducerConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
	BatchTimeout time.Duration
}

// NewWriter — kafka.Writer с подтверждением от всех реплик.
// Ключ сообщения — номер заказа, поэтому балансировка по хешу ключа.
func (c *ProducerConfig) NewWriter() *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Topic:                  c.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           c.BatchTimeout,
		WriteTimeout:           c.WriteTimeout,
		AllowAutoTopicCreation: true,
	}
}
