package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Приём заявок (HTTP).
var (
	PurchaseSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchase_submissions_total",
			Help: "Ticket purchase submissions by outcome",
		},
		[]string{"outcome"}, // accepted|rejected|enqueue_failed
	)
	PurchaseValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchase_validation_failures_total",
			Help: "Validation failures by field",
		},
		[]string{"field"},
	)
	QueueEnqueue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_enqueue_total",
			Help: "Enqueue attempts by result",
		},
		[]string{"topic", "result"}, // ok|error
	)
)

// Обработка очереди.
var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
	KafkaMessagesDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_dropped_total",
			Help: "Number of undecodable messages committed without processing",
		},
		[]string{"topic"},
	)
	KafkaRedeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_message_redeliveries_total",
			Help: "Number of processing retries of the same message",
		},
		[]string{"topic"},
	)
	PurchasesPersisted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchases_persisted_total",
			Help: "Purchases written to storage",
		},
		[]string{"result"}, // inserted|duplicate
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

var registerOnce sync.Once

// MustRegister регистрирует метрики в глобальном реестре; повторные вызовы игнорируются.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			PurchaseSubmissions, PurchaseValidationFailures, QueueEnqueue,
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
			KafkaMessagesDropped, KafkaRedeliveries, PurchasesPersisted,
			CacheOps, CacheSize,
		)
	})
}
