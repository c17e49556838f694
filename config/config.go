package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix — префикс переменных окружения сервиса (TICKET_HTTP_ADDR и т.д.).
const EnvPrefix = "TICKET"

// Режимы запуска процесса.
const (
	ModeAPI    = "api"    // только приём заявок
	ModeWorker = "worker" // только консьюмер
	ModeAll    = "all"    // оба компонента в одном процессе
)

var (
	ErrMissingKafkaBrokers = errors.New("kafka brokers are required")
	ErrMissingPostgresDSN  = errors.New("postgres dsn is required")
	ErrUnknownMode         = errors.New("unknown app mode")
)

type App struct {
	Mode string `default:"all" envconfig:"MODE"`
}

type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `default:"10s" envconfig:"WRITE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	HandlerTimeout    time.Duration `default:"5s" envconfig:"HANDLER_TIMEOUT"`
	GracefulTimeout   time.Duration `default:"10s" envconfig:"GRACEFUL_TIMEOUT"`
}

// Metrics — адрес служебного сервера (/ping, /metrics) в режиме worker.
type Metrics struct {
	Addr string `default:":2112" envconfig:"ADDR"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"ticket-purchases" envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO"`
}

type Postgres struct {
	DSN      string `envconfig:"DSN"`
	MaxConns int32  `default:"10" envconfig:"MAX_CONNS"`
}

type Kafka struct {
	Brokers        []string      `envconfig:"BROKERS"`
	Topic          string        `default:"process-ticket-purchase" envconfig:"TOPIC"`
	GroupID        string        `default:"ticket-purchase-processor" envconfig:"GROUP_ID"`
	StartOffset    string        `default:"first" envconfig:"START_OFFSET"`
	ProcessTimeout time.Duration `default:"5s" envconfig:"PROCESS_TIMEOUT"`
	RetryInitial   time.Duration `default:"1s" envconfig:"RETRY_INITIAL"`
	RetryMax       time.Duration `default:"30s" envconfig:"RETRY_MAX"`
	WriteTimeout   time.Duration `default:"3s" envconfig:"WRITE_TIMEOUT"`
	BatchTimeout   time.Duration `default:"10ms" envconfig:"BATCH_TIMEOUT"`
}

// Cache — LRU недавно сохранённых номеров заказа.
type Cache struct {
	Capacity int           `default:"10000" envconfig:"CAPACITY"`
	TTL      time.Duration `default:"1h" envconfig:"TTL"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

type Config struct {
	App      App
	HTTP     HTTP
	Metrics  Metrics
	Tracing  Tracing
	Postgres Postgres
	Kafka    Kafka
	Cache    Cache
	Logger   Logger
}

// Load читает конфигурацию с префиксом TICKET и проверяет обязательные значения.
func Load() (Config, error) {
	c, err := LoadWithPrefix(EnvPrefix)
	if err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadWithPrefix — только разбор окружения, без Validate.
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config

	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, fmt.Errorf("process env %s: %w", prefix, err)
	}

	c.App.Mode = strings.ToLower(strings.TrimSpace(c.App.Mode))
	c.Kafka.Brokers = nonEmpty(c.Kafka.Brokers)
	return c, nil
}

// Validate — fail-fast на старте: брокеры нужны всегда, DSN — там, где есть консьюмер.
func (c *Config) Validate() error {
	switch c.App.Mode {
	case ModeAPI, ModeWorker, ModeAll:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, c.App.Mode)
	}

	if len(c.Kafka.Brokers) == 0 {
		return ErrMissingKafkaBrokers
	}
	if c.RunsConsumer() && strings.TrimSpace(c.Postgres.DSN) == "" {
		return ErrMissingPostgresDSN
	}
	return nil
}

// RunsAPI — поднимать ли публичный HTTP API.
func (c *Config) RunsAPI() bool { return c.App.Mode == ModeAPI || c.App.Mode == ModeAll }

// RunsConsumer — поднимать ли консьюмер.
func (c *Config) RunsConsumer() bool { return c.App.Mode == ModeWorker || c.App.Mode == ModeAll }

// nonEmpty — элементы списка без пробелов по краям и без пустых.
func nonEmpty(items []string) []string {
	var out []string
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
