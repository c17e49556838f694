package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/ticketflow/config"
	cachemem "github.com/Gunvolt24/ticketflow/internal/cache/memory"
	"github.com/Gunvolt24/ticketflow/internal/kafka"
	"github.com/Gunvolt24/ticketflow/internal/ports"
	"github.com/Gunvolt24/ticketflow/internal/repo/postgres"
	rest "github.com/Gunvolt24/ticketflow/internal/transport/http"
	"github.com/Gunvolt24/ticketflow/internal/usecase"
	"github.com/Gunvolt24/ticketflow/pkg/logger"
	"github.com/Gunvolt24/ticketflow/pkg/metrics"
	"github.com/Gunvolt24/ticketflow/pkg/orderref"
	"github.com/Gunvolt24/ticketflow/pkg/telemetry"
	"github.com/Gunvolt24/ticketflow/pkg/validate"
	"github.com/gin-gonic/gin"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, consumer).
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // публичный API или служебный сервер в режиме worker
	KafkaConsumer   ports.MessageConsumer // консьюмер сообщений; nil в режиме api
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости для режима cfg.App.Mode и возвращает приложение, функцию очистки и ошибку.
//
//	api    — HTTP API + producer
//	worker — consumer + Postgres + служебный HTTP (/ping, /metrics, /tickets/health) на Metrics.Addr
//	all    — всё вместе, служебные маршруты на публичном сервере
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	if err := cfg.Validate(); err != nil {
		return nil, func() {}, err
	}

	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Стек очистки: выполняется в обратном порядке.
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	if cfg.Tracing.Enabled {
		shutdownTrace, tErr := telemetry.SetupTracing(ctx, telemetry.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			closers = append(closers, func() {
				if terr := shutdownTrace(context.Background()); terr != nil {
					logg.Warnf(ctx, "shutdown tracing: %v", terr)
				}
			})
		}
	}

	refs := orderref.NewGenerator()

	// Приём заявок: валидатор → номер заказа → producer.
	var submitter ports.PurchaseSubmitter
	if cfg.RunsAPI() {
		producer := kafka.NewProducer(&kafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			WriteTimeout: cfg.Kafka.WriteTimeout,
			BatchTimeout: cfg.Kafka.BatchTimeout,
		}, logg)
		closers = append(closers, func() {
			if perr := producer.Close(); perr != nil {
				logg.Warnf(ctx, "kafka producer close error: %v", perr)
			}
		})
		submitter = usecase.NewSubmissionService(validate.NewPurchaseValidator(), refs, producer, logg)
	}

	// Обработка очереди: Postgres + кэш номеров + consumer.
	var consumer ports.MessageConsumer
	if cfg.RunsConsumer() {
		pool, pErr := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if pErr != nil {
			cleanup()
			return nil, func() {}, pErr
		}
		closers = append(closers, pool.Close)

		processor := usecase.NewPurchaseProcessor(
			postgres.NewPurchaseRepository(pool),
			cachemem.NewReferenceCache(cfg.Cache.Capacity, cfg.Cache.TTL),
			refs,
			logg,
		)
		kc := kafka.NewConsumer(&kafka.ConsumerConfig{
			Brokers:        cfg.Kafka.Brokers,
			GroupID:        cfg.Kafka.GroupID,
			Topic:          cfg.Kafka.Topic,
			StartOffset:    cfg.Kafka.StartOffset,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
		}, processor, logg)
		closers = append(closers, func() {
			if kerr := kc.Close(); kerr != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", kerr)
			}
		})
		consumer = kc
	}

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(submitter, logg, cfg.HTTP.HandlerTimeout)
	addr := cfg.HTTP.Addr
	var router http.Handler
	if cfg.RunsAPI() {
		router = rest.NewRouter(httpHandler, otelServiceName)
	} else {
		addr = cfg.Metrics.Addr
		router = rest.NewOpsRouter(httpHandler)
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	logg.Infof(ctx, "bootstrap complete mode=%s addr=%s topic=%s", cfg.App.Mode, addr, cfg.Kafka.Topic)

	return &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		KafkaConsumer:   consumer,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}, cleanup, nil
}

// Run — запускает HTTP-сервер и консьюмера; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	// Запуск консьюмера (если есть в этом режиме).
	if a.KafkaConsumer != nil {
		go func() {
			a.Logger.Infof(ctx, "kafka consumer starting")
			if err := a.KafkaConsumer.Run(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Errorf(ctx, "background error: %v", err)
			runErr = err
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера: принятые запросы дорабатывают до конца.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	// Остановка Kafka-консьюмера
	if a.KafkaConsumer != nil {
		if err := a.KafkaConsumer.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}
