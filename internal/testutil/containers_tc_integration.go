//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:16-alpine"
	redpandaImage = "docker.redpanda.com/redpandadata/redpanda:v23.3.8"
)

var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

// lifecycle — лог основных этапов контейнера: старт, готовность, остановка.
func lifecycle(kind string) tc.ContainerLifecycleHooks {
	note := func(stage string) tc.ContainerHook {
		return func(_ context.Context, c tc.Container) error {
			id := c.GetContainerID()
			if len(id) > 12 {
				id = id[:12]
			}
			tcLogger.Printf("%s %s id=%s", kind, stage, id)
			return nil
		}
	}
	return tc.ContainerLifecycleHooks{
		PostStarts:     []tc.ContainerHook{note("started")},
		PostReadies:    []tc.ContainerHook{note("ready")},
		PostTerminates: []tc.ContainerHook{note("terminated")},
	}
}

// Store — Postgres с применённой схемой ticket_purchases.
type Store struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

// StartStore поднимает Postgres, накатывает миграции и открывает пул.
// Возвращаемая функция закрывает пул и останавливает контейнер.
func StartStore(ctx context.Context) (*Store, func(context.Context) error, error) {
	pg, err := postgres.Run(ctx, postgresImage,
		tc.WithLifecycleHooks(lifecycle("postgres")),
		postgres.WithDatabase("tickets"),
		postgres.WithUsername("app"),
		postgres.WithPassword("app"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}
	fail := func(step string, err error) (*Store, func(context.Context) error, error) {
		_ = pg.Terminate(context.Background())
		return nil, nil, fmt.Errorf("%s: %w", step, err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fail("connection string", err)
	}
	if err := migrate(ctx, dsn); err != nil {
		return fail("migrate", err)
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fail("parse dsn", err)
	}
	cfg.MaxConns = 5
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fail("open pool", err)
	}

	stop := func(c context.Context) error {
		pool.Close()
		return pg.Terminate(c)
	}
	return &Store{Container: pg, Pool: pool, DSN: dsn}, stop, nil
}
