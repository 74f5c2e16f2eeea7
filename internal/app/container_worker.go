package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"cargo-dispatch-service/internal/config"
	"cargo-dispatch-service/internal/logx"
	"cargo-dispatch-service/internal/repository"
	"cargo-dispatch-service/internal/service/driver"
	"cargo-dispatch-service/internal/transport/kafka"
)

// WorkerContainerBuilder is a dig container builder for the location worker.
type WorkerContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewWorkerContainerBuilder returns a new worker container builder
func NewWorkerContainerBuilder() *WorkerContainerBuilder {
	return &WorkerContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *WorkerContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *WorkerContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *WorkerContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *WorkerContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *WorkerContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *WorkerContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildWorkerContainer builds and returns a new worker dig container
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewWorkerContainerBuilder().MustBuild(ctx)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		repository.NewDriverRepo,
		func(repo *repository.DriverRepo, cfg *config.Config) *driver.Service {
			return driver.NewService(repo, cfg.Dispatch.OperationTimeout)
		},
		makeLocationHandler,
		func(cfg *config.Config, h kafka.HandleFunc, logger logx.Logger) (*kafka.Consumer, error) {
			return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h, logger)
		},
	)
}
