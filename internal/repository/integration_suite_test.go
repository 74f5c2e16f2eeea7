//go:build integration

package repository_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"cargo-dispatch-service/internal/repository"
)

var tcPool *pgxpool.Pool

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("dispatch_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_pass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start postgres testcontainer: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminate(ctx, pgContainer)
		log.Fatalf("failed to get connection string from container: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		terminate(ctx, pgContainer)
		log.Fatalf("failed to create pgx pool: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		terminate(ctx, pgContainer)
		log.Fatalf("failed to ping postgres in testcontainer: %v", err)
	}

	if err := repository.ApplySchema(ctx, pool); err != nil {
		pool.Close()
		terminate(ctx, pgContainer)
		log.Fatalf("failed to apply schema: %v", err)
	}

	tcPool = pool

	code := m.Run()

	pool.Close()
	terminate(ctx, pgContainer)

	os.Exit(code)
}

func terminate(ctx context.Context, c *postgres.PostgresContainer) {
	if err := c.Terminate(ctx); err != nil {
		log.Printf("failed to terminate postgres container: %v", err)
	}
}
