package app

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"cargo-dispatch-service/internal/config"
	"cargo-dispatch-service/internal/http/handlers"
	"cargo-dispatch-service/internal/logx"
	"cargo-dispatch-service/internal/notify"
	"cargo-dispatch-service/internal/service/dispatch"
	"cargo-dispatch-service/internal/service/driver"
	"cargo-dispatch-service/internal/transport/kafka"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:     8080,
		DB:       config.DefaultDB(),
		Kafka:    config.DefaultKafka(),
		AMQP:     config.DefaultAMQP(),
		Routing:  config.DefaultRouting(),
		Dispatch: config.DefaultDispatch(),
		RateLimit: config.RateLimit{
			Limit:  100,
			Window: time.Second,
		},
	}
}

func setupTestContainer(t *testing.T) *dig.Container {
	t.Helper()

	c := dig.New()

	providers := []struct {
		name     string
		provider any
	}{
		{"context", func() context.Context { return context.Background() }},
		{"logger", func() logx.Logger { return logx.Nop() }},
		{"config", func() *config.Config { return testConfig() }},
		{"pgxpool", func() *pgxpool.Pool { return &pgxpool.Pool{} }},
	}

	for _, p := range providers {
		err := c.Provide(p.provider)
		require.NoErrorf(t, err, "provide %s", p.name)
	}

	require.NoError(t, registerMetrics(c))
	require.NoError(t, registerGateways(c))
	require.NoError(t, registerNotify(c))
	require.NoError(t, registerService(c))
	require.NoError(t, registerHTTP(c))

	return c
}

func verifyServer(t *testing.T, srv *http.Server) {
	t.Helper()

	require.NotNil(t, srv, "http.Server is nil")
	require.Equal(t, ":8080", srv.Addr)
	require.Greater(t, srv.ReadHeaderTimeout, time.Duration(0))
	require.Greater(t, srv.ReadTimeout, time.Duration(0))
	require.Greater(t, srv.WriteTimeout, time.Duration(0))
	require.Greater(t, srv.IdleTimeout, time.Duration(0))
}

func TestRegisterAll_ProvidesHttpServerAndHandlers(t *testing.T) {
	t.Parallel()

	c := setupTestContainer(t)

	err := c.Invoke(func(
		srv *http.Server,
		base *handlers.Handlers,
		dispatchHandler *handlers.DispatchHandler,
		driverHandler *handlers.DriverHandler,
		dispatchSvc *dispatch.Service,
		driverSvc *driver.Service,
	) {
		verifyServer(t, srv)
		require.NotNil(t, base)
		require.NotNil(t, dispatchHandler)
		require.NotNil(t, driverHandler)
		require.NotNil(t, dispatchSvc)
		require.NotNil(t, driverSvc)
	})
	require.NoError(t, err)
}

func TestRegisterNotify_NoAMQPURL_PublisherIsNil(t *testing.T) {
	t.Parallel()

	c := setupTestContainer(t)

	err := c.Invoke(func(pub *notify.AMQPPublisher, n notify.Notifier) {
		require.Nil(t, pub)
		require.NotNil(t, n)
	})
	require.NoError(t, err)
}

func TestProvideAll_Success(t *testing.T) {
	t.Parallel()

	c := dig.New()

	err := provideAll(c,
		func() context.Context { return context.Background() },
		func() time.Duration { return 3 * time.Second },
	)
	require.NoError(t, err)

	err = c.Invoke(func(ctx context.Context, d time.Duration) {
		require.NotNil(t, ctx)
		require.Equal(t, 3*time.Second, d)
	})
	require.NoError(t, err)
}

func TestProvideAll_InvalidProvider(t *testing.T) {
	t.Parallel()

	c := dig.New()

	type bad struct{}
	err := provideAll(c, bad{})
	require.Error(t, err)
}

func TestRegisterDb_UsesDbConnectAndProvidesPool(t *testing.T) {
	t.Parallel()

	c := dig.New()
	ctx := context.Background()

	cfg := testConfig()

	require.NoError(t, c.Provide(func() context.Context { return ctx }))
	require.NoError(t, c.Provide(func() *config.Config { return cfg }))

	stubPool := &pgxpool.Pool{}

	stubConnect := func(
		gotCtx context.Context,
		dsn string,
		retries int,
		delay time.Duration,
	) (*pgxpool.Pool, error) {
		require.Equal(t, ctx, gotCtx)
		require.Equal(t, cfg.DB.DSN(), dsn)
		require.Equal(t, 10, retries)
		require.Equal(t, time.Second, delay)
		return stubPool, nil
	}

	err := registerDb(c, stubConnect)
	require.NoError(t, err)

	err = c.Invoke(func(pool *pgxpool.Pool) {
		require.Equal(t, stubPool, pool)
	})
	require.NoError(t, err)
}

func TestRegisterDb_ConnectError(t *testing.T) {
	t.Parallel()

	c := dig.New()

	require.NoError(t, c.Provide(func() context.Context { return context.Background() }))
	require.NoError(t, c.Provide(func() *config.Config { return testConfig() }))

	err := registerDb(c, func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error) {
		return nil, fmt.Errorf("db failed")
	})
	require.NoError(t, err)

	err = c.Invoke(func(pool *pgxpool.Pool) {
		_ = pool
	})
	require.Error(t, err)
}

func TestRegisterWorker_ConsumerNilWithoutBrokers(t *testing.T) {
	t.Parallel()

	c := dig.New()

	cfg := testConfig()
	cfg.Kafka.Brokers = nil

	require.NoError(t, c.Provide(func() context.Context { return context.Background() }))
	require.NoError(t, c.Provide(func() logx.Logger { return logx.Nop() }))
	require.NoError(t, c.Provide(func() *config.Config { return cfg }))
	require.NoError(t, c.Provide(func() *pgxpool.Pool { return &pgxpool.Pool{} }))

	require.NoError(t, registerWorker(c))

	err := c.Invoke(func(consumer *kafka.Consumer) {
		require.Nil(t, consumer)
	})
	require.NoError(t, err)
}
