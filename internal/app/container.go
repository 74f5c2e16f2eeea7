package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"cargo-dispatch-service/internal/config"
	"cargo-dispatch-service/internal/gateway/routing"
	"cargo-dispatch-service/internal/http/handlers"
	"cargo-dispatch-service/internal/http/middleware"
	"cargo-dispatch-service/internal/http/middleware/ratelimit"
	"cargo-dispatch-service/internal/http/router"
	"cargo-dispatch-service/internal/logx"
	"cargo-dispatch-service/internal/metrics"
	"cargo-dispatch-service/internal/notify"
	"cargo-dispatch-service/internal/repository"
	"cargo-dispatch-service/internal/service/dispatch"
	"cargo-dispatch-service/internal/service/driver"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerGateways(container); err != nil {
		return nil, fmt.Errorf("gateways: %w", err)
	}
	if err := registerNotify(container); err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

// registerCounter swaps an already registered collector back in so a
// container can be rebuilt inside one process.
func registerCounter(c prometheus.Counter) prometheus.Counter {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
	}
	return c
}

func registerMetrics(container *dig.Container) error {
	provide := func(name string, ctor func() prometheus.Counter) error {
		return container.Provide(
			func() prometheus.Counter { return registerCounter(ctor()) },
			dig.Name(name),
		)
	}
	if err := provide("rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal); err != nil {
		return err
	}
	if err := provide("route_retries_total", metrics.NewRouteRetriesTotal); err != nil {
		return err
	}
	if err := provide("assignment_conflicts_total", metrics.NewAssignmentConflictsTotal); err != nil {
		return err
	}
	return provide("deliveries_created_total", metrics.NewDeliveriesCreatedTotal)
}

type routeProviderIn struct {
	dig.In
	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"route_retries_total"`
}

func newRouteProvider(in routeProviderIn) *routing.RetryingRouteProvider {
	osrm := routing.NewOSRMClient(in.Cfg.Routing.OSRMBaseURL, in.Cfg.Routing.Timeout)
	return routing.NewRetryingRouteProvider(osrm, in.Logger, in.Retries, routing.RetryConfig{
		MaxAttempts: in.Cfg.Routing.MaxAttempts,
		BaseDelay:   in.Cfg.Routing.BaseDelay,
		MaxDelay:    in.Cfg.Routing.MaxDelay,
	})
}

func registerGateways(container *dig.Container) error {
	return provideAll(container,
		newRouteProvider,
		func(cfg *config.Config) *routing.NominatimClient {
			return routing.NewNominatimClient(cfg.Routing.NominatimBaseURL, cfg.Routing.Timeout)
		},
	)
}

func registerNotify(container *dig.Container) error {
	return provideAll(container,
		notify.NewHub,
		func(cfg *config.Config, logger logx.Logger) (*notify.AMQPPublisher, error) {
			if cfg.AMQP.URL == "" {
				return nil, nil
			}
			return notify.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, logger)
		},
		func(hub *notify.Hub, pub *notify.AMQPPublisher) notify.Notifier {
			multi := notify.Multi{hub}
			if pub != nil {
				multi = append(multi, pub)
			}
			return multi
		},
	)
}

type dispatchServiceIn struct {
	dig.In
	Deliveries *repository.DeliveryRepo
	Drivers    *repository.DriverRepo
	Routes     *routing.RetryingRouteProvider
	Geocoder   *routing.NominatimClient
	Notifier   notify.Notifier
	Cfg        *config.Config
	Logger     logx.Logger
	Created    prometheus.Counter `name:"deliveries_created_total"`
	Conflicts  prometheus.Counter `name:"assignment_conflicts_total"`
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewDeliveryRepo,
		repository.NewDriverRepo,
		func(in dispatchServiceIn) *dispatch.Service {
			return dispatch.NewService(
				in.Deliveries,
				in.Drivers,
				in.Routes,
				in.Geocoder,
				in.Notifier,
				in.Created,
				in.Conflicts,
				in.Cfg.Dispatch.BroadcastRadiusKm,
				in.Cfg.Dispatch.OperationTimeout,
				in.Logger,
			)
		},
		func(repo *repository.DriverRepo, cfg *config.Config) *driver.Service {
			return driver.NewService(repo, cfg.Dispatch.OperationTimeout)
		},
	)
}

type routerIn struct {
	dig.In
	Base      *handlers.Handlers
	Dispatch  *handlers.DispatchHandler
	Driver    *handlers.DriverHandler
	Hub       *notify.Hub
	Logger    logx.Logger
	RateLimit *ratelimit.Middleware
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	routerProvider := func(in routerIn) http.Handler {
		return router.New(router.Deps{
			Base:     in.Base,
			Dispatch: in.Dispatch,
			Driver:   in.Driver,
			Events:   in.Hub,
			Middleware: []func(http.Handler) http.Handler{
				middleware.Observability(in.Logger),
				in.RateLimit.Handler(),
			},
		})
	}
	return provideAll(container,
		handlers.New,
		handlers.NewDispatchUsecase,
		handlers.NewDispatchHandler,
		handlers.NewDriverUsecase,
		handlers.NewDriverHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		routerProvider,
		serverProvider,
	)
}
