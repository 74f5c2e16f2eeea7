package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"cargo-dispatch-service/internal/config"
	"cargo-dispatch-service/internal/http/pprofserver"
	"cargo-dispatch-service/internal/logx"
	"cargo-dispatch-service/internal/notify"
)

// MustRun starts the HTTP server using the provided DI container
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

func run(container *dig.Container) error {
	return container.Invoke(func(
		server *http.Server,
		ctx context.Context,
		cfg *config.Config,
		pool *pgxpool.Pool,
		publisher *notify.AMQPPublisher,
		logger logx.Logger,
	) error {
		pprofSrv := startPprofServer(cfg, logger)
		startServer(server, logger)
		waitForShutdown(ctx, logger)
		gracefulShutdown(server, logger, 15*time.Second)
		closeResources(pool, server, pprofSrv, publisher, logger)
		return nil
	})
}

func startServer(server *http.Server, logger logx.Logger) {
	go func() {
		logger.Info("dispatch-service listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()
}

func startPprofServer(cfg *config.Config, logger logx.Logger) *http.Server {
	if cfg.PprofPort <= 0 {
		return nil
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.PprofPort),
		Handler:           pprofserver.Handler(pprofserver.Config{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("pprof listening", logx.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("pprof listen error", logx.Any("err", err))
		}
	}()
	return srv
}

func waitForShutdown(ctx context.Context, logger logx.Logger) {
	<-ctx.Done()
	logger.Info("shutting down dispatch-service")
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Any("err", err))
	}
}

func closeResources(
	pool *pgxpool.Pool,
	server *http.Server,
	pprofSrv *http.Server,
	publisher *notify.AMQPPublisher,
	logger logx.Logger,
) {
	if err := server.Close(); err != nil {
		logger.Error("server close error", logx.Any("err", err))
	}
	if pprofSrv != nil {
		if err := pprofSrv.Close(); err != nil {
			logger.Error("pprof server close error", logx.Any("err", err))
		}
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("amqp close error", logx.Any("err", err))
		}
	}
	pool.Close()
}
