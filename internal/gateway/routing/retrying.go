package routing

import (
	"context"
	"errors"
	"time"

	"cargo-dispatch-service/internal/apperr"
	"cargo-dispatch-service/internal/domain"
	"cargo-dispatch-service/internal/logx"
)

type routeProvider interface {
	DistanceDuration(ctx context.Context, origin, destination domain.Coordinate) (RouteResult, error)
}

type counter interface {
	Inc()
}

// RetryConfig describes the retry behavior of RetryingRouteProvider.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingRouteProvider retries transient route provider failures with
// exponential backoff. RouteNotFound is final and never retried.
type RetryingRouteProvider struct {
	next    routeProvider
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingRouteProvider checks that next is not nil and returns a RetryingRouteProvider.
func NewRetryingRouteProvider(next routeProvider, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingRouteProvider {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &RetryingRouteProvider{next: next, logger: logger, retries: retries, cfg: cfg}
}

// DistanceDuration delegates to the wrapped provider, retrying on dependency errors.
func (g *RetryingRouteProvider) DistanceDuration(ctx context.Context, origin, destination domain.Coordinate) (RouteResult, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		res, err := g.next.DistanceDuration(ctx, origin, destination)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("route provider retry",
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return RouteResult{}, lastErr
}

func isRetryable(err error) bool {
	return errors.Is(err, apperr.ErrDependency)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
