package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewRouteRetriesTotal returns a Prometheus counter for the number of retry attempts against the routing provider
func NewRouteRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "route_retries_total",
		Help: "Total number of retry attempts against the routing provider",
	})
}

// NewAssignmentConflictsTotal returns a Prometheus counter for the number of lost delivery claim races
func NewAssignmentConflictsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assignment_conflicts_total",
		Help: "Total number of delivery claims rejected because another driver won the race",
	})
}

// NewDeliveriesCreatedTotal returns a Prometheus counter for the number of created deliveries
func NewDeliveriesCreatedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deliveries_created_total",
		Help: "Total number of created deliveries",
	})
}
