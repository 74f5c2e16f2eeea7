//go:generate mockgen -source=contracts.go -destination=dispatch_mocks_test.go -package=dispatch

package dispatch

import (
	"context"
	"time"

	"cargo-dispatch-service/internal/domain"
	"cargo-dispatch-service/internal/gateway/routing"
)

// deliveryRepository defines delivery storage operations required by the
// dispatch engine. TryAssign and UpdateStatus are single-statement
// conditional writes; the engine never composes them from separate reads
// and writes.
type deliveryRepository interface {
	Create(ctx context.Context, d *domain.Delivery) error
	Get(ctx context.Context, id string) (*domain.Delivery, error)
	GetOTP(ctx context.Context, id string) (string, error)
	TryAssign(ctx context.Context, deliveryID, driverID string) error
	UpdateStatus(ctx context.Context, id string, from, to domain.DeliveryStatus, now time.Time) (bool, error)
	ListByRequester(ctx context.Context, requesterID string, limit int) ([]domain.Delivery, error)
	ListAssigned(ctx context.Context, driverID string) ([]domain.Delivery, error)
	ListNearbyPickups(ctx context.Context, origin domain.Coordinate, radiusKm float64, class *domain.VehicleClass) ([]domain.Delivery, error)
}

// driverRepository defines the driver storage operations the engine needs.
type driverRepository interface {
	Get(ctx context.Context, id string) (*domain.Driver, error)
	UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) (bool, error)
	FindNearbyAvailable(ctx context.Context, origin domain.Coordinate, radiusKm float64, class *domain.VehicleClass) ([]domain.Driver, error)
}

// routeProvider resolves pickup-to-dropoff distance and duration.
type routeProvider interface {
	DistanceDuration(ctx context.Context, origin, destination domain.Coordinate) (routing.RouteResult, error)
}

// geocoder resolves a street address into coordinates.
type geocoder interface {
	Coordinates(ctx context.Context, address string) (domain.Coordinate, error)
}

// notifier pushes best-effort events to a party. Failures never fail the
// calling operation.
type notifier interface {
	Notify(ctx context.Context, recipientID, event string, payload any) error
}

type counter interface {
	Inc()
}
