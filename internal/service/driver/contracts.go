//go:generate mockgen -source=contracts.go -destination=driver_mocks_test.go -package=driver

package driver

import (
	"context"

	"cargo-dispatch-service/internal/domain"
)

// driverRepository defines storage operations required by the business layer.
type driverRepository interface {
	Create(ctx context.Context, d *domain.Driver) error
	Get(ctx context.Context, id string) (*domain.Driver, error)
	UpdateLocation(ctx context.Context, id string, c domain.Coordinate) (bool, error)
	UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) (bool, error)
	UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error)
	FindNearbyAvailable(ctx context.Context, origin domain.Coordinate, radiusKm float64, class *domain.VehicleClass) ([]domain.Driver, error)
}
