package handlers

import (
	"context"

	"cargo-dispatch-service/internal/domain"
	"cargo-dispatch-service/internal/service/dispatch"
	"cargo-dispatch-service/internal/service/driver"
)

type dispatchUsecase interface {
	Create(ctx context.Context, in dispatch.CreateInput) (*domain.Delivery, error)
	EstimateFare(ctx context.Context, pickup, dropoff dispatch.LocationInput, class domain.VehicleClass, cargo domain.Cargo) (dispatch.Estimate, error)
	Accept(ctx context.Context, deliveryID, driverID string) (*domain.Delivery, error)
	VerifyPickup(ctx context.Context, deliveryID, driverID, code string) (*domain.Delivery, error)
	Advance(ctx context.Context, deliveryID, driverID string, next domain.DeliveryStatus) (*domain.Delivery, error)
	Cancel(ctx context.Context, deliveryID, requesterID string) (*domain.Delivery, error)
	Get(ctx context.Context, deliveryID, viewerID string) (dispatch.View, error)
	ListForRequester(ctx context.Context, requesterID string, limit int) ([]domain.Delivery, error)
	ListNearby(ctx context.Context, driverID string, radiusKm float64) ([]domain.Delivery, error)
	ListAssigned(ctx context.Context, driverID string) ([]domain.Delivery, error)
}

// NewDispatchUsecase wires a dispatch Service into a dispatchUsecase.
func NewDispatchUsecase(svc *dispatch.Service) dispatchUsecase {
	return svc
}

type driverUsecase interface {
	Register(ctx context.Context, d *domain.Driver) (string, error)
	Get(ctx context.Context, id string) (*domain.Driver, error)
	UpdateLocation(ctx context.Context, id string, c domain.Coordinate) error
	UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error
	UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error)
}

// NewDriverUsecase wires a driver Service into a driverUsecase.
func NewDriverUsecase(svc *driver.Service) driverUsecase {
	return svc
}
