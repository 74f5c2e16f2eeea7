package dispatch

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"cargo-dispatch-service/internal/apperr"
	"cargo-dispatch-service/internal/domain"
	"cargo-dispatch-service/internal/logx"
	"cargo-dispatch-service/internal/notify"
	"cargo-dispatch-service/internal/otp"
	"cargo-dispatch-service/internal/pricing"
)

const notifyTimeout = 5 * time.Second

// Service is the dispatch engine: it prices and creates deliveries, resolves
// driver claims into exclusive assignments, drives the lifecycle state
// machine and gates pickup behind the OTP.
type Service struct {
	deliveries deliveryRepository
	drivers    driverRepository
	routes     routeProvider
	geocoder   geocoder
	notifier   notifier

	created   counter
	conflicts counter

	broadcastRadiusKm float64
	operationTimeout  time.Duration
	logger            logx.Logger
	now               func() time.Time
	newID             func() string
}

// NewService creates and configures the dispatch engine.
func NewService(
	deliveries deliveryRepository,
	drivers driverRepository,
	routes routeProvider,
	geocoder geocoder,
	notifier notifier,
	created, conflicts counter,
	broadcastRadiusKm float64,
	timeout time.Duration,
	logger logx.Logger,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if broadcastRadiusKm <= 0 {
		broadcastRadiusKm = 5
	}
	return &Service{
		deliveries:        deliveries,
		drivers:           drivers,
		routes:            routes,
		geocoder:          geocoder,
		notifier:          notifier,
		created:           created,
		conflicts:         conflicts,
		broadcastRadiusKm: broadcastRadiusKm,
		operationTimeout:  timeout,
		logger:            logger,
		now:               func() time.Time { return time.Now().UTC() },
		newID:             uuid.NewString,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// LocationInput is a pickup or dropoff point as submitted by the requester.
// Missing coordinates are resolved through the geocoder.
type LocationInput struct {
	Address     string
	Coordinates *domain.Coordinate
}

// CreateInput carries a new delivery request.
type CreateInput struct {
	RequesterID         string
	Pickup              LocationInput
	Dropoff             LocationInput
	Cargo               domain.Cargo
	VehicleClass        domain.VehicleClass
	PaymentMethod       domain.PaymentMethod
	ScheduledPickup     *time.Time
	ScheduledDelivery   *time.Time
	SpecialInstructions string
}

// Estimate is a fare quote without persistence.
type Estimate struct {
	Fare            int64
	DistanceMeters  float64
	DurationSeconds float64
}

func validateCreate(in *CreateInput) error {
	if strings.TrimSpace(in.RequesterID) == "" {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(in.Pickup.Address) == "" || strings.TrimSpace(in.Dropoff.Address) == "" {
		return apperr.ErrInvalid
	}
	if in.Pickup.Coordinates != nil && !in.Pickup.Coordinates.Valid() {
		return apperr.ErrInvalid
	}
	if in.Dropoff.Coordinates != nil && !in.Dropoff.Coordinates.Valid() {
		return apperr.ErrInvalid
	}
	if in.Cargo.WeightKg <= 0 {
		return apperr.ErrInvalid
	}
	if in.Cargo.LengthCm < 0 || in.Cargo.WidthCm < 0 || in.Cargo.HeightCm < 0 {
		return apperr.ErrInvalid
	}
	if in.Cargo.Class == "" {
		in.Cargo.Class = domain.CargoOther
	}
	if !in.Cargo.Class.Valid() {
		return apperr.ErrInvalid
	}
	if !in.VehicleClass.Valid() {
		return apperr.ErrUnknownVehicleClass
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = domain.PaymentCash
	}
	if !in.PaymentMethod.Valid() {
		return apperr.ErrInvalid
	}
	return nil
}

func (s *Service) resolveLocation(ctx context.Context, in LocationInput) (domain.Location, error) {
	if in.Coordinates != nil {
		return domain.Location{Address: in.Address, Coordinates: *in.Coordinates}, nil
	}
	c, err := s.geocoder.Coordinates(ctx, in.Address)
	if err != nil {
		return domain.Location{}, err
	}
	return domain.Location{Address: in.Address, Coordinates: c}, nil
}

// Create validates and prices the request, generates the pickup secret and
// persists the delivery. Route and fare failures abort creation entirely:
// no record is written with a zero fare. Nearby available drivers are
// notified best-effort after the write.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Delivery, error) {
	if err := validateCreate(&in); err != nil {
		return nil, err
	}
	max, err := pricing.MaxWeightKg(in.VehicleClass)
	if err != nil {
		return nil, err
	}
	if in.Cargo.WeightKg > max {
		return nil, apperr.ErrCapacityExceeded
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	pickup, err := s.resolveLocation(ctx, in.Pickup)
	if err != nil {
		return nil, err
	}
	dropoff, err := s.resolveLocation(ctx, in.Dropoff)
	if err != nil {
		return nil, err
	}

	route, err := s.routes.DistanceDuration(ctx, pickup.Coordinates, dropoff.Coordinates)
	if err != nil {
		return nil, err
	}
	fare, err := pricing.Quote(in.VehicleClass, route.DistanceMeters, in.Cargo.WeightKg, in.Cargo.VolumeM3())
	if err != nil {
		return nil, err
	}
	secret, err := otp.Generate()
	if err != nil {
		return nil, err
	}

	status := domain.StatusPending
	if in.PaymentMethod == domain.PaymentOnline {
		status = domain.StatusScheduled
	}

	now := s.now()
	d := &domain.Delivery{
		ID:          s.newID(),
		RequesterID: in.RequesterID,
		Pickup:      pickup,
		Dropoff:     dropoff,
		Cargo:       in.Cargo,

		VehicleClass: in.VehicleClass,
		Fare:         fare,
		Payment: domain.Payment{
			Method: in.PaymentMethod,
			Status: domain.PaymentPending,
		},

		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,

		OTP:    secret,
		Status: status,

		ScheduledPickup:     in.ScheduledPickup,
		ScheduledDelivery:   in.ScheduledDelivery,
		SpecialInstructions: strings.TrimSpace(in.SpecialInstructions),

		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.deliveries.Create(ctx, d); err != nil {
		return nil, err
	}
	if s.created != nil {
		s.created.Inc()
	}
	s.logger.Info("delivery created",
		logx.String("event", "delivery_created"),
		logx.String("delivery_id", d.ID),
		logx.String("vehicle_class", string(d.VehicleClass)),
		logx.Int64("fare", d.Fare),
	)

	s.broadcastToNearbyDrivers(d)
	return d, nil
}

// EstimateFare resolves the route and prices it without creating a record.
func (s *Service) EstimateFare(ctx context.Context, pickup, dropoff LocationInput, class domain.VehicleClass, cargo domain.Cargo) (Estimate, error) {
	if !class.Valid() {
		return Estimate{}, apperr.ErrUnknownVehicleClass
	}
	if cargo.WeightKg <= 0 {
		return Estimate{}, apperr.ErrInvalid
	}
	if cargo.LengthCm < 0 || cargo.WidthCm < 0 || cargo.HeightCm < 0 {
		return Estimate{}, apperr.ErrInvalid
	}
	max, err := pricing.MaxWeightKg(class)
	if err != nil {
		return Estimate{}, err
	}
	if cargo.WeightKg > max {
		return Estimate{}, apperr.ErrCapacityExceeded
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	from, err := s.resolveLocation(ctx, pickup)
	if err != nil {
		return Estimate{}, err
	}
	to, err := s.resolveLocation(ctx, dropoff)
	if err != nil {
		return Estimate{}, err
	}
	route, err := s.routes.DistanceDuration(ctx, from.Coordinates, to.Coordinates)
	if err != nil {
		return Estimate{}, err
	}
	fare, err := pricing.Quote(class, route.DistanceMeters, cargo.WeightKg, cargo.VolumeM3())
	if err != nil {
		return Estimate{}, err
	}
	return Estimate{
		Fare:            fare,
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
	}, nil
}

// broadcastToNearbyDrivers pushes the new request to available drivers near
// the pickup point. Runs detached from the request: notification transport
// must never block or fail delivery creation.
func (s *Service) broadcastToNearbyDrivers(d *domain.Delivery) {
	class := d.VehicleClass
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		drivers, err := s.drivers.FindNearbyAvailable(ctx, d.Pickup.Coordinates, s.broadcastRadiusKm, &class)
		if err != nil {
			s.logger.Warn("nearby driver lookup failed",
				logx.String("delivery_id", d.ID),
				logx.Any("err", err),
			)
			return
		}
		payload := redact(*d)
		for i := range drivers {
			if err := s.notifier.Notify(ctx, drivers[i].ID, notify.EventDeliveryCreated, payload); err != nil {
				s.logger.Warn("driver notification failed",
					logx.String("driver_id", drivers[i].ID),
					logx.Any("err", err),
				)
			}
		}
	}()
}

// notifyParties pushes a lifecycle event to the requester and, when bound,
// the assigned driver. Detached and best effort.
func (s *Service) notifyParties(d *domain.Delivery, event string) {
	snapshot := redact(*d)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.Notify(ctx, d.RequesterID, event, snapshot); err != nil {
			s.logger.Warn("requester notification failed",
				logx.String("delivery_id", d.ID),
				logx.Any("err", err),
			)
		}
		if d.Assigned() {
			if err := s.notifier.Notify(ctx, *d.DriverID, event, snapshot); err != nil {
				s.logger.Warn("driver notification failed",
					logx.String("delivery_id", d.ID),
					logx.Any("err", err),
				)
			}
		}
	}()
}

// redact strips the pickup secret from a notification snapshot. Parties
// fetch the OTP through Get, never through the push channel.
func redact(d domain.Delivery) domain.Delivery {
	d.OTP = ""
	return d
}
