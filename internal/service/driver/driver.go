package driver

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"cargo-dispatch-service/internal/apperr"
	"cargo-dispatch-service/internal/domain"
)

// Service coordinates driver business logic and orchestrates repository calls.
type Service struct {
	repo             driverRepository
	operationTimeout time.Duration
	newID            func() string
}

// NewService creates and configures a driver Service.
func NewService(r driverRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout, newID: uuid.NewString}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// validateRegister validates a driver for registration.
func validateRegister(d *domain.Driver) error {
	if d == nil {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(d.Name) == "" {
		return apperr.ErrInvalid
	}
	if !domain.ValidatePhone(d.Phone) {
		return apperr.ErrInvalid
	}
	if !d.Vehicle.Class.Valid() {
		return apperr.ErrUnknownVehicleClass
	}
	if d.Vehicle.MaxWeightKg <= 0 || d.Vehicle.MaxVolumeM3 < 0 {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(d.Vehicle.Registration) == "" {
		return apperr.ErrInvalid
	}
	if d.Status == "" {
		d.Status = domain.DriverOffline
	}
	if !d.Status.Valid() {
		return apperr.ErrInvalid
	}
	if d.Location != nil && !d.Location.Valid() {
		return apperr.ErrInvalid
	}
	return nil
}

func validateUpdate(u *domain.PartialDriverUpdate) error {
	if strings.TrimSpace(u.ID) == "" {
		return apperr.ErrInvalid
	}
	if u.Name == nil && u.Phone == nil && u.Status == nil {
		return apperr.ErrInvalid
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return apperr.ErrInvalid
	}
	if u.Phone != nil && !domain.ValidatePhone(*u.Phone) {
		return apperr.ErrInvalid
	}
	if u.Status != nil && !u.Status.Valid() {
		return apperr.ErrInvalid
	}
	return nil
}

// Register persists a new driver and returns its generated ID.
func (s *Service) Register(ctx context.Context, d *domain.Driver) (string, error) {
	if err := validateRegister(d); err != nil {
		return "", err
	}
	if d.ID == "" {
		d.ID = s.newID()
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.repo.Create(ctx, d); err != nil {
		return "", err
	}
	return d.ID, nil
}

// Get retrieves a driver by its ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Driver, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}
	return d, nil
}

// UpdateLocation records the driver's last reported position.
func (s *Service) UpdateLocation(ctx context.Context, id string, c domain.Coordinate) error {
	if strings.TrimSpace(id) == "" || !c.Valid() {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdateLocation(ctx, id, c)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	return nil
}

// UpdateStatus changes the driver's availability.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error {
	if strings.TrimSpace(id) == "" || !status.Valid() {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	return nil
}

// UpdatePartial applies a partial update to a driver. It returns true if a row was updated.
func (s *Service) UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error) {
	if err := validateUpdate(&u); err != nil {
		return false, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdatePartial(ctx, u)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, apperr.ErrNotFound
	}
	return true, nil
}

// FindNearbyAvailable returns available drivers near a point, nearest first.
func (s *Service) FindNearbyAvailable(ctx context.Context, origin domain.Coordinate, radiusKm float64, class *domain.VehicleClass) ([]domain.Driver, error) {
	if !origin.Valid() {
		return nil, apperr.ErrInvalid
	}
	if class != nil && !class.Valid() {
		return nil, apperr.ErrUnknownVehicleClass
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.FindNearbyAvailable(ctx, origin, radiusKm, class)
}
