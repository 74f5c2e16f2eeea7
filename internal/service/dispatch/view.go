package dispatch

import (
	"context"
	"strings"

	"cargo-dispatch-service/internal/apperr"
	"cargo-dispatch-service/internal/domain"
)

// View is a delivery as seen by one viewer. The OTP is populated only for
// parties to the delivery, and the assigned driver's vehicle registration
// is visible only to the driver themselves.
type View struct {
	Delivery domain.Delivery
	Driver   *domain.Driver
}

// Get fetches a delivery for a viewer. Non-parties are rejected rather
// than served a redacted copy.
func (s *Service) Get(ctx context.Context, deliveryID, viewerID string) (View, error) {
	if strings.TrimSpace(deliveryID) == "" || strings.TrimSpace(viewerID) == "" {
		return View{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.deliveries.Get(ctx, deliveryID)
	if err != nil {
		return View{}, err
	}
	if d == nil {
		return View{}, apperr.ErrNotFound
	}
	if !d.IsParty(viewerID) {
		return View{}, apperr.ErrUnauthorized
	}

	secret, err := s.deliveries.GetOTP(ctx, deliveryID)
	if err != nil {
		return View{}, err
	}
	d.OTP = secret

	v := View{Delivery: *d}
	if d.Assigned() {
		driver, err := s.drivers.Get(ctx, *d.DriverID)
		if err != nil {
			return View{}, err
		}
		if driver != nil {
			if viewerID != *d.DriverID {
				driver.Vehicle.Registration = ""
			}
			v.Driver = driver
		}
	}
	return v, nil
}

// ListForRequester returns the requester's deliveries, newest first.
func (s *Service) ListForRequester(ctx context.Context, requesterID string, limit int) ([]domain.Delivery, error) {
	if strings.TrimSpace(requesterID) == "" {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.deliveries.ListByRequester(ctx, requesterID, limit)
}

// ListNearby returns claimable deliveries whose pickup point lies within
// the radius of the driver's last reported location, filtered to the
// driver's vehicle class. A driver without a reported location cannot
// search.
func (s *Service) ListNearby(ctx context.Context, driverID string, radiusKm float64) ([]domain.Delivery, error) {
	if strings.TrimSpace(driverID) == "" {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	driver, err := s.drivers.Get(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, apperr.ErrNotFound
	}
	if driver.Location == nil {
		return nil, apperr.ErrInvalid
	}
	if radiusKm <= 0 {
		radiusKm = s.broadcastRadiusKm
	}
	class := driver.Vehicle.Class
	return s.deliveries.ListNearbyPickups(ctx, *driver.Location, radiusKm, &class)
}

// ListAssigned returns the driver's active and past assignments.
func (s *Service) ListAssigned(ctx context.Context, driverID string) ([]domain.Delivery, error) {
	if strings.TrimSpace(driverID) == "" {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.deliveries.ListAssigned(ctx, driverID)
}
