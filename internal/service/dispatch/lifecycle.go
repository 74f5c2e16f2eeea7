package dispatch

import (
	"context"
	"errors"
	"strings"

	"cargo-dispatch-service/internal/apperr"
	"cargo-dispatch-service/internal/domain"
	"cargo-dispatch-service/internal/logx"
	"cargo-dispatch-service/internal/notify"
)

// Accept claims the delivery for the driver. The claim is a single
// conditional write: at most one of any number of concurrent calls wins,
// the rest get ErrAlreadyAssigned. The winner's driver record flips to
// on_delivery.
func (s *Service) Accept(ctx context.Context, deliveryID, driverID string) (*domain.Delivery, error) {
	if strings.TrimSpace(deliveryID) == "" || strings.TrimSpace(driverID) == "" {
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
	if driver.Status != domain.DriverAvailable {
		return nil, apperr.ErrConflict
	}

	if err := s.deliveries.TryAssign(ctx, deliveryID, driverID); err != nil {
		if errors.Is(err, apperr.ErrAlreadyAssigned) && s.conflicts != nil {
			s.conflicts.Inc()
		}
		return nil, err
	}

	if _, err := s.drivers.UpdateStatus(ctx, driverID, domain.DriverOnDelivery); err != nil {
		s.logger.Warn("driver status update after claim failed",
			logx.String("driver_id", driverID),
			logx.Any("err", err),
		)
	}

	d, err := s.deliveries.Get(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}

	s.logger.Info("delivery assigned",
		logx.String("event", "delivery_assigned"),
		logx.String("delivery_id", deliveryID),
		logx.String("driver_id", driverID),
	)
	s.notifyParties(d, notify.EventDeliveryAssigned)
	return d, nil
}

// VerifyPickup checks the one-time pickup secret and, on a match, moves the
// delivery from driver_assigned to picked_up recording the actual pickup
// time. A wrong code leaves the record untouched and may be retried.
func (s *Service) VerifyPickup(ctx context.Context, deliveryID, driverID, code string) (*domain.Delivery, error) {
	if strings.TrimSpace(deliveryID) == "" || strings.TrimSpace(driverID) == "" || code == "" {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.deliveries.Get(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}
	if !d.Assigned() || *d.DriverID != driverID {
		return nil, apperr.ErrUnauthorized
	}

	secret, err := s.deliveries.GetOTP(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if code != secret {
		return nil, apperr.ErrOtpMismatch
	}

	now := s.now()
	ok, err := s.deliveries.UpdateStatus(ctx, deliveryID, domain.StatusDriverAssigned, domain.StatusPickedUp, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrInvalidTransition
	}

	d.Status = domain.StatusPickedUp
	d.ActualPickupTime = &now
	d.UpdatedAt = now

	s.logger.Info("pickup verified",
		logx.String("event", "pickup_verified"),
		logx.String("delivery_id", deliveryID),
		logx.String("driver_id", driverID),
	)
	s.notifyParties(d, notify.EventPickupVerified)
	return d, nil
}

// Advance moves an assigned delivery forward along the lifecycle. Only the
// assigned driver may advance, and only to the in-route statuses: pickup
// goes through VerifyPickup, cancellation through Cancel. Delivering
// releases the driver back to available.
func (s *Service) Advance(ctx context.Context, deliveryID, driverID string, next domain.DeliveryStatus) (*domain.Delivery, error) {
	if strings.TrimSpace(deliveryID) == "" || strings.TrimSpace(driverID) == "" {
		return nil, apperr.ErrInvalid
	}
	if next != domain.StatusInTransit && next != domain.StatusDelivered {
		return nil, apperr.ErrInvalidTransition
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.deliveries.Get(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}
	if !d.Assigned() || *d.DriverID != driverID {
		return nil, apperr.ErrUnauthorized
	}
	if !domain.CanTransition(d.Status, next) {
		return nil, apperr.ErrInvalidTransition
	}

	now := s.now()
	ok, err := s.deliveries.UpdateStatus(ctx, deliveryID, d.Status, next, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race against a concurrent transition, usually a
		// cancellation. The conditional write preserved the stored state.
		return nil, apperr.ErrInvalidTransition
	}

	d.Status = next
	d.UpdatedAt = now
	if next == domain.StatusDelivered {
		d.ActualDeliveryTime = &now
		if _, err := s.drivers.UpdateStatus(ctx, driverID, domain.DriverAvailable); err != nil {
			s.logger.Warn("driver release after delivery failed",
				logx.String("driver_id", driverID),
				logx.Any("err", err),
			)
		}
	}

	s.logger.Info("delivery status advanced",
		logx.String("event", "status_changed"),
		logx.String("delivery_id", deliveryID),
		logx.String("status", string(next)),
	)
	s.notifyParties(d, notify.EventStatusChanged)
	return d, nil
}

// Cancel terminates the delivery from any non-terminal state. Only the
// requester may cancel. An assigned driver is released back to available.
func (s *Service) Cancel(ctx context.Context, deliveryID, requesterID string) (*domain.Delivery, error) {
	if strings.TrimSpace(deliveryID) == "" || strings.TrimSpace(requesterID) == "" {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.deliveries.Get(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}
	if d.RequesterID != requesterID {
		return nil, apperr.ErrUnauthorized
	}
	if d.Status.Terminal() {
		return nil, apperr.ErrInvalidTransition
	}

	now := s.now()
	ok, err := s.deliveries.UpdateStatus(ctx, deliveryID, d.Status, domain.StatusCancelled, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrInvalidTransition
	}

	d.Status = domain.StatusCancelled
	d.UpdatedAt = now
	if d.Assigned() {
		if _, err := s.drivers.UpdateStatus(ctx, *d.DriverID, domain.DriverAvailable); err != nil {
			s.logger.Warn("driver release after cancellation failed",
				logx.String("driver_id", *d.DriverID),
				logx.Any("err", err),
			)
		}
	}

	s.logger.Info("delivery cancelled",
		logx.String("event", "delivery_cancelled"),
		logx.String("delivery_id", deliveryID),
	)
	s.notifyParties(d, notify.EventDeliveryCancelled)
	return d, nil
}
