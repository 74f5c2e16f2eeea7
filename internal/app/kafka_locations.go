package app

import (
	"context"
	"errors"

	"cargo-dispatch-service/internal/apperr"
	"cargo-dispatch-service/internal/service/driver"
	"cargo-dispatch-service/internal/transport/kafka"
)

// makeLocationHandler applies driver location events to the store. Events
// for unknown drivers or with bad coordinates are permanent failures:
// redelivery cannot fix them.
func makeLocationHandler(svc *driver.Service) kafka.HandleFunc {
	return func(ctx context.Context, event kafka.LocationEvent) error {
		err := svc.UpdateLocation(ctx, event.DriverID, event.Location)
		if err == nil {
			return nil
		}
		if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrInvalid) {
			return kafka.Permanent(err)
		}
		return err
	}
}
