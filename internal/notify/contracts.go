package notify

import "context"

// Delivery lifecycle events pushed to requesters and drivers.
const (
	EventDeliveryCreated   = "delivery_created"
	EventDeliveryAssigned  = "delivery_assigned"
	EventPickupVerified    = "pickup_verified"
	EventStatusChanged     = "status_changed"
	EventDeliveryCancelled = "delivery_cancelled"
)

// Notifier pushes an event to a single recipient. Implementations must not
// fail the calling operation: delivery of notifications is best effort.
type Notifier interface {
	Notify(ctx context.Context, recipientID, event string, payload any) error
}

// Multi fans a notification out to every backend. Errors are collected but
// the remaining backends still receive the event.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, recipientID, event string, payload any) error {
	var firstErr error
	for _, n := range m {
		if err := n.Notify(ctx, recipientID, event, payload); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
