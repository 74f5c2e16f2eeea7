package domain

// List of possible delivery statuses
const (
	StatusPending        DeliveryStatus = "pending"
	StatusScheduled      DeliveryStatus = "scheduled"
	StatusDriverAssigned DeliveryStatus = "driver_assigned"
	StatusPickedUp       DeliveryStatus = "picked_up"
	StatusInTransit      DeliveryStatus = "in_transit"
	StatusDelivered      DeliveryStatus = "delivered"
	StatusCancelled      DeliveryStatus = "cancelled"
)

// transitions is the lifecycle table: current status -> allowed next statuses.
// delivered and cancelled are terminal.
var transitions = map[DeliveryStatus][]DeliveryStatus{
	StatusPending:        {StatusDriverAssigned, StatusCancelled},
	StatusScheduled:      {StatusDriverAssigned, StatusCancelled},
	StatusDriverAssigned: {StatusPickedUp, StatusCancelled},
	StatusPickedUp:       {StatusInTransit, StatusCancelled},
	StatusInTransit:      {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// Valid checks if the DeliveryStatus is valid
func (s DeliveryStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no transition leaves the status.
func (s DeliveryStatus) Terminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransition reports whether the lifecycle table permits from -> to.
func CanTransition(from, to DeliveryStatus) bool {
	for _, v := range transitions[from] {
		if v == to {
			return true
		}
	}
	return false
}

// Claimable reports whether a delivery in this status may still be claimed
// by a driver. This is the status half of the assignment predicate.
func (s DeliveryStatus) Claimable() bool {
	return s == StatusPending || s == StatusScheduled
}
