package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a business-state conflict (HTTP 409). Not retryable as-is.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized indicates the actor is not a party to the resource.
var ErrUnauthorized = errors.New("unauthorized")

// ErrDependency indicates that an external collaborator failed.
// Retryable by the caller.
var ErrDependency = errors.New("dependency unavailable")

// Specific error kinds. Each unwraps to one of the sentinels above, so
// handlers can match the broad class with errors.Is while services and tests
// can still distinguish the exact cause.
var (
	// ErrAlreadyAssigned is what losing contenders of a claim race receive.
	ErrAlreadyAssigned = kind("delivery already assigned", ErrConflict)

	// ErrInvalidTransition marks a status change the lifecycle table forbids.
	ErrInvalidTransition = kind("invalid status transition", ErrConflict)

	// ErrOtpMismatch marks a pickup code that does not match the stored secret.
	ErrOtpMismatch = kind("otp mismatch", ErrConflict)

	// ErrUnknownVehicleClass marks a vehicle class outside the rate table.
	ErrUnknownVehicleClass = kind("unknown vehicle class", ErrInvalid)

	// ErrCapacityExceeded marks cargo weight above the class limit.
	ErrCapacityExceeded = kind("cargo exceeds vehicle capacity", ErrInvalid)

	// ErrRouteNotFound means no path exists between the requested points.
	// The caller must change the input, so it classifies as validation,
	// not as a provider outage.
	ErrRouteNotFound = kind("route not found", ErrInvalid)

	// ErrAddressNotFound means the geocoder does not know the address.
	ErrAddressNotFound = kind("address not found", ErrInvalid)
)

type kindError struct {
	msg  string
	base error
}

func (e kindError) Error() string { return e.msg }
func (e kindError) Unwrap() error { return e.base }

func kind(msg string, base error) error { return kindError{msg: msg, base: base} }
