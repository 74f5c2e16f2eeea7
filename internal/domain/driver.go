package domain

import "regexp"

// rePhone is a regex to validate phone numbers
var rePhone = regexp.MustCompile(`^\+?[0-9]{10,13}$`)

// ValidatePhone validates the phone number format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}

// DriverStatus represents the availability of a driver.
type DriverStatus string

// List of possible driver statuses
const (
	DriverAvailable  DriverStatus = "available"
	DriverOnDelivery DriverStatus = "on_delivery"
	DriverOffline    DriverStatus = "offline"
)

var allowedDriverStatuses = [...]DriverStatus{
	DriverAvailable, DriverOnDelivery, DriverOffline,
}

// Valid checks if the DriverStatus is valid
func (s DriverStatus) Valid() bool {
	for _, v := range allowedDriverStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Vehicle describes a driver's vehicle and its capacity.
type Vehicle struct {
	Class        VehicleClass
	MaxWeightKg  float64
	MaxVolumeM3  float64
	Registration string
	Model        string
}

// Driver represents a vehicle-owning courier. Location is updated by the
// driver out-of-band and may be absent until the first report.
type Driver struct {
	ID       string
	Name     string
	Phone    string
	Status   DriverStatus
	Vehicle  Vehicle
	Location *Coordinate

	// DistanceKm is populated by proximity queries only.
	DistanceKm float64
}

// PartialDriverUpdate carries optional fields to update a driver.
// A nil field means “do not change” that attribute.
type PartialDriverUpdate struct {
	ID     string
	Name   *string
	Phone  *string
	Status *DriverStatus
}
