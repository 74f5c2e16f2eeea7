package domain

import "time"

type (
	// DeliveryStatus represents the lifecycle status of a delivery.
	DeliveryStatus string
	// CargoClass represents the category of transported cargo.
	CargoClass string
	// PaymentMethod represents how a delivery is paid for.
	PaymentMethod string
	// PaymentStatus represents the settlement state of a payment.
	PaymentStatus string
)

// List of possible cargo classes
const (
	CargoBoxes       CargoClass = "boxes"
	CargoFurniture   CargoClass = "furniture"
	CargoElectronics CargoClass = "electronics"
	CargoDocuments   CargoClass = "documents"
	CargoOther       CargoClass = "other"
)

// List of possible payment methods
const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
	PaymentWallet PaymentMethod = "wallet"
)

// List of possible payment statuses
const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentRefunded  PaymentStatus = "refunded"
)

var allowedCargoClasses = [...]CargoClass{
	CargoBoxes, CargoFurniture, CargoElectronics, CargoDocuments, CargoOther,
}

var allowedPaymentMethods = [...]PaymentMethod{
	PaymentCash, PaymentOnline, PaymentWallet,
}

// Valid checks if the CargoClass is valid
func (c CargoClass) Valid() bool {
	for _, v := range allowedCargoClasses {
		if c == v {
			return true
		}
	}
	return false
}

// Valid checks if the PaymentMethod is valid
func (m PaymentMethod) Valid() bool {
	for _, v := range allowedPaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

// Location is an address with resolved coordinates.
type Location struct {
	Address     string
	Coordinates Coordinate
}

// Cargo describes the load of a delivery. Dimensions are in centimeters,
// weight in kilograms.
type Cargo struct {
	WeightKg float64
	LengthCm float64
	WidthCm  float64
	HeightCm float64
	Class    CargoClass
	Photos   []string
}

// VolumeM3 returns the cargo volume in cubic meters.
func (c Cargo) VolumeM3() float64 {
	return c.LengthCm * c.WidthCm * c.HeightCm / 1_000_000
}

// Payment carries the commercial settlement state of a delivery.
type Payment struct {
	Method        PaymentMethod
	Status        PaymentStatus
	TransactionID string
}

// Delivery - the central entity: one cargo-transport request from pickup to
// dropoff with its full lifecycle record. Fare, distance and duration are
// computed once at creation and never recalculated.
type Delivery struct {
	ID          string
	RequesterID string
	DriverID    *string

	Pickup  Location
	Dropoff Location
	Cargo   Cargo

	VehicleClass VehicleClass
	Fare         int64
	Payment      Payment

	DistanceMeters  float64
	DurationSeconds float64

	// OTP is the one-time pickup secret. Excluded from default store
	// projections; populated only through the dedicated access path.
	OTP string

	Status DeliveryStatus

	ScheduledPickup    *time.Time
	ScheduledDelivery  *time.Time
	ActualPickupTime   *time.Time
	ActualDeliveryTime *time.Time

	SpecialInstructions string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Assigned reports whether a driver is bound to the delivery.
func (d *Delivery) Assigned() bool { return d.DriverID != nil && *d.DriverID != "" }

// IsParty reports whether the given actor is the requester or the assigned driver.
func (d *Delivery) IsParty(actorID string) bool {
	if actorID == "" {
		return false
	}
	if d.RequesterID == actorID {
		return true
	}
	return d.DriverID != nil && *d.DriverID == actorID
}
