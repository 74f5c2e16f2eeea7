package handlers

import (
	"encoding/json"
	"time"
)

// locationDTO carries an address plus coordinates in any of the accepted
// wire shapes. Coordinates are optional; a missing value is resolved by the
// geocoder.
type locationDTO struct {
	Address     string          `json:"address"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
}

type cargoDTO struct {
	WeightKg float64  `json:"weight_kg"`
	LengthCm float64  `json:"length_cm"`
	WidthCm  float64  `json:"width_cm"`
	HeightCm float64  `json:"height_cm"`
	Class    string   `json:"class"`
	Photos   []string `json:"photos,omitempty"`
}

type createDeliveryRequest struct {
	Pickup              locationDTO `json:"pickup"`
	Dropoff             locationDTO `json:"dropoff"`
	Cargo               cargoDTO    `json:"cargo"`
	VehicleClass        string      `json:"vehicle_class"`
	PaymentMethod       string      `json:"payment_method"`
	ScheduledPickup     *time.Time  `json:"scheduled_pickup,omitempty"`
	ScheduledDelivery   *time.Time  `json:"scheduled_delivery,omitempty"`
	SpecialInstructions string      `json:"special_instructions,omitempty"`
}

type estimateFareRequest struct {
	Pickup       locationDTO `json:"pickup"`
	Dropoff      locationDTO `json:"dropoff"`
	Cargo        cargoDTO    `json:"cargo"`
	VehicleClass string      `json:"vehicle_class"`
}

type estimateFareResponse struct {
	Fare            int64   `json:"fare"`
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type verifyPickupRequest struct {
	OTP string `json:"otp"`
}

type advanceStatusRequest struct {
	Status string `json:"status"`
}

type coordinateDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type locationResponse struct {
	Address     string        `json:"address"`
	Coordinates coordinateDTO `json:"coordinates"`
}

type paymentDTO struct {
	Method        string `json:"method"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`
}

type vehicleDTO struct {
	Class        string  `json:"class"`
	MaxWeightKg  float64 `json:"max_weight_kg"`
	MaxVolumeM3  float64 `json:"max_volume_m3"`
	Registration string  `json:"registration,omitempty"`
	Model        string  `json:"model,omitempty"`
}

type driverResponse struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Phone      string         `json:"phone"`
	Status     string         `json:"status"`
	Vehicle    vehicleDTO     `json:"vehicle"`
	Location   *coordinateDTO `json:"location,omitempty"`
	DistanceKm float64        `json:"distance_km,omitempty"`
}

type deliveryResponse struct {
	ID          string  `json:"id"`
	RequesterID string  `json:"requester_id"`
	DriverID    *string `json:"driver_id,omitempty"`

	Pickup  locationResponse `json:"pickup"`
	Dropoff locationResponse `json:"dropoff"`
	Cargo   cargoDTO         `json:"cargo"`

	VehicleClass string     `json:"vehicle_class"`
	Fare         int64      `json:"fare"`
	Payment      paymentDTO `json:"payment"`

	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`

	OTP string `json:"otp,omitempty"`

	Status string `json:"status"`

	ScheduledPickup    *time.Time `json:"scheduled_pickup,omitempty"`
	ScheduledDelivery  *time.Time `json:"scheduled_delivery,omitempty"`
	ActualPickupTime   *time.Time `json:"actual_pickup_time,omitempty"`
	ActualDeliveryTime *time.Time `json:"actual_delivery_time,omitempty"`

	SpecialInstructions string `json:"special_instructions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Driver *driverResponse `json:"driver,omitempty"`
}

type registerDriverRequest struct {
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Vehicle vehicleDTO      `json:"vehicle"`
	Status  string          `json:"status,omitempty"`
	Location json.RawMessage `json:"location,omitempty"`
}

type updateLocationRequest struct {
	Location json.RawMessage `json:"location"`
}

type updateDriverStatusRequest struct {
	Status string `json:"status"`
}

type updateDriverRequest struct {
	ID     string  `json:"id"`
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Status *string `json:"status,omitempty"`
}
