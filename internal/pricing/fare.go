// Package pricing computes delivery fares from the vehicle class rate table.
// Quotes are pure: identical inputs always produce identical fares.
package pricing

import (
	"math"

	"cargo-dispatch-service/internal/apperr"
	"cargo-dispatch-service/internal/domain"
)

// Rate holds the pricing parameters of one vehicle class.
type Rate struct {
	Base        float64
	PerKm       float64
	PerKg       float64
	MaxWeightKg float64
}

// rates is the vehicle class table: class -> base, per-km, per-kg, capacity.
var rates = map[domain.VehicleClass]Rate{
	domain.VehicleThreeWheeler: {Base: 50, PerKm: 15, PerKg: 2, MaxWeightKg: 500},
	domain.VehicleERickshaw:    {Base: 40, PerKm: 12, PerKg: 1.5, MaxWeightKg: 300},
	domain.VehicleMiniTruck:    {Base: 100, PerKm: 25, PerKg: 5, MaxWeightKg: 1500},
	domain.VehicleDeliveryVan:  {Base: 80, PerKm: 20, PerKg: 4, MaxWeightKg: 1000},
	domain.VehicleTempoTruck:   {Base: 150, PerKm: 35, PerKg: 8, MaxWeightKg: 4000},
	domain.VehicleLargeTruck:   {Base: 250, PerKm: 50, PerKg: 12, MaxWeightKg: 10000},
}

// RateFor returns the rate entry for a vehicle class.
func RateFor(class domain.VehicleClass) (Rate, error) {
	r, ok := rates[class]
	if !ok {
		return Rate{}, apperr.ErrUnknownVehicleClass
	}
	return r, nil
}

// MaxWeightKg returns the carrying capacity of a vehicle class.
func MaxWeightKg(class domain.VehicleClass) (float64, error) {
	r, err := RateFor(class)
	if err != nil {
		return 0, err
	}
	return r.MaxWeightKg, nil
}

// Quote returns the integer fare for a route of distanceMeters carrying
// weightKg of cargo with volumeM3 cubic meters on the given vehicle class.
//
//	fare = round(base + km*perKm + kg*perKg + volume*0.5)
//
// rounded half away from zero.
func Quote(class domain.VehicleClass, distanceMeters, weightKg, volumeM3 float64) (int64, error) {
	r, ok := rates[class]
	if !ok {
		return 0, apperr.ErrUnknownVehicleClass
	}
	fare := r.Base + distanceMeters/1000*r.PerKm + weightKg*r.PerKg + volumeM3*0.5
	return int64(math.Round(fare)), nil
}
