package domain

// VehicleClass represents a tier of carrying capacity and price rate.
type VehicleClass string

// List of possible vehicle classes
const (
	VehicleThreeWheeler VehicleClass = "3_wheeler"
	VehicleERickshaw    VehicleClass = "e_rickshaw"
	VehicleMiniTruck    VehicleClass = "mini_truck"
	VehicleDeliveryVan  VehicleClass = "delivery_van"
	VehicleTempoTruck   VehicleClass = "tempo_truck"
	VehicleLargeTruck   VehicleClass = "large_truck"
)

var allowedVehicleClasses = [...]VehicleClass{
	VehicleThreeWheeler, VehicleERickshaw, VehicleMiniTruck,
	VehicleDeliveryVan, VehicleTempoTruck, VehicleLargeTruck,
}

// Valid checks if the VehicleClass is valid
func (v VehicleClass) Valid() bool {
	for _, c := range allowedVehicleClasses {
		if v == c {
			return true
		}
	}
	return false
}

// VehicleClasses returns all valid vehicle classes.
func VehicleClasses() []VehicleClass {
	return allowedVehicleClasses[:]
}
