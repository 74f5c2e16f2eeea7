package handlers

import (
	"cargo-dispatch-service/internal/domain"
	"cargo-dispatch-service/internal/service/dispatch"
)

func toLocationInput(dto locationDTO) (dispatch.LocationInput, error) {
	in := dispatch.LocationInput{Address: dto.Address}
	if len(dto.Coordinates) == 0 {
		return in, nil
	}
	c, err := domain.ParseCoordinate(dto.Coordinates)
	if err != nil {
		return dispatch.LocationInput{}, err
	}
	in.Coordinates = &c
	return in, nil
}

func toCargo(dto cargoDTO) domain.Cargo {
	return domain.Cargo{
		WeightKg: dto.WeightKg,
		LengthCm: dto.LengthCm,
		WidthCm:  dto.WidthCm,
		HeightCm: dto.HeightCm,
		Class:    domain.CargoClass(dto.Class),
		Photos:   dto.Photos,
	}
}

func toCreateInput(requesterID string, req createDeliveryRequest) (dispatch.CreateInput, error) {
	pickup, err := toLocationInput(req.Pickup)
	if err != nil {
		return dispatch.CreateInput{}, err
	}
	dropoff, err := toLocationInput(req.Dropoff)
	if err != nil {
		return dispatch.CreateInput{}, err
	}
	return dispatch.CreateInput{
		RequesterID:         requesterID,
		Pickup:              pickup,
		Dropoff:             dropoff,
		Cargo:               toCargo(req.Cargo),
		VehicleClass:        domain.VehicleClass(req.VehicleClass),
		PaymentMethod:       domain.PaymentMethod(req.PaymentMethod),
		ScheduledPickup:     req.ScheduledPickup,
		ScheduledDelivery:   req.ScheduledDelivery,
		SpecialInstructions: req.SpecialInstructions,
	}, nil
}

func toCargoDTO(c domain.Cargo) cargoDTO {
	return cargoDTO{
		WeightKg: c.WeightKg,
		LengthCm: c.LengthCm,
		WidthCm:  c.WidthCm,
		HeightCm: c.HeightCm,
		Class:    string(c.Class),
		Photos:   c.Photos,
	}
}

func toLocationResponse(l domain.Location) locationResponse {
	return locationResponse{
		Address: l.Address,
		Coordinates: coordinateDTO{
			Lat: l.Coordinates.Lat,
			Lng: l.Coordinates.Lng,
		},
	}
}

func toDriverResponse(d *domain.Driver) *driverResponse {
	if d == nil {
		return nil
	}
	resp := &driverResponse{
		ID:     d.ID,
		Name:   d.Name,
		Phone:  d.Phone,
		Status: string(d.Status),
		Vehicle: vehicleDTO{
			Class:        string(d.Vehicle.Class),
			MaxWeightKg:  d.Vehicle.MaxWeightKg,
			MaxVolumeM3:  d.Vehicle.MaxVolumeM3,
			Registration: d.Vehicle.Registration,
			Model:        d.Vehicle.Model,
		},
		DistanceKm: d.DistanceKm,
	}
	if d.Location != nil {
		resp.Location = &coordinateDTO{Lat: d.Location.Lat, Lng: d.Location.Lng}
	}
	return resp
}

func toDeliveryResponse(d domain.Delivery) deliveryResponse {
	return deliveryResponse{
		ID:          d.ID,
		RequesterID: d.RequesterID,
		DriverID:    d.DriverID,

		Pickup:  toLocationResponse(d.Pickup),
		Dropoff: toLocationResponse(d.Dropoff),
		Cargo:   toCargoDTO(d.Cargo),

		VehicleClass: string(d.VehicleClass),
		Fare:         d.Fare,
		Payment: paymentDTO{
			Method:        string(d.Payment.Method),
			Status:        string(d.Payment.Status),
			TransactionID: d.Payment.TransactionID,
		},

		DistanceMeters:  d.DistanceMeters,
		DurationSeconds: d.DurationSeconds,

		OTP: d.OTP,

		Status: string(d.Status),

		ScheduledPickup:    d.ScheduledPickup,
		ScheduledDelivery:  d.ScheduledDelivery,
		ActualPickupTime:   d.ActualPickupTime,
		ActualDeliveryTime: d.ActualDeliveryTime,

		SpecialInstructions: d.SpecialInstructions,

		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toViewResponse(v dispatch.View) deliveryResponse {
	resp := toDeliveryResponse(v.Delivery)
	resp.Driver = toDriverResponse(v.Driver)
	return resp
}

func toDeliveryList(list []domain.Delivery) []deliveryResponse {
	out := make([]deliveryResponse, 0, len(list))
	for i := range list {
		out = append(out, toDeliveryResponse(list[i]))
	}
	return out
}

func toDomainDriver(req registerDriverRequest) (*domain.Driver, error) {
	d := &domain.Driver{
		Name:  req.Name,
		Phone: req.Phone,
		Vehicle: domain.Vehicle{
			Class:        domain.VehicleClass(req.Vehicle.Class),
			MaxWeightKg:  req.Vehicle.MaxWeightKg,
			MaxVolumeM3:  req.Vehicle.MaxVolumeM3,
			Registration: req.Vehicle.Registration,
			Model:        req.Vehicle.Model,
		},
		Status: domain.DriverStatus(req.Status),
	}
	if len(req.Location) > 0 {
		c, err := domain.ParseCoordinate(req.Location)
		if err != nil {
			return nil, err
		}
		d.Location = &c
	}
	return d, nil
}

func toPartialDriverUpdate(req updateDriverRequest) domain.PartialDriverUpdate {
	u := domain.PartialDriverUpdate{
		ID:    req.ID,
		Name:  req.Name,
		Phone: req.Phone,
	}
	if req.Status != nil {
		s := domain.DriverStatus(*req.Status)
		u.Status = &s
	}
	return u
}
