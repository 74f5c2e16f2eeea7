package domain

import (
	"encoding/json"
	"fmt"
	"math"

	"cargo-dispatch-service/internal/apperr"
)

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid checks that the coordinate is inside the WGS84 ranges.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// ParseCoordinate decodes a coordinate given in any of the wire shapes
// clients historically send:
//
//	{"lat": .., "lng": ..}
//	{"latitude": .., "longitude": ..}
//	[lng, lat]
//	{"type": "Point", "coordinates": [lng, lat]}
//
// plus any of the above wrapped in a JSON string. It is the single place
// coordinate input is interpreted; everything downstream works with the
// typed Coordinate.
func ParseCoordinate(raw json.RawMessage) (Coordinate, error) {
	if len(raw) == 0 {
		return Coordinate{}, fmt.Errorf("empty coordinates: %w", apperr.ErrInvalid)
	}

	// Stringified JSON: unwrap once and retry.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseCoordinate(json.RawMessage(s))
	}

	var latLng struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := json.Unmarshal(raw, &latLng); err == nil && latLng.Lat != nil && latLng.Lng != nil {
		return validated(Coordinate{Lat: *latLng.Lat, Lng: *latLng.Lng})
	}

	var longForm struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(raw, &longForm); err == nil && longForm.Latitude != nil && longForm.Longitude != nil {
		return validated(Coordinate{Lat: *longForm.Latitude, Lng: *longForm.Longitude})
	}

	// [lng, lat]
	var pair []float64
	if err := json.Unmarshal(raw, &pair); err == nil && len(pair) == 2 {
		return validated(Coordinate{Lat: pair[1], Lng: pair[0]})
	}

	// GeoJSON Point, coordinates are [lng, lat]
	var geo struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(raw, &geo); err == nil && geo.Type == "Point" && len(geo.Coordinates) == 2 {
		return validated(Coordinate{Lat: geo.Coordinates[1], Lng: geo.Coordinates[0]})
	}

	return Coordinate{}, fmt.Errorf("unsupported coordinate format: %w", apperr.ErrInvalid)
}

func validated(c Coordinate) (Coordinate, error) {
	if !c.Valid() {
		return Coordinate{}, fmt.Errorf("coordinate out of range: %w", apperr.ErrInvalid)
	}
	return c, nil
}
