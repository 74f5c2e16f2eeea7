package kafka

import (
	"strings"
	"time"

	"cargo-dispatch-service/internal/domain"
)

// LocationEvent is a driver position report consumed from the location topic.
type LocationEvent struct {
	DriverID   string
	Location   domain.Coordinate
	RecordedAt time.Time
}

// LocationEventDTO is the wire shape of a LocationEvent
type LocationEventDTO struct {
	DriverID   string    `json:"driver_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ToDomain converts LocationEventDTO to LocationEvent
func ToDomain(dto LocationEventDTO) LocationEvent {
	return LocationEvent{
		DriverID:   strings.TrimSpace(dto.DriverID),
		Location:   domain.Coordinate{Lat: dto.Lat, Lng: dto.Lng},
		RecordedAt: dto.RecordedAt,
	}
}
