package kafka

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToDomain_TrimsDriverID(t *testing.T) {
	t.Parallel()

	ev := ToDomain(LocationEventDTO{DriverID: "  drv-1  ", Lat: 12.9716, Lng: 77.5946})
	require.Equal(t, "drv-1", ev.DriverID)
	require.Equal(t, 12.9716, ev.Location.Lat)
	require.Equal(t, 77.5946, ev.Location.Lng)
}
