package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"cargo-dispatch-service/internal/apperr"
	"cargo-dispatch-service/internal/domain"
)

func TestParseCoordinate_AcceptedShapes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want domain.Coordinate
	}{
		{"lat_lng", `{"lat":12.97,"lng":77.59}`, domain.Coordinate{Lat: 12.97, Lng: 77.59}},
		{"latitude_longitude", `{"latitude":12.97,"longitude":77.59}`, domain.Coordinate{Lat: 12.97, Lng: 77.59}},
		{"lng_lat_array", `[77.59,12.97]`, domain.Coordinate{Lat: 12.97, Lng: 77.59}},
		{"geojson_point", `{"type":"Point","coordinates":[77.59,12.97]}`, domain.Coordinate{Lat: 12.97, Lng: 77.59}},
		{"stringified", `"{\"lat\":12.97,\"lng\":77.59}"`, domain.Coordinate{Lat: 12.97, Lng: 77.59}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := domain.ParseCoordinate(json.RawMessage(tc.raw))
			require.NoError(t, err)
			require.InDelta(t, tc.want.Lat, got.Lat, 1e-9)
			require.InDelta(t, tc.want.Lng, got.Lng, 1e-9)
		})
	}
}

func TestParseCoordinate_Rejected(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ``},
		{"null", `null`},
		{"missing_lng", `{"lat":12.97}`},
		{"wrong_arity", `[77.59]`},
		{"geojson_line", `{"type":"LineString","coordinates":[77.59,12.97]}`},
		{"lat_out_of_range", `{"lat":91,"lng":0}`},
		{"lng_out_of_range", `{"lat":0,"lng":181}`},
		{"garbage", `"not json at all"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.ParseCoordinate(json.RawMessage(tc.raw))
			require.ErrorIs(t, err, apperr.ErrInvalid)
		})
	}
}

func TestCargo_VolumeM3(t *testing.T) {
	t.Parallel()

	c := domain.Cargo{LengthCm: 100, WidthCm: 100, HeightCm: 100}
	require.InDelta(t, 1.0, c.VolumeM3(), 1e-9)
}

func TestDelivery_IsParty(t *testing.T) {
	t.Parallel()

	driver := "drv1"
	d := domain.Delivery{RequesterID: "usr1", DriverID: &driver}
	require.True(t, d.IsParty("usr1"))
	require.True(t, d.IsParty("drv1"))
	require.False(t, d.IsParty("other"))
	require.False(t, d.IsParty(""))
}
