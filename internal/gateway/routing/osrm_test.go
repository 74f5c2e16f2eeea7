package routing_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cargo-dispatch-service/internal/apperr"
	"cargo-dispatch-service/internal/domain"
	"cargo-dispatch-service/internal/gateway/routing"
)

var (
	pickup  = domain.Coordinate{Lat: 12.9716, Lng: 77.5946}
	dropoff = domain.Coordinate{Lat: 12.9352, Lng: 77.6245}
)

func TestOSRMClient_DistanceDuration(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Path, "/route/v1/driving/")
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":10432.7,"duration":1302.4}]}`))
	}))
	defer srv.Close()

	c := routing.NewOSRMClient(srv.URL, time.Second)
	res, err := c.DistanceDuration(context.Background(), pickup, dropoff)
	require.NoError(t, err)
	require.InDelta(t, 10432.7, res.DistanceMeters, 1e-9)
	require.InDelta(t, 1302.4, res.DurationSeconds, 1e-9)
}

func TestOSRMClient_NoRoute(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer srv.Close()

	c := routing.NewOSRMClient(srv.URL, time.Second)
	_, err := c.DistanceDuration(context.Background(), pickup, dropoff)
	require.ErrorIs(t, err, apperr.ErrRouteNotFound)
	require.NotErrorIs(t, err, apperr.ErrDependency)
}

func TestOSRMClient_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := routing.NewOSRMClient(srv.URL, time.Second)
	_, err := c.DistanceDuration(context.Background(), pickup, dropoff)
	require.ErrorIs(t, err, apperr.ErrDependency)
}

func TestOSRMClient_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing is listening anymore

	c := routing.NewOSRMClient(srv.URL, time.Second)
	_, err := c.DistanceDuration(context.Background(), pickup, dropoff)
	require.ErrorIs(t, err, apperr.ErrDependency)
}

func TestNominatimClient_Coordinates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.Header.Get("User-Agent"))
		require.Equal(t, "12 MG Road", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`[{"lat":"12.9716","lon":"77.5946"}]`))
	}))
	defer srv.Close()

	c := routing.NewNominatimClient(srv.URL, time.Second)
	got, err := c.Coordinates(context.Background(), "12 MG Road")
	require.NoError(t, err)
	require.InDelta(t, 12.9716, got.Lat, 1e-9)
	require.InDelta(t, 77.5946, got.Lng, 1e-9)
}

func TestNominatimClient_AddressNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := routing.NewNominatimClient(srv.URL, time.Second)
	_, err := c.Coordinates(context.Background(), "nowhere at all")
	require.ErrorIs(t, err, apperr.ErrAddressNotFound)
}
