package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cargo-dispatch-service/internal/domain"
	"cargo-dispatch-service/internal/service/driver"
	"cargo-dispatch-service/internal/transport/kafka"
)

type fakeDriverRepo struct {
	updateLocationFn func(ctx context.Context, id string, c domain.Coordinate) (bool, error)
}

func (f *fakeDriverRepo) Create(context.Context, *domain.Driver) error { return nil }

func (f *fakeDriverRepo) Get(context.Context, string) (*domain.Driver, error) { return nil, nil }

func (f *fakeDriverRepo) UpdateLocation(ctx context.Context, id string, c domain.Coordinate) (bool, error) {
	return f.updateLocationFn(ctx, id, c)
}

func (f *fakeDriverRepo) UpdateStatus(context.Context, string, domain.DriverStatus) (bool, error) {
	return false, nil
}

func (f *fakeDriverRepo) UpdatePartial(context.Context, domain.PartialDriverUpdate) (bool, error) {
	return false, nil
}

func (f *fakeDriverRepo) FindNearbyAvailable(context.Context, domain.Coordinate, float64, *domain.VehicleClass) ([]domain.Driver, error) {
	return nil, nil
}

func locationEvent() kafka.LocationEvent {
	return kafka.LocationEvent{
		DriverID:   "drv-1",
		Location:   domain.Coordinate{Lat: 12.97, Lng: 77.59},
		RecordedAt: time.Now(),
	}
}

func TestLocationHandler_AppliesUpdate(t *testing.T) {
	t.Parallel()

	var gotID string
	repo := &fakeDriverRepo{
		updateLocationFn: func(ctx context.Context, id string, c domain.Coordinate) (bool, error) {
			gotID = id
			return true, nil
		},
	}
	h := makeLocationHandler(driver.NewService(repo, time.Second))

	err := h(context.Background(), locationEvent())
	require.NoError(t, err)
	require.Equal(t, "drv-1", gotID)
}

func TestLocationHandler_UnknownDriver_Permanent(t *testing.T) {
	t.Parallel()

	repo := &fakeDriverRepo{
		updateLocationFn: func(ctx context.Context, id string, c domain.Coordinate) (bool, error) {
			return false, nil
		},
	}
	h := makeLocationHandler(driver.NewService(repo, time.Second))

	err := h(context.Background(), locationEvent())
	require.Error(t, err)
	require.True(t, kafka.IsPermanent(err), "unknown driver must be a permanent failure")
}

func TestLocationHandler_BadCoordinates_Permanent(t *testing.T) {
	t.Parallel()

	repo := &fakeDriverRepo{
		updateLocationFn: func(ctx context.Context, id string, c domain.Coordinate) (bool, error) {
			t.Fatal("repo must not be reached for invalid coordinates")
			return false, nil
		},
	}
	h := makeLocationHandler(driver.NewService(repo, time.Second))

	event := locationEvent()
	event.Location = domain.Coordinate{Lat: 95, Lng: 77.59}

	err := h(context.Background(), event)
	require.Error(t, err)
	require.True(t, kafka.IsPermanent(err))
}

func TestLocationHandler_StorageError_Transient(t *testing.T) {
	t.Parallel()

	repo := &fakeDriverRepo{
		updateLocationFn: func(ctx context.Context, id string, c domain.Coordinate) (bool, error) {
			return false, errors.New("db down")
		},
	}
	h := makeLocationHandler(driver.NewService(repo, time.Second))

	err := h(context.Background(), locationEvent())
	require.Error(t, err)
	require.False(t, kafka.IsPermanent(err), "storage errors must stay retryable")
}
