package driver

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"cargo-dispatch-service/internal/apperr"
	"cargo-dispatch-service/internal/domain"
)

func newCtrl(t *testing.T) *gomock.Controller {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return ctrl
}

func TestService_UpdateStatus_Mock(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	repo := NewMockdriverRepository(ctrl)
	repo.EXPECT().
		UpdateStatus(gomock.Any(), "drv-1", domain.DriverAvailable).
		Return(true, nil)

	svc := NewService(repo, time.Second)
	require.NoError(t, svc.UpdateStatus(context.Background(), "drv-1", domain.DriverAvailable))
}

func TestService_UpdateStatus_Mock_UnknownDriver(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	repo := NewMockdriverRepository(ctrl)
	repo.EXPECT().
		UpdateStatus(gomock.Any(), "missing", domain.DriverOffline).
		Return(false, nil)

	svc := NewService(repo, time.Second)
	err := svc.UpdateStatus(context.Background(), "missing", domain.DriverOffline)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_FindNearbyAvailable_Mock_PassesFilter(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	origin := domain.Coordinate{Lat: 12.97, Lng: 77.59}
	class := domain.VehicleMiniTruck

	repo := NewMockdriverRepository(ctrl)
	repo.EXPECT().
		FindNearbyAvailable(gomock.Any(), origin, 5.0, &class).
		Return([]domain.Driver{{ID: "drv-1"}}, nil)

	svc := NewService(repo, time.Second)
	got, err := svc.FindNearbyAvailable(context.Background(), origin, 5, &class)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "drv-1", got[0].ID)
}
