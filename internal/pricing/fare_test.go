package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cargo-dispatch-service/internal/apperr"
	"cargo-dispatch-service/internal/domain"
	"cargo-dispatch-service/internal/pricing"
)

func TestQuote_MiniTruckReference(t *testing.T) {
	t.Parallel()

	// round(100 + 10*25 + 100*5 + 1*0.5) == round(850.5) == 851
	fare, err := pricing.Quote(domain.VehicleMiniTruck, 10_000, 100, 1)
	require.NoError(t, err)
	require.EqualValues(t, 851, fare)
}

func TestQuote_Table(t *testing.T) {
	t.Parallel()

	cases := []struct {
		class    domain.VehicleClass
		distance float64
		weight   float64
		volume   float64
		want     int64
	}{
		{domain.VehicleThreeWheeler, 0, 0, 0, 50},
		{domain.VehicleERickshaw, 2_500, 10, 0, 85},
		{domain.VehicleDeliveryVan, 5_000, 50, 2, 381},
		{domain.VehicleTempoTruck, 12_000, 1000, 4, 8572},
		{domain.VehicleLargeTruck, 40_000, 5000, 10, 62255},
	}
	for _, tc := range cases {
		t.Run(string(tc.class), func(t *testing.T) {
			fare, err := pricing.Quote(tc.class, tc.distance, tc.weight, tc.volume)
			require.NoError(t, err)
			require.Equal(t, tc.want, fare)
		})
	}
}

func TestQuote_Deterministic_AndAtLeastBase(t *testing.T) {
	t.Parallel()

	for _, class := range domain.VehicleClasses() {
		rate, err := pricing.RateFor(class)
		require.NoError(t, err)

		first, err := pricing.Quote(class, 7_777, 42.5, 0.33)
		require.NoError(t, err)
		second, err := pricing.Quote(class, 7_777, 42.5, 0.33)
		require.NoError(t, err)

		require.Equal(t, first, second)
		require.GreaterOrEqual(t, float64(first), rate.Base)
	}
}

func TestQuote_HalfRoundsAwayFromZero(t *testing.T) {
	t.Parallel()

	// base 40 + 0 + 0 + 1m³*0.5 = 40.5 -> 41
	fare, err := pricing.Quote(domain.VehicleERickshaw, 0, 0, 1)
	require.NoError(t, err)
	require.EqualValues(t, 41, fare)
}

func TestQuote_UnknownVehicleClass(t *testing.T) {
	t.Parallel()

	_, err := pricing.Quote(domain.VehicleClass("hoverboard"), 1000, 1, 0)
	require.ErrorIs(t, err, apperr.ErrUnknownVehicleClass)
	require.ErrorIs(t, err, apperr.ErrInvalid)

	_, err = pricing.MaxWeightKg(domain.VehicleClass(""))
	require.ErrorIs(t, err, apperr.ErrUnknownVehicleClass)
}
