package services_test

import (
	"testing"
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/fleet"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeDriver(now time.Time) fleet.Driver {
	return fleet.Driver{
		ID:                       kernel.NewUUID(),
		FirstName:                "Marta",
		LastName:                 "Kovacs",
		Status:                   fleet.DriverStatusActive,
		LicenseExpiry:            now.Add(365 * 24 * time.Hour),
		MedicalCertificateExpiry: now.Add(180 * 24 * time.Hour),
	}
}

func activeVehicle(weight, volume float64) fleet.Vehicle {
	return fleet.Vehicle{
		ID:             kernel.NewUUID(),
		LicensePlate:   "XY-987-ZW",
		CapacityWeight: weight,
		CapacityVolume: volume,
		Status:         fleet.VehicleStatusActive,
	}
}

func TestFleetSelector_Select(t *testing.T) {
	selector := services.NewFleetSelector()
	now := time.Now().UTC()

	t.Run("picks the first eligible driver and vehicle", func(t *testing.T) {
		drivers := []fleet.Driver{activeDriver(now), activeDriver(now)}
		vehicles := []fleet.Vehicle{activeVehicle(500, 10), activeVehicle(900, 20)}

		v, d, err := selector.Select(drivers, vehicles, 100, 2, now)

		require.NoError(t, err)
		assert.True(t, d.ID.IsEqual(drivers[0].ID))
		assert.True(t, v.ID.IsEqual(vehicles[0].ID))
	})

	t.Run("skips drivers with expired documents", func(t *testing.T) {
		expired := activeDriver(now)
		expired.LicenseExpiry = now.Add(-time.Hour)
		eligible := activeDriver(now)
		drivers := []fleet.Driver{expired, eligible}

		_, d, err := selector.Select(drivers, []fleet.Vehicle{activeVehicle(500, 10)}, 100, 2, now)

		require.NoError(t, err)
		assert.True(t, d.ID.IsEqual(eligible.ID))
	})

	t.Run("no drivers at all", func(t *testing.T) {
		_, _, err := selector.Select(nil, []fleet.Vehicle{activeVehicle(500, 10)}, 100, 2, now)

		require.ErrorIs(t, err, services.ErrNoVehicleAvailable)
		var selErr *services.SelectionError
		require.ErrorAs(t, err, &selErr)
		assert.Equal(t, services.ReasonNoDrivers, selErr.Reason)
	})

	t.Run("only unavailable drivers count as none", func(t *testing.T) {
		onLeave := activeDriver(now)
		onLeave.Status = fleet.DriverStatusOnLeave
		noMedical := activeDriver(now)
		noMedical.MedicalCertificateExpiry = now.Add(-time.Minute)

		_, _, err := selector.Select(
			[]fleet.Driver{onLeave, noMedical},
			[]fleet.Vehicle{activeVehicle(500, 10)}, 100, 2, now)

		var selErr *services.SelectionError
		require.ErrorAs(t, err, &selErr)
		assert.Equal(t, services.ReasonNoDrivers, selErr.Reason)
	})

	t.Run("no active vehicles", func(t *testing.T) {
		retired := activeVehicle(500, 10)
		retired.Status = fleet.VehicleStatusRetired

		_, _, err := selector.Select(
			[]fleet.Driver{activeDriver(now)}, []fleet.Vehicle{retired}, 100, 2, now)

		var selErr *services.SelectionError
		require.ErrorAs(t, err, &selErr)
		assert.Equal(t, services.ReasonNoVehicles, selErr.Reason)
	})

	t.Run("vehicles exist but none cover the cargo", func(t *testing.T) {
		_, _, err := selector.Select(
			[]fleet.Driver{activeDriver(now)},
			[]fleet.Vehicle{activeVehicle(50, 10), activeVehicle(500, 1)},
			100, 2, now)

		var selErr *services.SelectionError
		require.ErrorAs(t, err, &selErr)
		assert.Equal(t, services.ReasonCapacityMismatch, selErr.Reason)
	})

	t.Run("first fit skips undersized vehicles", func(t *testing.T) {
		small := activeVehicle(50, 10)
		fitting := activeVehicle(500, 10)

		v, _, err := selector.Select(
			[]fleet.Driver{activeDriver(now)},
			[]fleet.Vehicle{small, fitting}, 100, 2, now)

		require.NoError(t, err)
		assert.True(t, v.ID.IsEqual(fitting.ID))
	})
}
