package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/fleet"
)

// ErrNoVehicleAvailable is the sentinel for failed fleet selection. The
// concrete error is a *SelectionError carrying the reason published on the
// no_vehicle_available event.
var ErrNoVehicleAvailable = errors.New("no vehicle available")

// NoVehicleReason classifies why selection failed. The values are published
// verbatim as the reason field of the no_vehicle_available event.
type NoVehicleReason string

const (
	ReasonNoDrivers        NoVehicleReason = "no_drivers"
	ReasonNoVehicles       NoVehicleReason = "no_vehicles"
	ReasonCapacityMismatch NoVehicleReason = "capacity_mismatch"
)

// SelectionError reports a failed driver/vehicle selection.
type SelectionError struct {
	Reason NoVehicleReason
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNoVehicleAvailable, e.Reason)
}

func (e *SelectionError) Unwrap() error {
	return ErrNoVehicleAvailable
}

// FleetSelector picks a driver and vehicle for an order's cargo using greedy
// first-fit: the first available driver, then the first active vehicle whose
// capacity covers the cargo. No attempt is made to find the best pairing;
// callers that need optimality must layer a planner on top.
type FleetSelector struct{}

// NewFleetSelector creates a FleetSelector.
func NewFleetSelector() FleetSelector {
	return FleetSelector{}
}

// Select returns the first eligible (vehicle, driver) pair, or a
// *SelectionError explaining which resource was missing. Checks run in a
// fixed order: drivers first, then vehicle existence, then capacity, so each
// failure maps to exactly one reason.
func (FleetSelector) Select(
	drivers []fleet.Driver,
	vehicles []fleet.Vehicle,
	cargoWeight, cargoVolume float64,
	now time.Time,
) (fleet.Vehicle, fleet.Driver, error) {
	var selectedDriver *fleet.Driver
	for i := range drivers {
		if drivers[i].IsAvailable(now) {
			selectedDriver = &drivers[i]
			break
		}
	}
	if selectedDriver == nil {
		return fleet.Vehicle{}, fleet.Driver{}, &SelectionError{Reason: ReasonNoDrivers}
	}

	available := make([]fleet.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if v.IsAvailable() {
			available = append(available, v)
		}
	}
	if len(available) == 0 {
		return fleet.Vehicle{}, fleet.Driver{}, &SelectionError{Reason: ReasonNoVehicles}
	}

	for _, v := range available {
		if v.CanCarry(cargoWeight, cargoVolume) {
			return v, *selectedDriver, nil
		}
	}

	return fleet.Vehicle{}, fleet.Driver{}, &SelectionError{Reason: ReasonCapacityMismatch}
}
