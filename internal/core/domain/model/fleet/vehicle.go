// Package fleet holds read-only snapshots of vehicles and drivers owned by
// the fleet service. They arrive over HTTP or inside event payloads and are
// never persisted or mutated here, so unlike the order aggregate they are
// plain structs with wire tags.
package fleet

import (
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
)

// VehicleStatus is the operational state of a vehicle as reported by the
// fleet service.
type VehicleStatus string

const (
	VehicleStatusActive      VehicleStatus = "active"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusRetired     VehicleStatus = "retired"
)

// Vehicle is a point-in-time snapshot of a fleet vehicle. The capacity and
// certification fields drive compatibility checks and assignment decisions.
type Vehicle struct {
	ID                    kernel.UUID   `json:"id"`
	LicensePlate          string        `json:"license_plate"`
	CapacityWeight        float64       `json:"capacity_weight"`
	CapacityVolume        float64       `json:"capacity_volume"`
	Status                VehicleStatus `json:"status"`
	TemperatureControlled bool          `json:"temperature_controlled"`
	HazardousCertified    bool          `json:"hazardous_certified"`
	SpecialEquipment      []string      `json:"special_equipment"`
}

// IsAvailable reports whether the vehicle can take new assignments.
// Vehicles in maintenance or retired are never eligible.
func (v Vehicle) IsAvailable() bool {
	return v.Status == VehicleStatusActive
}

// CanCarry reports whether the vehicle's capacity covers the given cargo
// weight and volume.
func (v Vehicle) CanCarry(weight, volume float64) bool {
	return v.CapacityWeight >= weight && v.CapacityVolume >= volume
}

// HasEquipment reports whether the vehicle carries the named special
// equipment item.
func (v Vehicle) HasEquipment(name string) bool {
	for _, item := range v.SpecialEquipment {
		if item == name {
			return true
		}
	}
	return false
}
