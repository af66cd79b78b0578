// Package cargo holds the warehouse-owned cargo snapshot consumed by
// compatibility checks and assignment preconditions.
package cargo

import (
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
)

// Status tracks a cargo item through the warehouse workflow.
type Status string

const (
	StatusReceived    Status = "received"
	StatusStored      Status = "stored"
	StatusReadyToShip Status = "ready_to_ship"
	StatusLoading     Status = "loading"
	StatusShipped     Status = "shipped"
	StatusDelivered   Status = "delivered"
)

// IsValid reports whether s is one of the known workflow statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusReceived, StatusStored, StatusReadyToShip,
		StatusLoading, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// Cargo describes a cargo item and its handling requirements. Weight is in
// kilograms, volume in cubic meters.
type Cargo struct {
	ID                         kernel.UUID `json:"id"`
	Name                       string      `json:"name"`
	CargoType                  string      `json:"cargo_type"`
	Weight                     float64     `json:"weight"`
	Volume                     float64     `json:"volume"`
	Status                     Status      `json:"status"`
	RequiresTemperatureControl bool        `json:"requires_temperature_control"`
	HazardousMaterial          bool        `json:"hazardous_material"`
	SpecialHandling            []string    `json:"special_handling"`
}

// IsReadyForShipping reports whether the cargo can be attached to an order.
func (c Cargo) IsReadyForShipping() bool {
	return c.Status == StatusStored || c.Status == StatusReadyToShip
}
