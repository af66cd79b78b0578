// Package services contains stateless domain services that implement
// decision logic spanning more than one model: cargo/vehicle compatibility
// scoring, greedy fleet selection and assignment reservations.
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/cargo"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/fleet"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
)

// Score deductions per violated constraint. The five checks are independent
// and the deductions cumulative; a pairing can fail several dimensions at
// once, each contributing its own risk entry.
const (
	weightPenalty      = 30
	volumePenalty      = 25
	temperaturePenalty = 20
	hazardousPenalty   = 25
	equipmentPenalty   = 15

	// compatibilityThreshold is the minimum raw score (out of 100) for a
	// pairing to count as compatible.
	compatibilityThreshold = 70
)

// CompatibilityReport is the result of scoring a cargo/vehicle pairing.
// It is produced per request and not persisted.
type CompatibilityReport struct {
	CargoID                kernel.UUID `json:"cargo_id"`
	VehicleID              kernel.UUID `json:"vehicle_id"`
	IsCompatible           bool        `json:"is_compatible"`
	Score                  float64     `json:"score"`
	WeightCompatible       bool        `json:"weight_compatible"`
	VolumeCompatible       bool        `json:"volume_compatible"`
	TemperatureCompatible  bool        `json:"temperature_compatible"`
	HazardousCompatible    bool        `json:"hazardous_compatible"`
	SpecialRequirementsMet bool        `json:"special_requirements_met"`
	Risks                  []string    `json:"risks"`
	Recommendations        []string    `json:"recommendations"`
	CreatedAt              time.Time   `json:"created_at"`
}

// CompatibilityChecker scores a cargo/vehicle pairing against weight, volume,
// temperature, hazardous-certification and special-equipment constraints.
//
// Check is a pure function: no side effects, deterministic given inputs.
// Scoring starts at 100 and subtracts a fixed penalty per violated
// constraint; the raw score is clamped at 0 and reported on a 0.0-1.0 scale.
type CompatibilityChecker struct{}

// NewCompatibilityChecker creates a CompatibilityChecker.
func NewCompatibilityChecker() CompatibilityChecker {
	return CompatibilityChecker{}
}

// Check evaluates the pairing and returns a full report. A report with zero
// risks always scores 1.0; missing special equipment is penalized once
// regardless of how many items are missing, but every missing item is listed.
func (CompatibilityChecker) Check(c cargo.Cargo, v fleet.Vehicle) CompatibilityReport {
	score := 100
	risks := make([]string, 0)
	recommendations := make([]string, 0)

	weightCompatible := c.Weight <= v.CapacityWeight
	if !weightCompatible {
		score -= weightPenalty
		risks = append(risks, fmt.Sprintf(
			"Cargo weight (%g kg) exceeds vehicle capacity (%g kg)", c.Weight, v.CapacityWeight))
		recommendations = append(recommendations, "Consider using a vehicle with higher weight capacity")
	}

	volumeCompatible := c.Volume <= v.CapacityVolume
	if !volumeCompatible {
		score -= volumePenalty
		risks = append(risks, fmt.Sprintf(
			"Cargo volume (%g m³) exceeds vehicle capacity (%g m³)", c.Volume, v.CapacityVolume))
		recommendations = append(recommendations, "Consider using a vehicle with higher volume capacity")
	}

	temperatureCompatible := !(c.RequiresTemperatureControl && !v.TemperatureControlled)
	if !temperatureCompatible {
		score -= temperaturePenalty
		risks = append(risks, "Cargo requires temperature control, but vehicle is not temperature controlled")
		recommendations = append(recommendations, "Use a temperature-controlled vehicle")
	}

	hazardousCompatible := !(c.HazardousMaterial && !v.HazardousCertified)
	if !hazardousCompatible {
		score -= hazardousPenalty
		risks = append(risks, "Cargo contains hazardous materials, but vehicle is not certified for hazardous transport")
		recommendations = append(recommendations, "Use a vehicle certified for hazardous materials transport")
	}

	specialRequirementsMet := true
	var missing []string
	for _, required := range c.SpecialHandling {
		if !v.HasEquipment(required) {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		specialRequirementsMet = false
		score -= equipmentPenalty
		risks = append(risks, fmt.Sprintf(
			"Vehicle missing required equipment: %s", strings.Join(missing, ", ")))
		recommendations = append(recommendations, fmt.Sprintf(
			"Use a vehicle with equipment: %s", strings.Join(missing, ", ")))
	}

	isCompatible := score >= compatibilityThreshold
	if score < 0 {
		score = 0
	}

	return CompatibilityReport{
		CargoID:                c.ID,
		VehicleID:              v.ID,
		IsCompatible:           isCompatible,
		Score:                  float64(score) / 100.0,
		WeightCompatible:       weightCompatible,
		VolumeCompatible:       volumeCompatible,
		TemperatureCompatible:  temperatureCompatible,
		HazardousCompatible:    hazardousCompatible,
		SpecialRequirementsMet: specialRequirementsMet,
		Risks:                  risks,
		Recommendations:        recommendations,
		CreatedAt:              time.Now().UTC(),
	}
}
