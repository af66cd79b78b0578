// Package cargorepo persists the warehouse-owned cargo snapshots consumed by
// compatibility checks.
package cargorepo

import (
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/cargo"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CargoDTO represents the database structure for cargo records.
type CargoDTO struct {
	ID                         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                       string
	CargoType                  string
	Weight                     float64
	Volume                     float64
	Status                     string `gorm:"index"`
	RequiresTemperatureControl bool
	HazardousMaterial          bool
	SpecialHandling            []string `gorm:"serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for cargo records.
func (CargoDTO) TableName() string {
	return "cargos"
}

func fromDomain(c cargo.Cargo) CargoDTO {
	return CargoDTO{
		ID:                         c.ID.Bytes(),
		Name:                       c.Name,
		CargoType:                  c.CargoType,
		Weight:                     c.Weight,
		Volume:                     c.Volume,
		Status:                     string(c.Status),
		RequiresTemperatureControl: c.RequiresTemperatureControl,
		HazardousMaterial:          c.HazardousMaterial,
		SpecialHandling:            c.SpecialHandling,
	}
}

func toDomain(dto CargoDTO) (cargo.Cargo, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return cargo.Cargo{}, err
	}

	return cargo.Cargo{
		ID:                         id,
		Name:                       dto.Name,
		CargoType:                  dto.CargoType,
		Weight:                     dto.Weight,
		Volume:                     dto.Volume,
		Status:                     cargo.Status(dto.Status),
		RequiresTemperatureControl: dto.RequiresTemperatureControl,
		HazardousMaterial:          dto.HazardousMaterial,
		SpecialHandling:            dto.SpecialHandling,
	}, nil
}
