package queries

import (
	"errors"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/pkg/guard"
)

var ErrCheckCompatibilityQueryIsNotConstructed = errors.New(
	"CheckCompatibilityQuery must be created via NewCheckCompatibilityQuery constructor",
)

// CheckCompatibilityQuery scores one cargo item against one vehicle.
type CheckCompatibilityQuery struct {
	cargoID   kernel.UUID
	vehicleID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCheckCompatibilityQuery validates the identifiers and builds the query.
func NewCheckCompatibilityQuery(cargoID, vehicleID kernel.UUID) (CheckCompatibilityQuery, error) {
	if err := errors.Join(cargoID.Validate(), vehicleID.Validate()); err != nil {
		return CheckCompatibilityQuery{}, err
	}

	return CheckCompatibilityQuery{
		cargoID:   cargoID,
		vehicleID: vehicleID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q CheckCompatibilityQuery) CargoID() kernel.UUID   { return q.cargoID }
func (q CheckCompatibilityQuery) VehicleID() kernel.UUID { return q.vehicleID }

// Validate ensures the query was created through the constructor.
func (q CheckCompatibilityQuery) Validate() error {
	return q.guard.Validate(ErrCheckCompatibilityQueryIsNotConstructed)
}
