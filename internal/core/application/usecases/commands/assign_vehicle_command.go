package commands

import (
	"errors"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/pkg/guard"
)

var ErrAssignVehicleCommandIsNotConstructed = errors.New(
	"AssignVehicleCommand must be created via NewAssignVehicleCommand constructor",
)

// AssignVehicleCommand commits a specific vehicle and driver to a pending
// order. Used both by the manual HTTP endpoint and by the saga handler after
// the fleet service picked a pair.
type AssignVehicleCommand struct {
	orderID   kernel.UUID
	vehicleID kernel.UUID
	driverID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignVehicleCommand validates the identifiers and builds the command.
func NewAssignVehicleCommand(orderID, vehicleID, driverID kernel.UUID) (AssignVehicleCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		vehicleID.Validate(),
		driverID.Validate(),
	); err != nil {
		return AssignVehicleCommand{}, err
	}

	return AssignVehicleCommand{
		orderID:   orderID,
		vehicleID: vehicleID,
		driverID:  driverID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c *AssignVehicleCommand) OrderID() kernel.UUID   { return c.orderID }
func (c *AssignVehicleCommand) VehicleID() kernel.UUID { return c.vehicleID }
func (c *AssignVehicleCommand) DriverID() kernel.UUID  { return c.driverID }

// Validate ensures the command was created through the constructor.
func (c *AssignVehicleCommand) Validate() error {
	return c.guard.Validate(ErrAssignVehicleCommandIsNotConstructed)
}
