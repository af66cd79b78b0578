package commands

import (
	"errors"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/order"
	"github.com/SlinkierSwine/cargo-track/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand moves an order along one edge of its lifecycle.
// When the caller knows which cargo item the order carries, cargoID links the
// transition to a warehouse status sync (in_transit marks the cargo shipped,
// delivered marks it delivered).
type ChangeOrderStatusCommand struct {
	orderID kernel.UUID
	status  order.Status
	cargoID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand validates the target status and builds the
// command. cargoID may be nil when no warehouse sync is wanted.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	status order.Status,
	cargoID *kernel.UUID,
) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), status.Validate()); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	if cargoID != nil {
		if err := cargoID.Validate(); err != nil {
			return ChangeOrderStatusCommand{}, err
		}
	}

	return ChangeOrderStatusCommand{
		orderID: orderID,
		status:  status,
		cargoID: cargoID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c *ChangeOrderStatusCommand) OrderID() kernel.UUID  { return c.orderID }
func (c *ChangeOrderStatusCommand) Status() order.Status  { return c.status }
func (c *ChangeOrderStatusCommand) CargoID() *kernel.UUID { return c.cargoID }

// Validate ensures the command was created through the constructor.
func (c *ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}
