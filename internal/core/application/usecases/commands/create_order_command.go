package commands

import (
	"errors"
	"fmt"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/pkg/errs"
	"github.com/SlinkierSwine/cargo-track/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a new shipping order in pending status.
// The order id is supplied by the caller so the HTTP layer can return it
// before the asynchronous assignment saga completes.
type CreateOrderCommand struct {
	orderID         kernel.UUID
	customerName    string
	customerEmail   string
	customerPhone   string
	pickupAddress   string
	deliveryAddress string
	cargoType       string
	cargoWeight     float64
	cargoVolume     float64
	notes           string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request fields and builds the command.
// Cargo weight and volume must be strictly positive.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerName, customerEmail, customerPhone string,
	pickupAddress, deliveryAddress string,
	cargoType string,
	cargoWeight, cargoVolume float64,
	notes string,
) (CreateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if customerName == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("customerName")
	}
	if customerEmail == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("customerEmail")
	}
	if pickupAddress == "" || deliveryAddress == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("address")
	}
	if cargoWeight <= 0 {
		return CreateOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("cargoWeight",
			fmt.Errorf("%v is not greater than 0", cargoWeight))
	}
	if cargoVolume <= 0 {
		return CreateOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("cargoVolume",
			fmt.Errorf("%v is not greater than 0", cargoVolume))
	}

	return CreateOrderCommand{
		orderID:         orderID,
		customerName:    customerName,
		customerEmail:   customerEmail,
		customerPhone:   customerPhone,
		pickupAddress:   pickupAddress,
		deliveryAddress: deliveryAddress,
		cargoType:       cargoType,
		cargoWeight:     cargoWeight,
		cargoVolume:     cargoVolume,
		notes:           notes,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the id the new order will be created under.
func (c *CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate ensures the command was created through the constructor.
func (c *CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}
