package commands

import (
	"errors"
	"fmt"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/cargo"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/pkg/errs"
	"github.com/SlinkierSwine/cargo-track/internal/pkg/guard"
)

var ErrRegisterCargoCommandIsNotConstructed = errors.New(
	"RegisterCargoCommand must be created via NewRegisterCargoCommand constructor",
)

// RegisterCargoCommand upserts the local snapshot of a warehouse cargo item.
// Compatibility checks run against these snapshots, so the warehouse pushes
// one whenever a cargo item is created or its handling requirements change.
type RegisterCargoCommand struct {
	cargoID                    kernel.UUID
	name                       string
	cargoType                  string
	weight                     float64
	volume                     float64
	status                     cargo.Status
	requiresTemperatureControl bool
	hazardousMaterial          bool
	specialHandling            []string

	guard guard.ConstructorGuard
}

// NewRegisterCargoCommand validates the snapshot fields and builds the
// command. Weight and volume must be strictly positive.
func NewRegisterCargoCommand(
	cargoID kernel.UUID,
	name, cargoType string,
	weight, volume float64,
	status cargo.Status,
	requiresTemperatureControl, hazardousMaterial bool,
	specialHandling []string,
) (RegisterCargoCommand, error) {
	if err := cargoID.Validate(); err != nil {
		return RegisterCargoCommand{}, err
	}
	if name == "" {
		return RegisterCargoCommand{}, errs.NewValueIsRequiredError("name")
	}
	if cargoType == "" {
		return RegisterCargoCommand{}, errs.NewValueIsRequiredError("cargoType")
	}
	if weight <= 0 {
		return RegisterCargoCommand{}, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%v is not greater than 0", weight))
	}
	if volume <= 0 {
		return RegisterCargoCommand{}, errs.NewValueIsInvalidErrorWithCause("volume",
			fmt.Errorf("%v is not greater than 0", volume))
	}
	if status == "" {
		status = cargo.StatusReceived
	}
	if !status.IsValid() {
		return RegisterCargoCommand{}, errs.NewValueIsInvalidError("status")
	}

	return RegisterCargoCommand{
		cargoID:                    cargoID,
		name:                       name,
		cargoType:                  cargoType,
		weight:                     weight,
		volume:                     volume,
		status:                     status,
		requiresTemperatureControl: requiresTemperatureControl,
		hazardousMaterial:          hazardousMaterial,
		specialHandling:            specialHandling,

		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterCargoCommand) CargoID() kernel.UUID {
	return c.cargoID
}

func (c RegisterCargoCommand) Name() string {
	return c.name
}

func (c RegisterCargoCommand) CargoType() string {
	return c.cargoType
}

func (c RegisterCargoCommand) Weight() float64 {
	return c.weight
}

func (c RegisterCargoCommand) Volume() float64 {
	return c.volume
}

func (c RegisterCargoCommand) Status() cargo.Status {
	return c.status
}

func (c RegisterCargoCommand) RequiresTemperatureControl() bool {
	return c.requiresTemperatureControl
}

func (c RegisterCargoCommand) HazardousMaterial() bool {
	return c.hazardousMaterial
}

func (c RegisterCargoCommand) SpecialHandling() []string {
	return c.specialHandling
}

// Validate ensures the command was created through the constructor.
func (c RegisterCargoCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCargoCommandIsNotConstructed)
}
