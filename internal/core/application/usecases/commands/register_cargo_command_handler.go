package commands

import (
	"context"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/cargo"
)

// RegisterCargoCommandHandler upserts a cargo snapshot. Registering the same
// cargo id again overwrites the stored snapshot in a single statement, so
// replays and concurrent registrations of the warehouse feed are harmless.
type RegisterCargoCommandHandler struct {
	uowFactory UoWFactory
}

// NewRegisterCargoCommandHandler creates a handler for cargo snapshot
// registration.
func NewRegisterCargoCommandHandler(uowFactory UoWFactory) RegisterCargoCommandHandler {
	return RegisterCargoCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the cargo snapshot, inserting or overwriting as needed.
func (h RegisterCargoCommandHandler) Handle(ctx context.Context, command RegisterCargoCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	snapshot := cargo.Cargo{
		ID:                         command.cargoID,
		Name:                       command.name,
		CargoType:                  command.cargoType,
		Weight:                     command.weight,
		Volume:                     command.volume,
		Status:                     command.status,
		RequiresTemperatureControl: command.requiresTemperatureControl,
		HazardousMaterial:          command.hazardousMaterial,
		SpecialHandling:            command.specialHandling,
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.CargoRepository().Upsert(ctx, snapshot); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
