package queries

import (
	"context"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/services"
	"github.com/SlinkierSwine/cargo-track/internal/core/ports"
)

// CheckCompatibilityQueryHandler fetches the cargo snapshot from the local
// warehouse store and the vehicle snapshot from the fleet service, then runs
// the pure compatibility check over them.
type CheckCompatibilityQueryHandler struct {
	cargoRepo   ports.CargoRepository
	fleetClient ports.FleetClient
	checker     services.CompatibilityChecker
}

// NewCheckCompatibilityQueryHandler creates a handler for compatibility
// checks.
func NewCheckCompatibilityQueryHandler(
	cargoRepo ports.CargoRepository,
	fleetClient ports.FleetClient,
) CheckCompatibilityQueryHandler {
	return CheckCompatibilityQueryHandler{
		cargoRepo:   cargoRepo,
		fleetClient: fleetClient,
		checker:     services.NewCompatibilityChecker(),
	}
}

// Handle returns the full compatibility report for the cargo/vehicle pair.
// Lookup failures (unknown cargo or vehicle) surface as
// errs.ObjectNotFoundError.
func (h CheckCompatibilityQueryHandler) Handle(
	ctx context.Context,
	query CheckCompatibilityQuery,
) (services.CompatibilityReport, error) {
	if err := query.Validate(); err != nil {
		return services.CompatibilityReport{}, err
	}

	cargoItem, err := h.cargoRepo.Get(ctx, query.cargoID)
	if err != nil {
		return services.CompatibilityReport{}, err
	}

	vehicle, err := h.fleetClient.GetVehicle(ctx, query.vehicleID)
	if err != nil {
		return services.CompatibilityReport{}, err
	}

	return h.checker.Check(cargoItem, vehicle), nil
}
