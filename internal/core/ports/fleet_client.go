package ports

import (
	"context"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/cargo"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/fleet"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
)

// FleetClient is the synchronous lookup interface onto the fleet service.
// Implementations return point-in-time snapshots; callers must treat them as
// stale the moment they arrive.
type FleetClient interface {
	// GetVehicle fetches a vehicle snapshot by id.
	// Returns errs.ObjectNotFoundError when the fleet service has no such vehicle.
	GetVehicle(ctx context.Context, id kernel.UUID) (fleet.Vehicle, error)

	// GetDriver fetches a driver snapshot by id.
	// Returns errs.ObjectNotFoundError when the fleet service has no such driver.
	GetDriver(ctx context.Context, id kernel.UUID) (fleet.Driver, error)

	// GetAvailableDrivers lists drivers eligible for assignment.
	GetAvailableDrivers(ctx context.Context) ([]fleet.Driver, error)

	// GetAvailableVehicles lists vehicles in active status.
	GetAvailableVehicles(ctx context.Context) ([]fleet.Vehicle, error)
}

// WarehouseClient is the synchronous lookup interface onto the warehouse
// service, used for cargo snapshots and status sync.
type WarehouseClient interface {
	// GetCargo fetches a cargo snapshot by id.
	// Returns errs.ObjectNotFoundError when the warehouse has no such cargo.
	GetCargo(ctx context.Context, id kernel.UUID) (cargo.Cargo, error)

	// UpdateCargoStatus pushes a cargo status change to the warehouse.
	UpdateCargoStatus(ctx context.Context, id kernel.UUID, status cargo.Status) error
}
