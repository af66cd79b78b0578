package ports

import (
	"context"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/cargo"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
)

// CargoRepository defines the persistence contract for cargo snapshots held
// by the warehouse side of the system.
type CargoRepository interface {
	// Add persists a new cargo record.
	Add(ctx context.Context, c cargo.Cargo) error

	// Update persists changes to an existing cargo record.
	Update(ctx context.Context, c cargo.Cargo) error

	// Upsert inserts the cargo record or overwrites the stored one in a
	// single statement, so concurrent registrations of the same id cannot
	// race each other.
	Upsert(ctx context.Context, c cargo.Cargo) error

	// Get retrieves a cargo record by its identifier.
	// Returns errs.ObjectNotFoundError when no such cargo exists.
	Get(ctx context.Context, id kernel.UUID) (cargo.Cargo, error)
}
