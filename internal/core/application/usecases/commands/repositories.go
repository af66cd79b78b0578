// Package commands contains the business operations that modify system
// state. Every command follows the same pattern: a constructor-guarded
// command object, a handler owning orchestration, and a unit of work drawn
// from a factory per invocation.
package commands

import (
	"context"

	"github.com/SlinkierSwine/cargo-track/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler actually needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CargoRepoFactory provides access to the cargo repository within a transaction.
	CargoRepoFactory interface {
		CargoRepository() ports.CargoRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions across order and cargo records.
	UoW interface {
		TxManager
		OrderRepoFactory
		CargoRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-record operations.
	UoWFactory interface {
		Create() UoW
	}
)
