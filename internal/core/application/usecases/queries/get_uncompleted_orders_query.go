// Package queries contains the read-side operations. Unlike commands they
// bypass the aggregates and repositories: handlers read projections straight
// from the database or from service clients, returning plain response
// structs.
package queries

import (
	"errors"
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/pkg/guard"
)

var ErrGetUncompletedOrdersQueryIsNotConstructed = errors.New(
	"GetUncompletedOrdersQuery must be created via NewGetUncompletedOrdersQuery constructor",
)

// GetUncompletedOrdersQuery retrieves every order that has not yet reached a
// terminal status (delivered or cancelled). Used for monitoring the active
// delivery workload.
type GetUncompletedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUncompletedOrdersQuery creates a query for non-terminal orders.
// This is a parameterless query.
func NewGetUncompletedOrdersQuery() GetUncompletedOrdersQuery {
	return GetUncompletedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUncompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUncompletedOrdersQueryIsNotConstructed)
}

// GetUncompletedOrdersQueryResponse is one row of the uncompleted-orders
// projection. VehicleID and DriverID are nil for orders still pending
// assignment.
type GetUncompletedOrdersQueryResponse struct {
	ID           kernel.UUID
	CustomerName string
	Status       string
	CargoWeight  float64
	CargoVolume  float64
	VehicleID    *kernel.UUID
	DriverID     *kernel.UUID
	CreatedAt    time.Time
}
