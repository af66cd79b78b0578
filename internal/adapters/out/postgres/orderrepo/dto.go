// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between the domain model and its relational
// representation.
package orderrepo

import (
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and vehicle assignment are indexed for the pending-orders scan and
// the uncompleted-orders projection.
type OrderDTO struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	PickupAddress   string
	DeliveryAddress string

	CargoType   string
	CargoWeight float64
	CargoVolume float64

	Status    int        `gorm:"index"`
	VehicleID *uuid.UUID `gorm:"type:uuid;index"`
	DriverID  *uuid.UUID `gorm:"type:uuid"`

	EstimatedCost *float64
	ActualCost    *float64
	PickupDate    *time.Time
	DeliveryDate  *time.Time
	Notes         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerName:    aggregate.CustomerName(),
		CustomerEmail:   aggregate.CustomerEmail(),
		CustomerPhone:   aggregate.CustomerPhone(),
		PickupAddress:   aggregate.PickupAddress(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		CargoType:       aggregate.CargoType(),
		CargoWeight:     aggregate.CargoWeight(),
		CargoVolume:     aggregate.CargoVolume(),
		Status:          int(aggregate.Status()),
		VehicleID:       optionalBytes(aggregate.VehicleID()),
		DriverID:        optionalBytes(aggregate.DriverID()),
		EstimatedCost:   aggregate.EstimatedCost(),
		ActualCost:      aggregate.ActualCost(),
		PickupDate:      aggregate.PickupDate(),
		DeliveryDate:    aggregate.DeliveryDate(),
		Notes:           aggregate.Notes(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
	}
}

// toDomain reconstructs the aggregate from a database row using RestoreOrder,
// which re-validates the status/assignment invariant on the way in.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vehicleID, err := optionalUUID(dto.VehicleID)
	if err != nil {
		return nil, err
	}
	driverID, err := optionalUUID(dto.DriverID)
	if err != nil {
		return nil, err
	}

	aggregate, err := order.RestoreOrder(
		id,
		dto.CustomerName, dto.CustomerEmail, dto.CustomerPhone,
		dto.PickupAddress, dto.DeliveryAddress,
		dto.CargoType, dto.CargoWeight, dto.CargoVolume,
		order.Status(dto.Status),
		vehicleID, driverID,
		dto.Notes,
		dto.CreatedAt, dto.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	aggregate.RestoreDetails(dto.EstimatedCost, dto.ActualCost, dto.PickupDate, dto.DeliveryDate)
	return aggregate, nil
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
