// Package events defines the typed payloads exchanged between the orders,
// fleet and warehouse services, and the envelope that wraps them on the wire.
//
// Every message published to the bus is the JSON encoding of an Envelope:
//
//	{"event_type": "...", "event_data": { ... }}
//
// event_data always carries event_id, timestamp and source_service alongside
// the event-specific fields. Events are immutable once published and may be
// delivered more than once; consumers deduplicate on event_id or gate on
// current state.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types routed on the bus. The routing key of a message equals its
// event type, and each type gets its own durable queue.
const (
	OrderCreated       = "order_created"
	VehicleAssigned    = "vehicle_assigned"
	NoVehicleAvailable = "no_vehicle_available"
	OrderStatusUpdated = "order_status_updated"
)

// Source services stamped on every event.
const (
	SourceOrders    = "orders"
	SourceFleet     = "fleet"
	SourceWarehouse = "warehouse"
)

// Envelope is the wire wrapper for every published event.
type Envelope struct {
	EventType string          `json:"event_type"`
	EventData json.RawMessage `json:"event_data"`
}

// Meta carries the fields common to all event payloads.
type Meta struct {
	EventID       string    `json:"event_id"`
	Timestamp     time.Time `json:"timestamp"`
	SourceService string    `json:"source_service"`
}

// NewMeta stamps a fresh event id and UTC timestamp for the given source
// service.
func NewMeta(sourceService string) Meta {
	return Meta{
		EventID:       uuid.NewString(),
		Timestamp:     time.Now().UTC(),
		SourceService: sourceService,
	}
}

// OrderCreatedEvent is published by the orders service when a new order
// enters the system in pending status.
type OrderCreatedEvent struct {
	Meta

	OrderID         string  `json:"order_id"`
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	PickupAddress   string  `json:"pickup_address"`
	DeliveryAddress string  `json:"delivery_address"`
	CargoType       string  `json:"cargo_type"`
	CargoWeight     float64 `json:"cargo_weight"`
	CargoVolume     float64 `json:"cargo_volume"`
	Notes           string  `json:"notes,omitempty"`
}

// VehicleAssignedEvent is published by the fleet service after greedy
// selection committed a vehicle and driver to an order.
type VehicleAssignedEvent struct {
	Meta

	OrderID               string     `json:"order_id"`
	VehicleID             string     `json:"vehicle_id"`
	DriverID              string     `json:"driver_id"`
	VehicleLicensePlate   string     `json:"vehicle_license_plate"`
	DriverName            string     `json:"driver_name"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`
}

// NoVehicleAvailableEvent is published by the fleet service when selection
// failed. Reason is one of no_drivers, no_vehicles, capacity_mismatch.
type NoVehicleAvailableEvent struct {
	Meta

	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// OrderStatusUpdatedEvent is published by the orders service whenever an
// order moves along its lifecycle.
type OrderStatusUpdatedEvent struct {
	Meta

	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}
