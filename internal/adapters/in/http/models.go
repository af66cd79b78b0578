package http

import "time"

// Error is the common error response body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder is the request body for creating an order.
type NewOrder struct {
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerPhone   string  `json:"customer_phone"`
	PickupAddress   string  `json:"pickup_address"`
	DeliveryAddress string  `json:"delivery_address"`
	CargoType       string  `json:"cargo_type"`
	CargoWeight     float64 `json:"cargo_weight"`
	CargoVolume     float64 `json:"cargo_volume"`
	Notes           string  `json:"notes,omitempty"`
}

// OrderCreated is returned from order creation; assignment continues
// asynchronously.
type OrderCreated struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// AssignVehicle is the request body for manually assigning a vehicle and
// driver to an order.
type AssignVehicle struct {
	VehicleID string `json:"vehicle_id"`
	DriverID  string `json:"driver_id"`
}

// UpdateOrderStatus is the request body for a lifecycle transition. CargoID
// optionally links the transition to a warehouse cargo status sync.
type UpdateOrderStatus struct {
	Status  string `json:"status"`
	CargoID string `json:"cargo_id,omitempty"`
}

// Order is one row of the uncompleted-orders listing.
type Order struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	CargoWeight  float64   `json:"cargo_weight"`
	CargoVolume  float64   `json:"cargo_volume"`
	VehicleID    *string   `json:"vehicle_id,omitempty"`
	DriverID     *string   `json:"driver_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterCargo is the request body for upserting a cargo snapshot used by
// compatibility checks.
type RegisterCargo struct {
	ID                         string   `json:"id"`
	Name                       string   `json:"name"`
	CargoType                  string   `json:"cargo_type"`
	Weight                     float64  `json:"weight"`
	Volume                     float64  `json:"volume"`
	Status                     string   `json:"status,omitempty"`
	RequiresTemperatureControl bool     `json:"requires_temperature_control"`
	HazardousMaterial          bool     `json:"hazardous_material"`
	SpecialHandling            []string `json:"special_handling,omitempty"`
}

// CompatibilityRequest is the request body for a cargo/vehicle compatibility
// check.
type CompatibilityRequest struct {
	CargoID   string `json:"cargo_id"`
	VehicleID string `json:"vehicle_id"`
}
