package eventhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/events"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/services"
	"github.com/SlinkierSwine/cargo-track/internal/core/ports"
)

// ErrResourcesReserved signals that the selected vehicle or driver holds an
// active reservation from a concurrent assignment. The message is redelivered
// and selection runs again, by which time the competing assignment has either
// committed (the resources drop out of the available lists) or released.
var ErrResourcesReserved = errors.New("selected resources are reserved")

// FleetEventService reacts to order_created on behalf of the fleet service:
// it runs greedy selection over the currently available drivers and vehicles
// and answers with vehicle_assigned or no_vehicle_available.
type FleetEventService struct {
	fleetClient  ports.FleetClient
	publisher    ports.EventPublisher
	selector     services.FleetSelector
	reservations *services.ReservationRegistry
	logger       *slog.Logger
}

// NewFleetEventService creates the fleet-side saga handlers.
func NewFleetEventService(
	fleetClient ports.FleetClient,
	publisher ports.EventPublisher,
	reservations *services.ReservationRegistry,
	logger *slog.Logger,
) *FleetEventService {
	return &FleetEventService{
		fleetClient:  fleetClient,
		publisher:    publisher,
		selector:     services.NewFleetSelector(),
		reservations: reservations,
		logger:       logger.With("component", "fleet_event_service"),
	}
}

// RegisterHandlers binds the fleet-side handlers to their event types.
func (s *FleetEventService) RegisterHandlers(subscriber ports.EventSubscriber) error {
	return subscriber.Subscribe(events.OrderCreated, s.HandleOrderCreated)
}

// HandleOrderCreated selects a vehicle and driver for the new order. A failed
// selection is a final business answer and publishes no_vehicle_available; a
// failed fleet lookup is an infrastructure error and the message is
// redelivered. The selected pair is reserved before the vehicle_assigned
// event goes out, closing the window where two orders select the same
// resources.
func (s *FleetEventService) HandleOrderCreated(ctx context.Context, eventData []byte) error {
	var event events.OrderCreatedEvent
	if err := json.Unmarshal(eventData, &event); err != nil {
		return err
	}

	drivers, err := s.fleetClient.GetAvailableDrivers(ctx)
	if err != nil {
		return err
	}
	vehicles, err := s.fleetClient.GetAvailableVehicles(ctx)
	if err != nil {
		return err
	}

	vehicle, driver, err := s.selector.Select(
		drivers, vehicles,
		event.CargoWeight, event.CargoVolume,
		time.Now().UTC(),
	)
	if err != nil {
		var selectionErr *services.SelectionError
		if errors.As(err, &selectionErr) {
			return s.publishNoVehicleAvailable(ctx, event.OrderID, selectionErr.Reason)
		}
		return err
	}

	if !s.reservations.TryReserve(vehicle.ID, driver.ID) {
		s.logger.InfoContext(ctx, "Selected resources reserved by concurrent assignment",
			"order_id", event.OrderID, "vehicle_id", vehicle.ID.String(), "driver_id", driver.ID.String())
		return fmt.Errorf("%w: vehicle %s, driver %s", ErrResourcesReserved, vehicle.ID, driver.ID)
	}

	payload := events.VehicleAssignedEvent{
		Meta:                events.NewMeta(events.SourceFleet),
		OrderID:             event.OrderID,
		VehicleID:           vehicle.ID.String(),
		DriverID:            driver.ID.String(),
		VehicleLicensePlate: vehicle.LicensePlate,
		DriverName:          driver.FullName(),
	}

	if err = s.publisher.Publish(ctx, events.VehicleAssigned, payload); err != nil {
		s.reservations.Release(vehicle.ID, driver.ID)
		return err
	}

	s.logger.InfoContext(ctx, "Vehicle assigned to order",
		"order_id", event.OrderID, "vehicle_id", payload.VehicleID, "driver_id", payload.DriverID)
	return nil
}

func (s *FleetEventService) publishNoVehicleAvailable(
	ctx context.Context,
	orderID string,
	reason services.NoVehicleReason,
) error {
	s.logger.WarnContext(ctx, "No vehicle available for order",
		"order_id", orderID, "reason", string(reason))

	payload := events.NoVehicleAvailableEvent{
		Meta:    events.NewMeta(events.SourceFleet),
		OrderID: orderID,
		Reason:  string(reason),
	}
	return s.publisher.Publish(ctx, events.NoVehicleAvailable, payload)
}
