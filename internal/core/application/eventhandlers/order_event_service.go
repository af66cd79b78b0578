// Package eventhandlers wires the saga choreography: each service reacts to
// the events of the others without any central coordinator. Handlers are
// invoked by the bus with at-least-once delivery, so every one of them is
// written to make redelivery of an already-applied event a no-op.
package eventhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/SlinkierSwine/cargo-track/internal/core/application/usecases/commands"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/events"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/order"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/services"
	"github.com/SlinkierSwine/cargo-track/internal/core/ports"
)

// OrderEventService reacts to fleet events on behalf of the orders service:
// vehicle_assigned commits the selected pair to the order, and
// no_vehicle_available cancels the order or leaves it waiting depending on
// the reason.
type OrderEventService struct {
	assignHandler commands.AssignVehicleCommandHandler
	uowFactory    commands.OrderUoWFactory
	publisher     ports.EventPublisher
	logger        *slog.Logger
}

// NewOrderEventService creates the orders-side saga handlers.
func NewOrderEventService(
	assignHandler commands.AssignVehicleCommandHandler,
	uowFactory commands.OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *OrderEventService {
	return &OrderEventService{
		assignHandler: assignHandler,
		uowFactory:    uowFactory,
		publisher:     publisher,
		logger:        logger.With("component", "order_event_service"),
	}
}

// RegisterHandlers binds the orders-side handlers to their event types.
func (s *OrderEventService) RegisterHandlers(subscriber ports.EventSubscriber) error {
	if err := subscriber.Subscribe(events.VehicleAssigned, s.HandleVehicleAssigned); err != nil {
		return err
	}
	return subscriber.Subscribe(events.NoVehicleAvailable, s.HandleNoVehicleAvailable)
}

// HandleVehicleAssigned applies the fleet's selection to the order. Business
// rejections (order no longer pending, precondition broken against live
// snapshots) are final: the handler logs them and acks, because redelivery
// cannot fix them. Infrastructure errors are returned so the message is
// redelivered.
func (s *OrderEventService) HandleVehicleAssigned(ctx context.Context, eventData []byte) error {
	var event events.VehicleAssignedEvent
	if err := json.Unmarshal(eventData, &event); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(event.OrderID)
	if err != nil {
		return err
	}
	vehicleID, err := kernel.UUIDFromString(event.VehicleID)
	if err != nil {
		return err
	}
	driverID, err := kernel.UUIDFromString(event.DriverID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignVehicleCommand(orderID, vehicleID, driverID)
	if err != nil {
		return err
	}

	err = s.assignHandler.Handle(ctx, cmd)
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "Order assigned",
			"order_id", event.OrderID, "vehicle_id", event.VehicleID, "driver_id", event.DriverID)
		return nil
	case errors.Is(err, order.ErrInvalidTransition):
		// already applied, or the order moved on; duplicate deliveries land here
		s.logger.InfoContext(ctx, "Assignment skipped, order is not pending",
			"order_id", event.OrderID, "error", err)
		return nil
	case errors.Is(err, commands.ErrAssignment):
		s.logger.WarnContext(ctx, "Assignment rejected",
			"order_id", event.OrderID, "error", err)
		return nil
	default:
		return err
	}
}

// HandleNoVehicleAvailable finishes the saga's failure branch. no_drivers and
// no_vehicles cancel the order; capacity_mismatch leaves it pending for the
// retry job to pick up once the fleet changes. Only pending orders are
// touched.
func (s *OrderEventService) HandleNoVehicleAvailable(ctx context.Context, eventData []byte) error {
	var event events.NoVehicleAvailableEvent
	if err := json.Unmarshal(eventData, &event); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(event.OrderID)
	if err != nil {
		return err
	}

	if services.NoVehicleReason(event.Reason) == services.ReasonCapacityMismatch {
		s.logger.InfoContext(ctx, "Order left pending after capacity mismatch",
			"order_id", event.OrderID)
		return nil
	}

	uow := s.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	if target.Status() != order.Pending {
		s.logger.InfoContext(ctx, "Cancellation skipped, order is not pending",
			"order_id", event.OrderID, "status", target.Status().String())
		return nil
	}

	if err = target.ChangeStatus(order.Cancelled); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Order cancelled, fleet has no resources",
		"order_id", event.OrderID, "reason", event.Reason)

	payload := events.OrderStatusUpdatedEvent{
		Meta:      events.NewMeta(events.SourceOrders),
		OrderID:   target.ID().String(),
		Status:    target.Status().String(),
		UpdatedAt: target.UpdatedAt(),
	}
	return s.publisher.Publish(ctx, events.OrderStatusUpdated, payload)
}
