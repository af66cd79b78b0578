package commands

import (
	"context"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/events"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/cargo"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/order"
	"github.com/SlinkierSwine/cargo-track/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies a lifecycle transition, syncs the
// linked cargo status to the warehouse, and publishes order_status_updated.
// The transition table in the order aggregate decides legality; the handler
// only orchestrates.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	warehouse  ports.WarehouseClient
	publisher  ports.EventPublisher
}

// NewChangeOrderStatusCommandHandler creates a handler for status changes.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	warehouse ports.WarehouseClient,
	publisher ports.EventPublisher,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		warehouse:  warehouse,
		publisher:  publisher,
	}
}

// Handle moves the order to the requested status. The cargo sync and the
// event go out after the commit; a failure there is returned to the caller
// but the transition itself stands.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.OrderRepository().Get(ctx, command.orderID)
	if err != nil {
		return err
	}

	if err = target.ChangeStatus(command.status); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if command.cargoID != nil {
		if cargoStatus, ok := cargoStatusFor(command.status); ok {
			if err = h.warehouse.UpdateCargoStatus(ctx, *command.cargoID, cargoStatus); err != nil {
				return err
			}
		}
	}

	payload := events.OrderStatusUpdatedEvent{
		Meta:      events.NewMeta(events.SourceOrders),
		OrderID:   target.ID().String(),
		Status:    target.Status().String(),
		UpdatedAt: target.UpdatedAt(),
	}

	return h.publisher.Publish(ctx, events.OrderStatusUpdated, payload)
}

// cargoStatusFor maps an order transition to the warehouse-side cargo status
// it implies. Only movement-related transitions have one.
func cargoStatusFor(status order.Status) (cargo.Status, bool) {
	switch status {
	case order.InTransit:
		return cargo.StatusShipped, true
	case order.Delivered:
		return cargo.StatusDelivered, true
	default:
		return "", false
	}
}
