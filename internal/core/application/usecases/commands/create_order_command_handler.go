package commands

import (
	"context"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/events"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/order"
	"github.com/SlinkierSwine/cargo-track/internal/core/ports"
)

// CreateOrderCommandHandler persists a new pending order and announces it on
// the bus. The order_created event is what triggers the fleet service's
// assignment saga; publishing happens after the commit, so a publish failure
// leaves a persisted order with no announcement; the retry job picks such
// orders up again.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle builds the order aggregate, persists it and publishes order_created.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		command.orderID,
		command.customerName,
		command.customerEmail,
		command.customerPhone,
		command.pickupAddress,
		command.deliveryAddress,
		command.cargoType,
		command.cargoWeight,
		command.cargoVolume,
		command.notes,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := events.OrderCreatedEvent{
		Meta:            events.NewMeta(events.SourceOrders),
		OrderID:         newOrder.ID().String(),
		CustomerName:    newOrder.CustomerName(),
		CustomerEmail:   newOrder.CustomerEmail(),
		PickupAddress:   newOrder.PickupAddress(),
		DeliveryAddress: newOrder.DeliveryAddress(),
		CargoType:       newOrder.CargoType(),
		CargoWeight:     newOrder.CargoWeight(),
		CargoVolume:     newOrder.CargoVolume(),
		Notes:           newOrder.Notes(),
	}

	return h.publisher.Publish(ctx, events.OrderCreated, payload)
}
