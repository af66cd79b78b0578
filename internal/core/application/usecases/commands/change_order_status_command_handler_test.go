package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/core/application/usecases/commands"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/events"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/cargo"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/order"
	"github.com/SlinkierSwine/cargo-track/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatusOrderRepository struct{ mock.Mock }

func (m *MockStatusOrderRepository) Add(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}
func (m *MockStatusOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockStatusOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockStatusOrderRepository) GetAllInPendingStatus(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockStatusUoW struct{ mock.Mock }

func (m *MockStatusUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockStatusUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockStatusUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatusUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockStatusUoWFactory struct{ mock.Mock }

func (m *MockStatusUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockWarehouseClient struct{ mock.Mock }

func (m *MockWarehouseClient) GetCargo(_ context.Context, _ kernel.UUID) (cargo.Cargo, error) {
	return cargo.Cargo{}, errors.New("not implemented in mock")
}
func (m *MockWarehouseClient) UpdateCargoStatus(ctx context.Context, id kernel.UUID, status cargo.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockStatusEventPublisher struct{ mock.Mock }

func (m *MockStatusEventPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}
func (m *MockStatusEventPublisher) Close() error { return nil }

func assignedOrder(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	now := time.Now().UTC()
	vehicleID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	o, err := order.RestoreOrder(
		id,
		"Ivan Petrov", "ivan@example.com", "+10000000001",
		"12 Dock Rd", "7 Market Sq",
		"general", 100, 2,
		order.Assigned, &vehicleID, &driverID, "",
		now, now,
	)
	require.NoError(t, err)
	return o
}

type statusFixture struct {
	repo      *MockStatusOrderRepository
	uow       *MockStatusUoW
	factory   *MockStatusUoWFactory
	warehouse *MockWarehouseClient
	publisher *MockStatusEventPublisher
	handler   commands.ChangeOrderStatusCommandHandler
}

func newStatusFixture(t *testing.T) statusFixture {
	t.Helper()
	repo := new(MockStatusOrderRepository)
	uow := new(MockStatusUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow)

	warehouse := new(MockWarehouseClient)
	publisher := new(MockStatusEventPublisher)

	return statusFixture{
		repo:      repo,
		uow:       uow,
		factory:   factory,
		warehouse: warehouse,
		publisher: publisher,
		handler:   commands.NewChangeOrderStatusCommandHandler(factory, warehouse, publisher),
	}
}

func TestChangeOrderStatusCommandHandler_Handle_InTransitSyncsCargo(t *testing.T) {
	ctx := t.Context()
	f := newStatusFixture(t)

	orderID := kernel.NewUUID()
	cargoID := kernel.NewUUID()
	target := assignedOrder(t, orderID)

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, order.InTransit, &cargoID)
	require.NoError(t, err)

	f.repo.On("Get", ctx, orderID).Return(target, nil).Once()
	f.repo.On("Update", ctx, target).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.warehouse.On("UpdateCargoStatus", ctx, cargoID, cargo.StatusShipped).Return(nil).Once()
	f.publisher.On("Publish", ctx, events.OrderStatusUpdated,
		mock.MatchedBy(func(p events.OrderStatusUpdatedEvent) bool {
			return p.OrderID == orderID.String() && p.Status == "in_transit"
		})).Return(nil).Once()

	require.NoError(t, f.handler.Handle(ctx, cmd))
	require.Equal(t, order.InTransit, target.Status())
	f.warehouse.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_CancelWithoutCargo(t *testing.T) {
	ctx := t.Context()
	f := newStatusFixture(t)

	orderID := kernel.NewUUID()
	target := assignedOrder(t, orderID)

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, order.Cancelled, nil)
	require.NoError(t, err)

	f.repo.On("Get", ctx, orderID).Return(target, nil).Once()
	f.repo.On("Update", ctx, target).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("Publish", ctx, events.OrderStatusUpdated, mock.Anything).Return(nil).Once()

	require.NoError(t, f.handler.Handle(ctx, cmd))
	require.Equal(t, order.Cancelled, target.Status())
	require.Nil(t, target.VehicleID())
	f.warehouse.AssertNotCalled(t, "UpdateCargoStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()
	f := newStatusFixture(t)

	orderID := kernel.NewUUID()
	target := assignedOrder(t, orderID)

	// assigned order cannot jump straight to delivered
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, order.Delivered, nil)
	require.NoError(t, err)

	f.repo.On("Get", ctx, orderID).Return(target, nil).Once()

	err = f.handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	require.Equal(t, order.Assigned, target.Status())
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_CargoSyncError(t *testing.T) {
	ctx := t.Context()
	f := newStatusFixture(t)

	orderID := kernel.NewUUID()
	cargoID := kernel.NewUUID()
	target := assignedOrder(t, orderID)

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, order.InTransit, &cargoID)
	require.NoError(t, err)

	f.repo.On("Get", ctx, orderID).Return(target, nil).Once()
	f.repo.On("Update", ctx, target).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.warehouse.On("UpdateCargoStatus", ctx, cargoID, cargo.StatusShipped).
		Return(errors.New("warehouse unreachable")).Once()

	err = f.handler.Handle(ctx, cmd)
	require.Error(t, err)
	// the transition committed before the sync failed
	require.Equal(t, order.InTransit, target.Status())
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
