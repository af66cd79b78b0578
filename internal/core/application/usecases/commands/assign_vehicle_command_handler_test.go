package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/core/application/usecases/commands"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/fleet"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/order"
	"github.com/SlinkierSwine/cargo-track/internal/core/ports"
	"github.com/SlinkierSwine/cargo-track/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAssignOrderRepository struct{ mock.Mock }

func (m *MockAssignOrderRepository) Add(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}
func (m *MockAssignOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockAssignOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockAssignOrderRepository) GetAllInPendingStatus(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockAssignUoW struct{ mock.Mock }

func (m *MockAssignUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockAssignUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockAssignUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssignUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockAssignUoWFactory struct{ mock.Mock }

func (m *MockAssignUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockFleetClient struct{ mock.Mock }

func (m *MockFleetClient) GetVehicle(ctx context.Context, id kernel.UUID) (fleet.Vehicle, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(fleet.Vehicle), args.Error(1)
}
func (m *MockFleetClient) GetDriver(ctx context.Context, id kernel.UUID) (fleet.Driver, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(fleet.Driver), args.Error(1)
}
func (m *MockFleetClient) GetAvailableDrivers(_ context.Context) ([]fleet.Driver, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockFleetClient) GetAvailableVehicles(_ context.Context) ([]fleet.Vehicle, error) {
	return nil, errors.New("not implemented in mock")
}

func pendingOrder(t *testing.T, id kernel.UUID, weight, volume float64) *order.Order {
	t.Helper()
	now := time.Now().UTC()
	o, err := order.RestoreOrder(
		id,
		"Ivan Petrov", "ivan@example.com", "+10000000001",
		"12 Dock Rd", "7 Market Sq",
		"general", weight, volume,
		order.Pending, nil, nil, "",
		now, now,
	)
	require.NoError(t, err)
	return o
}

func activeVehicle(id kernel.UUID) fleet.Vehicle {
	return fleet.Vehicle{
		ID:             id,
		LicensePlate:   "AB123CD",
		CapacityWeight: 20000,
		CapacityVolume: 80,
		Status:         fleet.VehicleStatusActive,
	}
}

func activeDriver(id kernel.UUID) fleet.Driver {
	expiry := time.Now().UTC().Add(365 * 24 * time.Hour)
	return fleet.Driver{
		ID:                       id,
		FirstName:                "Anna",
		LastName:                 "Smith",
		Status:                   fleet.DriverStatusActive,
		LicenseExpiry:            expiry,
		MedicalCertificateExpiry: expiry,
	}
}

type assignFixture struct {
	cmd     commands.AssignVehicleCommand
	repo    *MockAssignOrderRepository
	uow     *MockAssignUoW
	factory *MockAssignUoWFactory
	client  *MockFleetClient
	handler commands.AssignVehicleCommandHandler
}

func newAssignFixture(t *testing.T) assignFixture {
	t.Helper()
	cmd, err := commands.NewAssignVehicleCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockAssignOrderRepository)
	uow := new(MockAssignUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow)

	client := new(MockFleetClient)

	return assignFixture{
		cmd:     cmd,
		repo:    repo,
		uow:     uow,
		factory: factory,
		client:  client,
		handler: commands.NewAssignVehicleCommandHandler(factory, client),
	}
}

func requireAssignmentReason(t *testing.T, err error, reason commands.AssignmentReason) {
	t.Helper()
	require.ErrorIs(t, err, commands.ErrAssignment)
	var assignErr *commands.AssignmentError
	require.ErrorAs(t, err, &assignErr)
	require.Equal(t, reason, assignErr.Reason)
}

func TestAssignVehicleCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)

	target := pendingOrder(t, f.cmd.OrderID(), 100, 2)
	f.repo.On("Get", ctx, f.cmd.OrderID()).Return(target, nil).Once()
	f.client.On("GetVehicle", ctx, f.cmd.VehicleID()).Return(activeVehicle(f.cmd.VehicleID()), nil).Once()
	f.client.On("GetDriver", ctx, f.cmd.DriverID()).Return(activeDriver(f.cmd.DriverID()), nil).Once()
	f.repo.On("Update", ctx, target).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	err := f.handler.Handle(ctx, f.cmd)
	require.NoError(t, err)

	require.Equal(t, order.Assigned, target.Status())
	require.NotNil(t, target.VehicleID())
	require.NotNil(t, target.DriverID())
	f.repo.AssertExpectations(t)
	f.client.AssertExpectations(t)
}

func TestAssignVehicleCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)

	f.repo.On("Get", ctx, f.cmd.OrderID()).
		Return(nil, errs.NewObjectNotFoundError("orderID", f.cmd.OrderID())).Once()

	err := f.handler.Handle(ctx, f.cmd)
	requireAssignmentReason(t, err, commands.ReasonOrderNotFound)
}

func TestAssignVehicleCommandHandler_Handle_OrderCancelled(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)

	target := pendingOrder(t, f.cmd.OrderID(), 100, 2)
	require.NoError(t, target.ChangeStatus(order.Cancelled))
	f.repo.On("Get", ctx, f.cmd.OrderID()).Return(target, nil).Once()

	err := f.handler.Handle(ctx, f.cmd)
	requireAssignmentReason(t, err, commands.ReasonOrderCancelled)
}

func TestAssignVehicleCommandHandler_Handle_VehicleNotFound(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)

	f.repo.On("Get", ctx, f.cmd.OrderID()).Return(pendingOrder(t, f.cmd.OrderID(), 100, 2), nil).Once()
	f.client.On("GetVehicle", ctx, f.cmd.VehicleID()).
		Return(fleet.Vehicle{}, errs.NewObjectNotFoundError("vehicleID", f.cmd.VehicleID())).Once()

	err := f.handler.Handle(ctx, f.cmd)
	requireAssignmentReason(t, err, commands.ReasonVehicleNotFound)
}

func TestAssignVehicleCommandHandler_Handle_VehicleInMaintenance(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)

	vehicle := activeVehicle(f.cmd.VehicleID())
	vehicle.Status = fleet.VehicleStatusMaintenance

	f.repo.On("Get", ctx, f.cmd.OrderID()).Return(pendingOrder(t, f.cmd.OrderID(), 100, 2), nil).Once()
	f.client.On("GetVehicle", ctx, f.cmd.VehicleID()).Return(vehicle, nil).Once()

	err := f.handler.Handle(ctx, f.cmd)
	requireAssignmentReason(t, err, commands.ReasonVehicleUnavailable)
}

func TestAssignVehicleCommandHandler_Handle_DriverNotFound(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)

	f.repo.On("Get", ctx, f.cmd.OrderID()).Return(pendingOrder(t, f.cmd.OrderID(), 100, 2), nil).Once()
	f.client.On("GetVehicle", ctx, f.cmd.VehicleID()).Return(activeVehicle(f.cmd.VehicleID()), nil).Once()
	f.client.On("GetDriver", ctx, f.cmd.DriverID()).
		Return(fleet.Driver{}, errs.NewObjectNotFoundError("driverID", f.cmd.DriverID())).Once()

	err := f.handler.Handle(ctx, f.cmd)
	requireAssignmentReason(t, err, commands.ReasonDriverNotFound)
}

func TestAssignVehicleCommandHandler_Handle_DriverOnLeave(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)

	driver := activeDriver(f.cmd.DriverID())
	driver.Status = fleet.DriverStatusOnLeave

	f.repo.On("Get", ctx, f.cmd.OrderID()).Return(pendingOrder(t, f.cmd.OrderID(), 100, 2), nil).Once()
	f.client.On("GetVehicle", ctx, f.cmd.VehicleID()).Return(activeVehicle(f.cmd.VehicleID()), nil).Once()
	f.client.On("GetDriver", ctx, f.cmd.DriverID()).Return(driver, nil).Once()

	err := f.handler.Handle(ctx, f.cmd)
	requireAssignmentReason(t, err, commands.ReasonDriverUnavailable)
}

func TestAssignVehicleCommandHandler_Handle_LicenseExpired(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)

	driver := activeDriver(f.cmd.DriverID())
	driver.LicenseExpiry = time.Now().UTC().Add(-24 * time.Hour)

	f.repo.On("Get", ctx, f.cmd.OrderID()).Return(pendingOrder(t, f.cmd.OrderID(), 100, 2), nil).Once()
	f.client.On("GetVehicle", ctx, f.cmd.VehicleID()).Return(activeVehicle(f.cmd.VehicleID()), nil).Once()
	f.client.On("GetDriver", ctx, f.cmd.DriverID()).Return(driver, nil).Once()

	err := f.handler.Handle(ctx, f.cmd)
	requireAssignmentReason(t, err, commands.ReasonLicenseExpired)
}

func TestAssignVehicleCommandHandler_Handle_MedicalCertificateExpired(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)

	driver := activeDriver(f.cmd.DriverID())
	driver.MedicalCertificateExpiry = time.Now().UTC().Add(-time.Hour)

	f.repo.On("Get", ctx, f.cmd.OrderID()).Return(pendingOrder(t, f.cmd.OrderID(), 100, 2), nil).Once()
	f.client.On("GetVehicle", ctx, f.cmd.VehicleID()).Return(activeVehicle(f.cmd.VehicleID()), nil).Once()
	f.client.On("GetDriver", ctx, f.cmd.DriverID()).Return(driver, nil).Once()

	err := f.handler.Handle(ctx, f.cmd)
	requireAssignmentReason(t, err, commands.ReasonMedicalCertificateExpired)
}

func TestAssignVehicleCommandHandler_Handle_InsufficientCapacity(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)

	vehicle := activeVehicle(f.cmd.VehicleID())
	vehicle.CapacityWeight = 50

	f.repo.On("Get", ctx, f.cmd.OrderID()).Return(pendingOrder(t, f.cmd.OrderID(), 100, 2), nil).Once()
	f.client.On("GetVehicle", ctx, f.cmd.VehicleID()).Return(vehicle, nil).Once()
	f.client.On("GetDriver", ctx, f.cmd.DriverID()).Return(activeDriver(f.cmd.DriverID()), nil).Once()

	err := f.handler.Handle(ctx, f.cmd)
	requireAssignmentReason(t, err, commands.ReasonInsufficientCapacity)
}

func TestAssignVehicleCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)

	target := pendingOrder(t, f.cmd.OrderID(), 100, 2)
	require.NoError(t, target.Assign(kernel.NewUUID(), kernel.NewUUID()))
	previousVehicle := *target.VehicleID()

	f.repo.On("Get", ctx, f.cmd.OrderID()).Return(target, nil).Once()
	f.client.On("GetVehicle", ctx, f.cmd.VehicleID()).Return(activeVehicle(f.cmd.VehicleID()), nil).Once()
	f.client.On("GetDriver", ctx, f.cmd.DriverID()).Return(activeDriver(f.cmd.DriverID()), nil).Once()

	err := f.handler.Handle(ctx, f.cmd)
	require.ErrorIs(t, err, order.ErrInvalidTransition)

	// the stored assignment is untouched
	require.True(t, previousVehicle.IsEqual(*target.VehicleID()))
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
