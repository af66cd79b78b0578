package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/fleet"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/order"
	"github.com/SlinkierSwine/cargo-track/internal/core/ports"
	"github.com/SlinkierSwine/cargo-track/internal/pkg/errs"
)

// AssignVehicleCommandHandler verifies every assignment precondition against
// live fleet snapshots and then moves the order to assigned inside one
// transaction. Preconditions are checked in a fixed order and the first
// failure wins; the resulting *AssignmentError names it.
//
// The handler publishes nothing: in the choreography the fleet service's
// vehicle_assigned event is the announcement, and this handler runs as its
// consumer (or behind the manual endpoint, which needs no event at all).
type AssignVehicleCommandHandler struct {
	uowFactory  OrderUoWFactory
	fleetClient ports.FleetClient
}

// NewAssignVehicleCommandHandler creates a handler for vehicle assignment.
func NewAssignVehicleCommandHandler(
	uowFactory OrderUoWFactory,
	fleetClient ports.FleetClient,
) AssignVehicleCommandHandler {
	return AssignVehicleCommandHandler{
		uowFactory:  uowFactory,
		fleetClient: fleetClient,
	}
}

// Handle checks the preconditions and assigns the vehicle and driver.
// Assigning an already-assigned order fails on the status transition and the
// stored assignment is left untouched, which makes redelivery of the same
// vehicle_assigned event harmless.
func (h AssignVehicleCommandHandler) Handle(ctx context.Context, command AssignVehicleCommand) error {
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
		if errors.Is(err, errs.ErrObjectNotFound) {
			return &AssignmentError{Reason: ReasonOrderNotFound, Cause: err}
		}
		return err
	}

	if target.Status() == order.Cancelled {
		return &AssignmentError{Reason: ReasonOrderCancelled}
	}

	vehicle, err := h.fleetClient.GetVehicle(ctx, command.vehicleID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return &AssignmentError{Reason: ReasonVehicleNotFound, Cause: err}
		}
		return err
	}
	if !vehicle.IsAvailable() {
		return &AssignmentError{
			Reason: ReasonVehicleUnavailable,
			Cause:  fmt.Errorf("vehicle is in %s status", vehicle.Status),
		}
	}

	now := time.Now().UTC()

	driver, err := h.fleetClient.GetDriver(ctx, command.driverID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return &AssignmentError{Reason: ReasonDriverNotFound, Cause: err}
		}
		return err
	}
	if driver.Status != fleet.DriverStatusActive {
		return &AssignmentError{
			Reason: ReasonDriverUnavailable,
			Cause:  fmt.Errorf("driver is in %s status", driver.Status),
		}
	}
	if !driver.HasValidLicense(now) {
		return &AssignmentError{
			Reason: ReasonLicenseExpired,
			Cause:  fmt.Errorf("license expired at %s", driver.LicenseExpiry.Format(time.RFC3339)),
		}
	}
	if !driver.HasValidMedicalCertificate(now) {
		return &AssignmentError{
			Reason: ReasonMedicalCertificateExpired,
			Cause:  fmt.Errorf("medical certificate expired at %s", driver.MedicalCertificateExpiry.Format(time.RFC3339)),
		}
	}

	if !vehicle.CanCarry(target.CargoWeight(), target.CargoVolume()) {
		return &AssignmentError{
			Reason: ReasonInsufficientCapacity,
			Cause: fmt.Errorf("cargo %g kg / %g m3 exceeds vehicle capacity %g kg / %g m3",
				target.CargoWeight(), target.CargoVolume(),
				vehicle.CapacityWeight, vehicle.CapacityVolume),
		}
	}

	if err = target.Assign(command.vehicleID, command.driverID); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
