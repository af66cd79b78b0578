package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for a shipping order. It owns the status state
// machine and the invariant that a vehicle and driver are assigned exactly in
// the Assigned, InTransit and Delivered statuses.
//
// All mutation goes through Assign and ChangeStatus; fields are private so
// handlers cannot bypass the transition table.
type Order struct {
	id kernel.UUID

	customerName  string
	customerEmail string
	customerPhone string

	pickupAddress   string
	deliveryAddress string

	cargoType   string
	cargoWeight float64
	cargoVolume float64

	status    Status
	vehicleID *kernel.UUID
	driverID  *kernel.UUID

	estimatedCost *float64
	actualCost    *float64
	pickupDate    *time.Time
	deliveryDate  *time.Time
	notes         string

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a Pending order after validating all business invariants:
// customer contact and addresses are required, cargo weight and volume must be
// strictly positive.
func NewOrder(
	id kernel.UUID,
	customerName, customerEmail, customerPhone string,
	pickupAddress, deliveryAddress string,
	cargoType string,
	cargoWeight, cargoVolume float64,
	notes string,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		notes:         notes,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customerName, customerEmail, customerPhone),
		o.setAddresses(pickupAddress, deliveryAddress),
		o.setCargo(cargoType, cargoWeight, cargoVolume),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an aggregate from persisted state. Unlike NewOrder it
// accepts any valid status, but still enforces the status/assignment
// consistency rule.
func RestoreOrder(
	id kernel.UUID,
	customerName, customerEmail, customerPhone string,
	pickupAddress, deliveryAddress string,
	cargoType string,
	cargoWeight, cargoVolume float64,
	status Status,
	vehicleID, driverID *kernel.UUID,
	notes string,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        status,
		vehicleID:     vehicleID,
		driverID:      driverID,
		notes:         notes,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customerName, customerEmail, customerPhone),
		o.setAddresses(pickupAddress, deliveryAddress),
		o.setCargo(cargoType, cargoWeight, cargoVolume),
		status.Validate(),
		status.ValidateVehicleAssignment(vehicleID != nil && driverID != nil),
	); err != nil {
		return nil, err
	}

	if (vehicleID == nil) != (driverID == nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("assignment",
			errors.New("vehicle and driver must be assigned together"))
	}

	return o, nil
}

// RestoreDetails rehydrates the optional cost and schedule fields from
// persisted state. Unlike SetEstimatedCost and SetSchedule it does not touch
// updatedAt; repositories call it after RestoreOrder.
func (o *Order) RestoreDetails(estimatedCost, actualCost *float64, pickupDate, deliveryDate *time.Time) {
	o.estimatedCost = estimatedCost
	o.actualCost = actualCost
	o.pickupDate = pickupDate
	o.deliveryDate = deliveryDate
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID          { return o.id }
func (o *Order) CustomerName() string     { return o.customerName }
func (o *Order) CustomerEmail() string    { return o.customerEmail }
func (o *Order) CustomerPhone() string    { return o.customerPhone }
func (o *Order) PickupAddress() string    { return o.pickupAddress }
func (o *Order) DeliveryAddress() string  { return o.deliveryAddress }
func (o *Order) CargoType() string        { return o.cargoType }
func (o *Order) CargoWeight() float64     { return o.cargoWeight }
func (o *Order) CargoVolume() float64     { return o.cargoVolume }
func (o *Order) Status() Status           { return o.status }
func (o *Order) Notes() string            { return o.notes }
func (o *Order) CreatedAt() time.Time     { return o.createdAt }
func (o *Order) UpdatedAt() time.Time     { return o.updatedAt }
func (o *Order) EstimatedCost() *float64  { return o.estimatedCost }
func (o *Order) ActualCost() *float64     { return o.actualCost }
func (o *Order) PickupDate() *time.Time   { return o.pickupDate }
func (o *Order) DeliveryDate() *time.Time { return o.deliveryDate }

// VehicleID returns the assigned vehicle's ID, nil while unassigned.
func (o *Order) VehicleID() *kernel.UUID { return o.vehicleID }

// DriverID returns the assigned driver's ID, nil while unassigned.
func (o *Order) DriverID() *kernel.UUID { return o.driverID }

// Assign commits a vehicle and driver to the order and moves it to Assigned.
// Only a Pending order can be assigned; the transition table rejects
// everything else.
func (o *Order) Assign(vehicleID, driverID kernel.UUID) error {
	if err := errors.Join(vehicleID.Validate(), driverID.Validate()); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(Assigned)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.vehicleID = &vehicleID
	o.driverID = &driverID
	o.touch()
	return nil
}

// ChangeStatus moves the order along one edge of the lifecycle graph and
// refreshes updatedAt. A move to Cancelled releases the vehicle and driver so
// the assignment invariant keeps holding. Side effects (cargo status sync,
// event publication) belong to the caller.
func (o *Order) ChangeStatus(next Status) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	if newStatus == Cancelled {
		o.vehicleID = nil
		o.driverID = nil
	}

	if err := newStatus.ValidateVehicleAssignment(o.vehicleID != nil && o.driverID != nil); err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// SetEstimatedCost records the quoted cost. Must be positive.
func (o *Order) SetEstimatedCost(cost float64) error {
	if cost <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimatedCost",
			fmt.Errorf("%v is not greater than 0", cost))
	}
	o.estimatedCost = &cost
	o.touch()
	return nil
}

// SetSchedule records pickup and delivery dates.
func (o *Order) SetSchedule(pickup, delivery time.Time) {
	o.pickupDate = &pickup
	o.deliveryDate = &delivery
	o.touch()
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(name, email, phone string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	if email == "" {
		return errs.NewValueIsRequiredError("customerEmail")
	}
	if phone == "" {
		return errs.NewValueIsRequiredError("customerPhone")
	}
	o.customerName = name
	o.customerEmail = email
	o.customerPhone = phone
	return nil
}

func (o *Order) setAddresses(pickup, delivery string) error {
	if pickup == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	if delivery == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.pickupAddress = pickup
	o.deliveryAddress = delivery
	return nil
}

func (o *Order) setCargo(cargoType string, weight, volume float64) error {
	if cargoType == "" {
		return errs.NewValueIsRequiredError("cargoType")
	}
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("cargoWeight",
			fmt.Errorf("%v is not greater than 0", weight))
	}
	if volume <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("cargoVolume",
			fmt.Errorf("%v is not greater than 0", volume))
	}
	o.cargoType = cargoType
	o.cargoWeight = weight
	o.cargoVolume = volume
	return nil
}
