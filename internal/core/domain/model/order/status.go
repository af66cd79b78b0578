package order

import (
	"errors"
	"fmt"

	"github.com/SlinkierSwine/cargo-track/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel for illegal order status changes.
// Use errors.Is against it; the concrete error is an *InvalidTransitionError
// carrying both endpoints of the rejected edge.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a status change that is not an edge of the
// order lifecycle graph. Requesting the current status again is also rejected.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of a shipping order.
//
// State transitions:
//
//	Pending ──> Assigned ──> InTransit ──> Delivered
//	   │            │            │
//	   └────────────┴────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Every other edge is rejected with
// ErrInvalidTransition.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order waits for a vehicle and driver.
	Pending

	// Assigned indicates a vehicle and driver have been committed to the order.
	Assigned

	// InTransit indicates the cargo has been picked up and is on its way.
	InTransit

	// Delivered is the successful terminal state.
	Delivered

	// Cancelled is the unsuccessful terminal state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Assigned:  "assigned",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// allowedTransitions is the authoritative transition table. A status missing
// from a target list cannot be reached from that source, terminal states have
// empty lists.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Assigned, Cancelled},
		Assigned:  {InTransit, Cancelled},
		InTransit: {Delivered, Cancelled},
		Delivered: {},
		Cancelled: {},
	}
}

// StatusFromString parses the wire/persistence form of a status
// (e.g. "in_transit"). Unrecognized input yields an errs.ValueIsInvalidError.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// String returns the lower-case snake form used on the wire and in storage.
// Implements fmt.Stringer; safe on any value, invalid ones print "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the value is one of the defined statuses.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := allowedTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the edge s -> next exists in the
// transition table.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns the next status if the edge is legal, or an
// *InvalidTransitionError otherwise. The receiver is never mutated.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(next) {
		return Unknown, &InvalidTransitionError{From: s, To: next}
	}

	return next, nil
}

// ValidateVehicleAssignment checks the consistency rule between status and
// vehicle/driver assignment: orders carry a vehicle and driver exactly in the
// Assigned, InTransit and Delivered statuses.
func (s Status) ValidateVehicleAssignment(hasVehicle bool) error {
	requiresVehicle := s == Assigned || s == InTransit || s == Delivered

	if requiresVehicle && !hasVehicle {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order must have a vehicle and driver assigned", s))
	}

	if !requiresVehicle && hasVehicle {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order must not have a vehicle or driver assigned", s))
	}

	return nil
}
