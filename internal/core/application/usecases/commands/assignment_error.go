package commands

import (
	"errors"
	"fmt"
)

// ErrAssignment is the sentinel for failed vehicle assignment preconditions.
// The concrete error is an *AssignmentError carrying the specific reason.
var ErrAssignment = errors.New("assignment failed")

// AssignmentReason identifies which precondition broke the assignment.
// Preconditions are checked in a fixed order and short-circuit on the first
// failure, so exactly one reason is ever reported.
type AssignmentReason string

const (
	ReasonOrderNotFound             AssignmentReason = "order_not_found"
	ReasonOrderCancelled            AssignmentReason = "order_cancelled"
	ReasonVehicleNotFound           AssignmentReason = "vehicle_not_found"
	ReasonVehicleUnavailable        AssignmentReason = "vehicle_unavailable"
	ReasonDriverNotFound            AssignmentReason = "driver_not_found"
	ReasonDriverUnavailable         AssignmentReason = "driver_unavailable"
	ReasonLicenseExpired            AssignmentReason = "license_expired"
	ReasonMedicalCertificateExpired AssignmentReason = "medical_certificate_expired"
	ReasonInsufficientCapacity      AssignmentReason = "insufficient_capacity"
)

// AssignmentError reports a violated assignment precondition.
type AssignmentError struct {
	Reason AssignmentReason
	Cause  error
}

func (e *AssignmentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrAssignment, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrAssignment, e.Reason)
}

func (e *AssignmentError) Unwrap() error {
	return ErrAssignment
}
