// Package kernel holds shared value objects used across the domain model.
package kernel

import (
	"github.com/SlinkierSwine/cargo-track/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not initialized through one
// of the constructor functions. The zero value of UUID is invalid.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is a value object wrapping github.com/google/uuid. It identifies
// orders, cargo, vehicles and drivers throughout the system. UUID is
// immutable and safe for concurrent use; construct it with NewUUID,
// UUIDFromString or UUIDFromBytes.
type UUID struct {
	value         uuid.UUID
	isConstructed bool
}

// NewUUID creates a new random (version 4) UUID.
func NewUUID() UUID {
	return UUID{
		value:         uuid.New(),
		isConstructed: true,
	}
}

// UUIDFromString parses a UUID from its canonical string representation.
// Returns an errs.ValueIsInvalidError if the string is not a valid UUID.
func UUIDFromString(s string) (UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", err)
	}

	return UUID{
		value:         parsed,
		isConstructed: true,
	}, nil
}

// UUIDFromBytes builds a UUID from a 16-byte slice.
// Returns an errs.ValueIsInvalidError if the slice is not exactly 16 bytes.
func UUIDFromBytes(b []byte) (UUID, error) {
	parsed, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", err)
	}

	return UUID{
		value:         parsed,
		isConstructed: true,
	}, nil
}

// String returns the canonical string form of the UUID.
func (u UUID) String() string {
	return u.value.String()
}

// Bytes returns the underlying google UUID, used by persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.value
}

// IsEqual reports whether two UUIDs carry the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.value == other.value
}

// Validate returns ErrUUIDIsNotConstructed for zero-value UUIDs.
func (u UUID) Validate() error {
	if !u.isConstructed {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// MarshalText renders the canonical string form. Snapshot structs carrying
// UUID fields travel over JSON between services.
func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.value.String()), nil
}

// UnmarshalText parses the canonical string form. A UUID decoded from the
// wire counts as constructed.
func (u *UUID) UnmarshalText(text []byte) error {
	parsed, err := uuid.Parse(string(text))
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("uuid", err)
	}

	u.value = parsed
	u.isConstructed = true
	return nil
}
