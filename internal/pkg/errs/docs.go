// Package errs provides standardized error types for the cargo-track services.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify against the sentinel
//
// Domain-specific failures (invalid status transitions, assignment
// preconditions, broker transport) define their own typed errors in the
// packages that raise them, built on the same sentinel-plus-struct pattern.
package errs
