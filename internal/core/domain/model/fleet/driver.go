package fleet

import (
	"fmt"
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
)

// DriverStatus is the employment state of a driver as reported by the fleet
// service.
type DriverStatus string

const (
	DriverStatusActive     DriverStatus = "active"
	DriverStatusOnLeave    DriverStatus = "on_leave"
	DriverStatusTerminated DriverStatus = "terminated"
)

// Driver is a point-in-time snapshot of a fleet driver. Eligibility for
// assignment depends on status and on the license and medical certificate
// both being unexpired.
type Driver struct {
	ID                       kernel.UUID  `json:"id"`
	FirstName                string       `json:"first_name"`
	LastName                 string       `json:"last_name"`
	Status                   DriverStatus `json:"status"`
	LicenseExpiry            time.Time    `json:"license_expiry"`
	MedicalCertificateExpiry time.Time    `json:"medical_certificate_expiry"`
}

// FullName returns the driver's display name used in event payloads.
func (d Driver) FullName() string {
	return fmt.Sprintf("%s %s", d.FirstName, d.LastName)
}

// HasValidLicense reports whether the driving license is unexpired at the
// given instant.
func (d Driver) HasValidLicense(now time.Time) bool {
	return d.LicenseExpiry.After(now)
}

// HasValidMedicalCertificate reports whether the medical certificate is
// unexpired at the given instant.
func (d Driver) HasValidMedicalCertificate(now time.Time) bool {
	return d.MedicalCertificateExpiry.After(now)
}

// IsAvailable reports whether the driver can take new assignments: active
// status with valid license and medical certificate.
func (d Driver) IsAvailable(now time.Time) bool {
	return d.Status == DriverStatusActive &&
		d.HasValidLicense(now) &&
		d.HasValidMedicalCertificate(now)
}
