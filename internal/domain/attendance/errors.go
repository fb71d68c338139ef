package attendance

import "github.com/holycity/portal/internal/domain/shared"

// Expected, user-recoverable rejection reasons for a submission attempt.
var (
	ErrInvalidStatus       = shared.NewDomainError("INVALID_STATUS", "Unknown attendance status")
	ErrLocationUnavailable = shared.NewDomainError("LOCATION_UNAVAILABLE", "Location not detected; enable GPS and try again")
	ErrAlreadyRecorded     = shared.NewDomainError("ALREADY_RECORDED", "Attendance with this status has already been recorded today")
	ErrStorageFailure      = shared.NewDomainError("STORAGE_FAILURE", "Attendance could not be stored; please try again")
)

// OutOfRangeError rejects a submission made outside the office geofence.
// It carries the measured distance so the caller can tell the user how far
// away they were.
type OutOfRangeError struct {
	*shared.DomainError
	DistanceMeters float64
	RadiusMeters   float64
}

// NewOutOfRangeError creates an OutOfRangeError for the given measurement.
func NewOutOfRangeError(distance, radius float64) *OutOfRangeError {
	return &OutOfRangeError{
		DomainError: shared.NewDomainErrorf("OUT_OF_RANGE",
			"You are %.2f m from the office (allowed radius %.0f m)", distance, radius),
		DistanceMeters: distance,
		RadiusMeters:   radius,
	}
}

// Unwrap exposes the embedded DomainError to errors.As.
func (e *OutOfRangeError) Unwrap() error {
	return e.DomainError
}
