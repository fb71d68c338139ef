package attendance

// Status identifies the kind of attendance event being recorded.
// It is a closed set: unknown values are rejected at the boundary so a typo
// cannot silently create a new, unenforced attendance category.
type Status string

const (
	// StatusCheckIn marks the start of a working day.
	StatusCheckIn Status = "check_in"
	// StatusCheckOut marks the end of a working day.
	StatusCheckOut Status = "check_out"
	// StatusLeave records an approved absence-with-leave for the day.
	StatusLeave Status = "leave"
)

// ParseStatus converts an externally supplied string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusCheckIn, StatusCheckOut, StatusLeave:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// IsValid reports whether the status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusCheckIn, StatusCheckOut, StatusLeave:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
