package course

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusClosed    Status = "CLOSED"
	StatusCancelled Status = "CANCELLED"
)

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusClosed, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo: ACTIVE<->CLOSED, anything but CANCELLED -> CANCELLED.
func (s Status) CanTransitionTo(to Status) bool {
	if !to.IsValid() {
		return false
	}
	if s == to {
		return true
	}
	switch s {
	case StatusActive:
		return to == StatusClosed || to == StatusCancelled
	case StatusClosed:
		return to == StatusActive || to == StatusCancelled
	default:
		return false
	}
}
