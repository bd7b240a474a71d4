package course

import (
	"fmt"
	"strings"
	"time"

	"course-reservation/internal/pkg/errs"
)

var (
	ErrEmptyCourseID     = fmt.Errorf("%w: course id cannot be empty", errs.ErrInvalidArgument)
	ErrCourseIDTooLong   = fmt.Errorf("%w: course id is too long (max %d characters)", errs.ErrInvalidArgument, MaxCourseIDLength)
	ErrTitleTooLong      = fmt.Errorf("%w: title is too long (max %d characters)", errs.ErrInvalidArgument, MaxTitleLength)
	ErrNegativeCapacity  = fmt.Errorf("%w: capacity cannot be negative", errs.ErrInvalidArgument)
	ErrCapacityTooLarge  = fmt.Errorf("%w: capacity cannot exceed %d", errs.ErrInvalidArgument, MaxCapacity)
	ErrInvalidSlots      = fmt.Errorf("%w: slots must be a positive integer", errs.ErrInvalidArgument)
	ErrInvalidStatus     = fmt.Errorf("%w: invalid course status", errs.ErrInvalidArgument)
	ErrInvalidTransition = fmt.Errorf("%w: course status transition not allowed", errs.ErrConflict)
	ErrCapacityExceeded  = fmt.Errorf("%w: not enough available slots", errs.ErrCapacityExceeded)
	ErrInvalidRelease    = fmt.Errorf("%w: release exceeds enrolled count", errs.ErrInvalidRelease)
	ErrCourseNotActive   = fmt.Errorf("%w: reservations require an ACTIVE course", errs.ErrCourseInactive)
	ErrCorruptRecord     = errs.New("availability record violates 0 <= enrolled <= capacity")
)

const (
	MaxCourseIDLength = 64
	MaxTitleLength    = 255
	MaxCapacity       = 100000
)

// Availability is the seat-accounting record of one course. availableSlots is
// always derived from capacity and enrolled and never stored.
type Availability struct {
	courseID  string
	title     string
	capacity  int
	enrolled  int
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewAvailability(courseID, title string, capacity int, now time.Time) (*Availability, error) {
	courseID = strings.TrimSpace(courseID)
	if err := ValidateCourseID(courseID); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if len(title) > MaxTitleLength {
		return nil, ErrTitleTooLong
	}

	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	if capacity > MaxCapacity {
		return nil, ErrCapacityTooLarge
	}

	return &Availability{
		courseID:  courseID,
		title:     title,
		capacity:  capacity,
		enrolled:  0,
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructAvailability rebuilds a record read from storage and rejects rows
// that break the seat invariant instead of serving them.
func ReconstructAvailability(
	courseID, title string,
	capacity, enrolled int,
	status Status,
	createdAt, updatedAt time.Time,
) (*Availability, error) {
	if capacity < 0 || enrolled < 0 || enrolled > capacity || !status.IsValid() {
		return nil, errs.Wrap(ErrCorruptRecord, fmt.Sprintf("course %s: capacity=%d enrolled=%d status=%s", courseID, capacity, enrolled, status))
	}

	return &Availability{
		courseID:  courseID,
		title:     title,
		capacity:  capacity,
		enrolled:  enrolled,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func ValidateCourseID(courseID string) error {
	if strings.TrimSpace(courseID) == "" {
		return ErrEmptyCourseID
	}
	if len(courseID) > MaxCourseIDLength {
		return ErrCourseIDTooLong
	}
	return nil
}

// Debit takes slots seats. It mutates nothing unless every check passes.
func (a *Availability) Debit(slots int, now time.Time) error {
	if slots <= 0 {
		return ErrInvalidSlots
	}
	if a.status != StatusActive {
		return ErrCourseNotActive
	}
	// compared against the remaining seats so enrolled+slots cannot overflow
	if slots > a.AvailableSlots() {
		return ErrCapacityExceeded
	}

	a.enrolled += slots
	a.updatedAt = now
	return nil
}

// Credit gives slots seats back. Releasing more than is enrolled is an error,
// never a clamp: a clamp would hide a double release.
func (a *Availability) Credit(slots int, now time.Time) error {
	if slots <= 0 {
		return ErrInvalidSlots
	}
	if slots > a.enrolled {
		return ErrInvalidRelease
	}

	a.enrolled -= slots
	a.updatedAt = now
	return nil
}

func (a *Availability) ChangeStatus(to Status, now time.Time) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}
	if !a.status.CanTransitionTo(to) {
		return ErrInvalidTransition
	}
	if a.status == to {
		return nil
	}

	a.status = to
	a.updatedAt = now
	return nil
}

func (a *Availability) AvailableSlots() int {
	return a.capacity - a.enrolled
}

func (a *Availability) IsAvailable() bool {
	return a.AvailableSlots() > 0
}

func (a *Availability) CanEnroll() bool {
	return a.status == StatusActive && a.IsAvailable()
}

func (a *Availability) Clone() *Availability {
	c := *a
	return &c
}

func (a *Availability) CourseID() string     { return a.courseID }
func (a *Availability) Title() string        { return a.title }
func (a *Availability) Capacity() int        { return a.capacity }
func (a *Availability) Enrolled() int        { return a.enrolled }
func (a *Availability) Status() Status       { return a.status }
func (a *Availability) CreatedAt() time.Time { return a.createdAt }
func (a *Availability) UpdatedAt() time.Time { return a.updatedAt }
