package course

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventSlotsReserved   EventType = "slots.reserved"
	EventSlotsReleased   EventType = "slots.released"
	EventCoursePublished EventType = "course.published"
	EventStatusChanged   EventType = "course.status_changed"
)

// LedgerEvent records one committed ledger mutation.
type LedgerEvent struct {
	ID         uuid.UUID
	Type       EventType
	CourseID   string
	Slots      int
	Enrolled   int
	Capacity   int
	Status     Status
	OccurredAt time.Time
}

func NewLedgerEvent(eventType EventType, a *Availability, slots int, now time.Time) LedgerEvent {
	return LedgerEvent{
		ID:         uuid.New(),
		Type:       eventType,
		CourseID:   a.CourseID(),
		Slots:      slots,
		Enrolled:   a.Enrolled(),
		Capacity:   a.Capacity(),
		Status:     a.Status(),
		OccurredAt: now,
	}
}
