package reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidAttemptTransition = errors.New("invalid reservation attempt transition")
	ErrInvalidSlots             = errors.New("slots must be a positive integer")
)

// State of one enrollment attempt as seen by the coordinating service.
type State string

const (
	StateRequested           State = "REQUESTED"
	StatePrerequisiteChecked State = "PREREQUISITE_CHECKED"
	StateDebited             State = "DEBITED"
	StateRejected            State = "REJECTED"
	StateConfirmed           State = "CONFIRMED"
	StateRolledBack          State = "ROLLED_BACK"
	// StateIndeterminate: the reserve call timed out or the courses service was
	// unreachable, so it is unknown whether the debit happened.
	StateIndeterminate State = "INDETERMINATE"
)

var transitions = map[State][]State{
	StateRequested:           {StatePrerequisiteChecked, StateRejected, StateIndeterminate},
	StatePrerequisiteChecked: {StateDebited, StateRejected, StateIndeterminate},
	StateDebited:             {StateConfirmed, StateRolledBack},
}

func (s State) String() string {
	return string(s)
}

func (s State) IsTerminal() bool {
	switch s {
	case StateRejected, StateConfirmed, StateRolledBack, StateIndeterminate:
		return true
	default:
		return false
	}
}

func (s State) CanTransitionTo(to State) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Attempt tracks a single reserve-then-pay flow. The idempotency key is fixed at
// creation and reused for the reserve call and every compensating release.
type Attempt struct {
	id             uuid.UUID
	idempotencyKey string
	courseID       string
	studentID      string
	slots          int
	state          State
	reason         string
	createdAt      time.Time
	updatedAt      time.Time
}

func NewAttempt(courseID, studentID string, slots int, now time.Time) (*Attempt, error) {
	if slots <= 0 {
		return nil, ErrInvalidSlots
	}

	id := uuid.New()
	return &Attempt{
		id:             id,
		idempotencyKey: id.String(),
		courseID:       courseID,
		studentID:      studentID,
		slots:          slots,
		state:          StateRequested,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func (a *Attempt) transition(to State, reason string, now time.Time) error {
	if !a.state.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidAttemptTransition, a.state, to)
	}
	a.state = to
	a.reason = reason
	a.updatedAt = now
	return nil
}

func (a *Attempt) MarkPrerequisiteChecked(now time.Time) error {
	return a.transition(StatePrerequisiteChecked, "", now)
}

func (a *Attempt) MarkDebited(now time.Time) error {
	return a.transition(StateDebited, "", now)
}

func (a *Attempt) Reject(reason string, now time.Time) error {
	return a.transition(StateRejected, reason, now)
}

func (a *Attempt) Confirm(now time.Time) error {
	return a.transition(StateConfirmed, "", now)
}

func (a *Attempt) RollBack(reason string, now time.Time) error {
	return a.transition(StateRolledBack, reason, now)
}

func (a *Attempt) MarkIndeterminate(reason string, now time.Time) error {
	return a.transition(StateIndeterminate, reason, now)
}

// HoldsSeats reports whether the attempt owns debited seats that nobody has released.
func (a *Attempt) HoldsSeats() bool {
	return a.state == StateDebited || a.state == StateConfirmed
}

func (a *Attempt) ID() uuid.UUID          { return a.id }
func (a *Attempt) IdempotencyKey() string { return a.idempotencyKey }
func (a *Attempt) CourseID() string       { return a.courseID }
func (a *Attempt) StudentID() string      { return a.studentID }
func (a *Attempt) Slots() int             { return a.slots }
func (a *Attempt) State() State           { return a.state }
func (a *Attempt) Reason() string         { return a.reason }
func (a *Attempt) CreatedAt() time.Time   { return a.createdAt }
func (a *Attempt) UpdatedAt() time.Time   { return a.updatedAt }
