package shared

import (
	"context"
	"time"

	"course-reservation/internal/domain/course"
)

// LedgerStore persists availability records. Update loads the record, applies fn
// and commits only when fn returns nil; mutations of one course are serialized so
// concurrent debits never observe the same enrolled value.
type LedgerStore interface {
	Get(ctx context.Context, courseID string) (*course.Availability, error)
	Create(ctx context.Context, a *course.Availability, prerequisites []string) error
	Update(ctx context.Context, courseID string, fn func(a *course.Availability) error) (*course.Availability, error)
}

type PrerequisiteStore interface {
	// Prerequisites returns the course's prerequisites in declared order.
	Prerequisites(ctx context.Context, courseID string) ([]string, error)
	Completions(ctx context.Context, studentID string) ([]string, error)
	RecordCompletion(ctx context.Context, studentID, courseID string, completedAt time.Time) error
}

// EventPublisher must not block the caller; delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, event course.LedgerEvent)
}

// IdempotencyStore backs the Idempotency-Key middleware.
type IdempotencyStore interface {
	// Claim reserves key for a new request. When the key is already taken the
	// existing record is returned with claimed=false.
	Claim(ctx context.Context, key, fingerprint string, ttl time.Duration) (existing *IdempotencyRecord, claimed bool, err error)
	Complete(ctx context.Context, key string, record IdempotencyRecord, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}
