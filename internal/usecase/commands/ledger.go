package commands

import (
	"context"
	"log/slog"
	"time"

	"course-reservation/internal/domain/course"
	"course-reservation/internal/pkg/clock"
	"course-reservation/internal/usecase/queries"
	"course-reservation/internal/usecase/shared"
)

// LedgerCommands are the two mutations of the availability ledger.
type LedgerCommands interface {
	Debit(ctx context.Context, courseID string, slots int) (*queries.AvailabilityView, error)
	Credit(ctx context.Context, courseID string, slots int) (*queries.AvailabilityView, error)
}

type ledgerCommandsImpl struct {
	store     shared.LedgerStore
	publisher shared.EventPublisher
	clock     clock.Clock
	logger    *slog.Logger
}

func NewLedgerCommands(
	store shared.LedgerStore,
	publisher shared.EventPublisher,
	clock clock.Clock,
	logger *slog.Logger,
) LedgerCommands {
	return &ledgerCommandsImpl{
		store:     store,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

func (l *ledgerCommandsImpl) Debit(ctx context.Context, courseID string, slots int) (*queries.AvailabilityView, error) {
	return l.apply(ctx, courseID, slots, course.EventSlotsReserved, (*course.Availability).Debit)
}

func (l *ledgerCommandsImpl) Credit(ctx context.Context, courseID string, slots int) (*queries.AvailabilityView, error) {
	return l.apply(ctx, courseID, slots, course.EventSlotsReleased, (*course.Availability).Credit)
}

func (l *ledgerCommandsImpl) apply(
	ctx context.Context,
	courseID string,
	slots int,
	eventType course.EventType,
	mutate func(a *course.Availability, slots int, now time.Time) error,
) (*queries.AvailabilityView, error) {
	if err := course.ValidateCourseID(courseID); err != nil {
		return nil, err
	}
	if slots <= 0 {
		return nil, course.ErrInvalidSlots
	}

	now := l.clock.Now()
	updated, err := l.store.Update(ctx, courseID, func(a *course.Availability) error {
		return mutate(a, slots, now)
	})
	if err != nil {
		return nil, queries.TranslateStoreErr(err, courseID)
	}

	l.logger.Info("ledger updated",
		"event", string(eventType),
		"course_id", courseID,
		"slots", slots,
		"enrolled", updated.Enrolled(),
		"capacity", updated.Capacity())

	l.publisher.Publish(ctx, course.NewLedgerEvent(eventType, updated, slots, now))
	return queries.NewAvailabilityView(updated), nil
}
