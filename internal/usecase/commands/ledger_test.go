//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"course-reservation/internal/domain/course"
	"course-reservation/internal/infra"
	"course-reservation/internal/infra/memory"
	"course-reservation/internal/pkg/clock"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/usecase/commands"
	"course-reservation/tests/common/builder"
	sharedmock "course-reservation/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seededStore(t *testing.T, courses ...*builder.CourseBuilder) *memory.LedgerStore {
	t.Helper()
	store := memory.NewLedgerStore(discardLogger())
	for _, b := range courses {
		a := b.MustBuildDomain()
		require.NoError(t, store.Create(context.Background(), a, b.Prerequisites))
	}
	return store
}

func TestLedgerCommands_Debit(t *testing.T) {
	ctx := context.Background()

	t.Run("success publishes slots.reserved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		publisher := sharedmock.NewMockEventPublisher(ctrl)
		store := seededStore(t, builder.NewCourseBuilder().WithCapacity(30).WithEnrolled(5))
		ledger := commands.NewLedgerCommands(store, publisher, clock.NewMockClock(testNow), discardLogger())

		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Do(func(_ context.Context, ev course.LedgerEvent) {
			assert.Equal(t, course.EventSlotsReserved, ev.Type)
			assert.Equal(t, "CS101", ev.CourseID)
			assert.Equal(t, 1, ev.Slots)
			assert.Equal(t, 6, ev.Enrolled)
			assert.Equal(t, testNow, ev.OccurredAt)
		}).Times(1)

		view, err := ledger.Debit(ctx, "CS101", 1)
		require.NoError(t, err)
		assert.Equal(t, 6, view.Enrolled)
		assert.Equal(t, 24, view.AvailableSlots)
		assert.True(t, view.CanEnroll)
	})

	t.Run("full course is rejected without an event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		publisher := sharedmock.NewMockEventPublisher(ctrl)
		store := seededStore(t, builder.NewCourseBuilder().WithCapacity(30).WithEnrolled(30))
		ledger := commands.NewLedgerCommands(store, publisher, clock.NewMockClock(testNow), discardLogger())

		_, err := ledger.Debit(ctx, "CS101", 1)
		assert.True(t, errors.Is(err, errs.ErrCapacityExceeded))

		a, err := store.Get(ctx, "CS101")
		require.NoError(t, err)
		assert.Equal(t, 30, a.Enrolled())
	})

	t.Run("input validation happens before the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sharedmock.NewMockLedgerStore(ctrl)
		ledger := commands.NewLedgerCommands(store, sharedmock.NewMockEventPublisher(ctrl), clock.NewMockClock(testNow), discardLogger())

		_, err := ledger.Debit(ctx, "CS101", 0)
		assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))

		_, err = ledger.Debit(ctx, "", 1)
		assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
	})

	t.Run("unknown course maps to NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sharedmock.NewMockLedgerStore(ctrl)
		ledger := commands.NewLedgerCommands(store, sharedmock.NewMockEventPublisher(ctrl), clock.NewMockClock(testNow), discardLogger())

		store.EXPECT().Update(gomock.Any(), "NOPE", gomock.Any()).
			Return(nil, infra.WrapRepoErr(discardLogger(), infra.KindNotFound, "course not found", nil))

		_, err := ledger.Debit(ctx, "NOPE", 1)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
		assert.Contains(t, err.Error(), "NOPE")
	})

	t.Run("store failure stays Internal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sharedmock.NewMockLedgerStore(ctrl)
		ledger := commands.NewLedgerCommands(store, sharedmock.NewMockEventPublisher(ctrl), clock.NewMockClock(testNow), discardLogger())

		store.EXPECT().Update(gomock.Any(), "CS101", gomock.Any()).
			Return(nil, infra.WrapRepoErr(discardLogger(), infra.KindDBFailure, "boom", errors.New("conn reset")))

		_, err := ledger.Debit(ctx, "CS101", 1)
		assert.Equal(t, errs.KindInternal, errs.KindOf(err))
	})
}

func TestLedgerCommands_Credit(t *testing.T) {
	ctx := context.Background()

	t.Run("credit after debit restores the record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		publisher := sharedmock.NewMockEventPublisher(ctrl)
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(2)
		store := seededStore(t, builder.NewCourseBuilder().WithCapacity(30).WithEnrolled(5))
		ledger := commands.NewLedgerCommands(store, publisher, clock.NewMockClock(testNow), discardLogger())

		_, err := ledger.Debit(ctx, "CS101", 3)
		require.NoError(t, err)
		view, err := ledger.Credit(ctx, "CS101", 3)
		require.NoError(t, err)

		assert.Equal(t, 5, view.Enrolled)
		assert.Equal(t, 25, view.AvailableSlots)
	})

	t.Run("credit below zero is InvalidRelease and changes nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		publisher := sharedmock.NewMockEventPublisher(ctrl)
		store := seededStore(t, builder.NewCourseBuilder().WithEnrolled(1))
		ledger := commands.NewLedgerCommands(store, publisher, clock.NewMockClock(testNow), discardLogger())

		_, err := ledger.Credit(ctx, "CS101", 2)
		assert.Equal(t, errs.KindInvalidRelease, errs.KindOf(err))

		a, err := store.Get(ctx, "CS101")
		require.NoError(t, err)
		assert.Equal(t, 1, a.Enrolled())
	})

	t.Run("credit works on a cancelled course", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		publisher := sharedmock.NewMockEventPublisher(ctrl)
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(1)
		store := seededStore(t, builder.NewCourseBuilder().WithEnrolled(4).WithStatus(course.StatusCancelled))
		ledger := commands.NewLedgerCommands(store, publisher, clock.NewMockClock(testNow), discardLogger())

		view, err := ledger.Credit(ctx, "CS101", 4)
		require.NoError(t, err)
		assert.Equal(t, 0, view.Enrolled)
		assert.False(t, view.CanEnroll)
	})
}
