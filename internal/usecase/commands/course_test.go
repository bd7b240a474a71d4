//go:build unit

package commands_test

import (
	"context"
	"testing"

	"course-reservation/internal/domain/course"
	"course-reservation/internal/pkg/clock"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/usecase/commands"
	"course-reservation/tests/common/builder"
	sharedmock "course-reservation/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCourseCommands_PublishCourse(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		in    commands.PublishCourseInput
		errIs error
	}{
		{
			name: "publishes a new course",
			in:   commands.PublishCourseInput{CourseID: "CS301", Title: "Compilers", Capacity: 40, Prerequisites: []string{" CS101 ", "CS201"}},
		},
		{
			name:  "duplicate course id",
			in:    commands.PublishCourseInput{CourseID: "CS101", Title: "Again", Capacity: 10},
			errIs: errs.ErrConflict,
		},
		{
			name:  "self prerequisite",
			in:    commands.PublishCourseInput{CourseID: "CS301", Title: "Loop", Capacity: 10, Prerequisites: []string{"CS301"}},
			errIs: course.ErrSelfPrerequisite,
		},
		{
			name:  "negative capacity",
			in:    commands.PublishCourseInput{CourseID: "CS301", Title: "Compilers", Capacity: -1},
			errIs: course.ErrNegativeCapacity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			publisher := sharedmock.NewMockEventPublisher(ctrl)
			store := seededStore(t, builder.NewCourseBuilder())
			cmds := commands.NewCourseCommands(store, store, publisher, clock.NewMockClock(testNow), discardLogger())

			if tt.errIs == nil {
				publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Do(func(_ context.Context, ev course.LedgerEvent) {
					assert.Equal(t, course.EventCoursePublished, ev.Type)
					assert.Equal(t, tt.in.CourseID, ev.CourseID)
				})
			}

			view, err := cmds.PublishCourse(ctx, tt.in)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, []string{"CS101", "CS201"}, view.Prerequisites)
			assert.Equal(t, 40, view.AvailableSlots)
			assert.Equal(t, course.StatusActive.String(), view.Status)

			stored, err := store.Prerequisites(ctx, tt.in.CourseID)
			require.NoError(t, err)
			assert.Equal(t, []string{"CS101", "CS201"}, stored)
		})
	}
}

func TestCourseCommands_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("closing blocks further debits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		publisher := sharedmock.NewMockEventPublisher(ctrl)
		store := seededStore(t, builder.NewCourseBuilder().WithEnrolled(3))
		cmds := commands.NewCourseCommands(store, store, publisher, clock.NewMockClock(testNow), discardLogger())
		ledger := commands.NewLedgerCommands(store, publisher, clock.NewMockClock(testNow), discardLogger())

		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Do(func(_ context.Context, ev course.LedgerEvent) {
			assert.Equal(t, course.EventStatusChanged, ev.Type)
			assert.Equal(t, course.StatusClosed, ev.Status)
		})

		view, err := cmds.ChangeStatus(ctx, "CS101", "CLOSED")
		require.NoError(t, err)
		assert.Equal(t, "CLOSED", view.Status)
		assert.False(t, view.CanEnroll)

		_, err = ledger.Debit(ctx, "CS101", 1)
		assert.Equal(t, errs.KindCourseInactive, errs.KindOf(err))
	})

	t.Run("same status is a silent no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		publisher := sharedmock.NewMockEventPublisher(ctrl)
		store := seededStore(t, builder.NewCourseBuilder())
		cmds := commands.NewCourseCommands(store, store, publisher, clock.NewMockClock(testNow), discardLogger())

		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

		view, err := cmds.ChangeStatus(ctx, "CS101", "ACTIVE")
		require.NoError(t, err)
		assert.Equal(t, "ACTIVE", view.Status)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		publisher := sharedmock.NewMockEventPublisher(ctrl)
		store := seededStore(t, builder.NewCourseBuilder().WithStatus(course.StatusCancelled))
		cmds := commands.NewCourseCommands(store, store, publisher, clock.NewMockClock(testNow), discardLogger())

		_, err := cmds.ChangeStatus(ctx, "CS101", "ACTIVE")
		assert.ErrorIs(t, err, course.ErrInvalidTransition)
	})

	t.Run("unknown status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := seededStore(t, builder.NewCourseBuilder())
		cmds := commands.NewCourseCommands(store, store, sharedmock.NewMockEventPublisher(ctrl), clock.NewMockClock(testNow), discardLogger())

		_, err := cmds.ChangeStatus(ctx, "CS101", "archived")
		assert.ErrorIs(t, err, course.ErrInvalidStatus)
	})

	t.Run("unknown course", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := seededStore(t)
		cmds := commands.NewCourseCommands(store, store, sharedmock.NewMockEventPublisher(ctrl), clock.NewMockClock(testNow), discardLogger())

		_, err := cmds.ChangeStatus(ctx, "CS101", "CLOSED")
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestCourseCommands_RecordCompletion(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := seededStore(t)
	cmds := commands.NewCourseCommands(store, store, sharedmock.NewMockEventPublisher(ctrl), clock.NewMockClock(testNow), discardLogger())

	require.NoError(t, cmds.RecordCompletion(ctx, "student-1", "CS101"))
	require.NoError(t, cmds.RecordCompletion(ctx, "student-1", "CS101"))

	done, err := store.Completions(ctx, "student-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101"}, done)

	assert.ErrorIs(t, cmds.RecordCompletion(ctx, "  ", "CS101"), commands.ErrEmptyStudentID)
	assert.ErrorIs(t, cmds.RecordCompletion(ctx, "student-1", ""), course.ErrEmptyCourseID)
}
