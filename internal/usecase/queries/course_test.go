//go:build unit

package queries_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"course-reservation/internal/domain/course"
	"course-reservation/internal/infra"
	"course-reservation/internal/infra/memory"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/usecase/queries"
	"course-reservation/tests/common/builder"
	sharedmock "course-reservation/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var completedAt = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *memory.LedgerStore {
	t.Helper()
	store := memory.NewLedgerStore(slog.New(slog.NewTextHandler(io.Discard, nil)))
	for _, b := range []*builder.CourseBuilder{
		builder.NewCourseBuilder().WithEnrolled(5),
		builder.NewCourseBuilder().WithCourseID("CS201").WithPrerequisites("CS101", "MATH100"),
	} {
		require.NoError(t, store.Create(context.Background(), b.MustBuildDomain(), b.Prerequisites))
	}
	return store
}

func TestCourseQueries_GetAvailability(t *testing.T) {
	ctx := context.Background()
	q := queries.NewCourseQueries(newStore(t), newStore(t))

	view, err := q.GetAvailability(ctx, "CS101")
	require.NoError(t, err)

	want := &queries.AvailabilityView{
		CourseID:       "CS101",
		Title:          view.Title,
		Capacity:       30,
		Enrolled:       5,
		AvailableSlots: 25,
		Status:         "ACTIVE",
		IsAvailable:    true,
		CanEnroll:      true,
		UpdatedAt:      view.UpdatedAt,
	}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Errorf("availability mismatch (-want +got):\n%s", diff)
	}

	_, err = q.GetAvailability(ctx, "MISSING")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = q.GetAvailability(ctx, "")
	assert.ErrorIs(t, err, course.ErrEmptyCourseID)
}

func TestCourseQueries_GetCourse(t *testing.T) {
	store := newStore(t)
	q := queries.NewCourseQueries(store, store)

	view, err := q.GetCourse(context.Background(), "CS201")
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101", "MATH100"}, view.Prerequisites)

	view, err = q.GetCourse(context.Background(), "CS101")
	require.NoError(t, err)
	assert.NotNil(t, view.Prerequisites)
	assert.Empty(t, view.Prerequisites)
}

func TestCourseQueries_CheckPrerequisites(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		courseID    string
		studentID   string
		completed   []string
		wantMet     bool
		wantMissing []string
		errIs       error
	}{
		{name: "no prerequisites", courseID: "CS101", studentID: "s1", wantMet: true, wantMissing: []string{}},
		{name: "none completed", courseID: "CS201", studentID: "s1", wantMissing: []string{"CS101", "MATH100"}},
		{name: "partially completed", courseID: "CS201", studentID: "s1", completed: []string{"MATH100"}, wantMissing: []string{"CS101"}},
		{name: "all completed", courseID: "CS201", studentID: "s1", completed: []string{"MATH100", "CS101"}, wantMet: true, wantMissing: []string{}},
		{name: "unknown course", courseID: "NOPE", studentID: "s1", errIs: errs.ErrNotFound},
		{name: "blank student", courseID: "CS201", studentID: " ", errIs: queries.ErrEmptyStudentID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			for _, c := range tt.completed {
				require.NoError(t, store.RecordCompletion(ctx, tt.studentID, c, completedAt))
			}
			q := queries.NewCourseQueries(store, store)

			view, err := q.CheckPrerequisites(ctx, tt.courseID, tt.studentID)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantMet, view.PrerequisitesMet)
			assert.Equal(t, tt.wantMissing, view.MissingPrerequisites)
		})
	}
}

func TestCourseQueries_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := sharedmock.NewMockLedgerStore(ctrl)
	prereqs := sharedmock.NewMockPrerequisiteStore(ctrl)
	q := queries.NewCourseQueries(ledger, prereqs)

	storeErr := infra.WrapRepoErr(slog.New(slog.NewTextHandler(io.Discard, nil)), infra.KindDBFailure, "connection refused", nil)
	ledger.EXPECT().Get(gomock.Any(), "CS101").Return(nil, storeErr)

	_, err := q.GetAvailability(context.Background(), "CS101")
	assert.Error(t, err)
	assert.Equal(t, errs.KindInternal, errs.KindOf(err))
}
