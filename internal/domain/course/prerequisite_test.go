//go:build unit

package course_test

import (
	"testing"

	"course-reservation/internal/domain/course"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestEvaluatePrerequisites(t *testing.T) {
	cases := []struct {
		name        string
		required    []string
		completed   []string
		wantMissing []string
	}{
		{name: "no prerequisites", required: nil, completed: []string{"MATH100"}, wantMissing: []string{}},
		{name: "all completed", required: []string{"CS101", "MATH100"}, completed: []string{"MATH100", "CS101", "ENG100"}, wantMissing: []string{}},
		{name: "nothing completed", required: []string{"CS101", "MATH100"}, completed: nil, wantMissing: []string{"CS101", "MATH100"}},
		{name: "missing keeps declared order", required: []string{"MATH200", "CS101", "CS102"}, completed: []string{"CS101"}, wantMissing: []string{"MATH200", "CS102"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual := course.EvaluatePrerequisites("CS201", "student-1", c.required, c.completed)

			if diff := cmp.Diff(c.wantMissing, actual.Missing); diff != "" {
				t.Errorf("missing mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, len(c.wantMissing) == 0, actual.Met())
			assert.NotNil(t, actual.Missing)
			assert.Equal(t, "CS201", actual.CourseID)
			assert.Equal(t, "student-1", actual.StudentID)
		})
	}
}

func TestValidatePrerequisites(t *testing.T) {
	assert.NoError(t, course.ValidatePrerequisites("CS201", []string{"CS101", "MATH100"}))
	assert.ErrorIs(t, course.ValidatePrerequisites("CS201", []string{"CS201"}), course.ErrSelfPrerequisite)
	assert.ErrorIs(t, course.ValidatePrerequisites("CS201", []string{"CS101", "CS101"}), course.ErrDuplicatePrerequisite)
	assert.ErrorIs(t, course.ValidatePrerequisites("CS201", []string{""}), course.ErrEmptyCourseID)
}
