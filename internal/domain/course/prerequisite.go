package course

import (
	"fmt"

	"course-reservation/internal/pkg/errs"
)

var (
	ErrSelfPrerequisite      = fmt.Errorf("%w: a course cannot require itself", errs.ErrInvalidArgument)
	ErrDuplicatePrerequisite = fmt.Errorf("%w: duplicate prerequisite", errs.ErrInvalidArgument)
)

// PrerequisiteResult lists, in the course's declared order, the prerequisites a
// student has not completed yet.
type PrerequisiteResult struct {
	CourseID  string
	StudentID string
	Missing   []string
}

func EvaluatePrerequisites(courseID, studentID string, required, completed []string) PrerequisiteResult {
	done := make(map[string]struct{}, len(completed))
	for _, c := range completed {
		done[c] = struct{}{}
	}

	missing := make([]string, 0, len(required))
	for _, r := range required {
		if _, ok := done[r]; !ok {
			missing = append(missing, r)
		}
	}

	return PrerequisiteResult{
		CourseID:  courseID,
		StudentID: studentID,
		Missing:   missing,
	}
}

func (r PrerequisiteResult) Met() bool {
	return len(r.Missing) == 0
}

// ValidatePrerequisites rejects self references and duplicates.
func ValidatePrerequisites(courseID string, prerequisites []string) error {
	seen := make(map[string]struct{}, len(prerequisites))
	for _, p := range prerequisites {
		if err := ValidateCourseID(p); err != nil {
			return err
		}
		if p == courseID {
			return ErrSelfPrerequisite
		}
		if _, dup := seen[p]; dup {
			return ErrDuplicatePrerequisite
		}
		seen[p] = struct{}{}
	}
	return nil
}
