package queries

import (
	"context"
	"fmt"
	"strings"

	"course-reservation/internal/domain/course"
	"course-reservation/internal/infra"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/usecase/shared"
)

var ErrEmptyStudentID = fmt.Errorf("%w: student id cannot be empty", errs.ErrInvalidArgument)

type CourseQueries interface {
	GetCourse(ctx context.Context, courseID string) (*CourseView, error)
	GetAvailability(ctx context.Context, courseID string) (*AvailabilityView, error)
	CheckPrerequisites(ctx context.Context, courseID, studentID string) (*PrerequisiteView, error)
}

type courseQueriesImpl struct {
	ledger        shared.LedgerStore
	prerequisites shared.PrerequisiteStore
}

func NewCourseQueries(ledger shared.LedgerStore, prerequisites shared.PrerequisiteStore) CourseQueries {
	return &courseQueriesImpl{
		ledger:        ledger,
		prerequisites: prerequisites,
	}
}

func (q *courseQueriesImpl) GetCourse(ctx context.Context, courseID string) (*CourseView, error) {
	if err := course.ValidateCourseID(courseID); err != nil {
		return nil, err
	}

	a, err := q.ledger.Get(ctx, courseID)
	if err != nil {
		return nil, TranslateStoreErr(err, courseID)
	}

	prereqs, err := q.prerequisites.Prerequisites(ctx, courseID)
	if err != nil {
		return nil, TranslateStoreErr(err, courseID)
	}

	return NewCourseView(a, prereqs), nil
}

func (q *courseQueriesImpl) GetAvailability(ctx context.Context, courseID string) (*AvailabilityView, error) {
	if err := course.ValidateCourseID(courseID); err != nil {
		return nil, err
	}

	a, err := q.ledger.Get(ctx, courseID)
	if err != nil {
		return nil, TranslateStoreErr(err, courseID)
	}
	return NewAvailabilityView(a), nil
}

func (q *courseQueriesImpl) CheckPrerequisites(ctx context.Context, courseID, studentID string) (*PrerequisiteView, error) {
	if err := course.ValidateCourseID(courseID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(studentID) == "" {
		return nil, ErrEmptyStudentID
	}

	required, err := q.prerequisites.Prerequisites(ctx, courseID)
	if err != nil {
		return nil, TranslateStoreErr(err, courseID)
	}

	if len(required) == 0 {
		return NewPrerequisiteView(course.EvaluatePrerequisites(courseID, studentID, nil, nil)), nil
	}

	completed, err := q.prerequisites.Completions(ctx, studentID)
	if err != nil {
		return nil, TranslateStoreErr(err, courseID)
	}

	return NewPrerequisiteView(course.EvaluatePrerequisites(courseID, studentID, required, completed)), nil
}

// TranslateStoreErr maps store failures onto the error taxonomy. Errors already
// carrying a kind (domain rejections) pass through untouched.
func TranslateStoreErr(err error, courseID string) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return fmt.Errorf("%w: %s", errs.ErrNotFound, courseID)
	case infra.IsKind(err, infra.KindDuplicateKey):
		return fmt.Errorf("%w: course %s already exists", errs.ErrConflict, courseID)
	case infra.IsKind(err, infra.KindCheckViolated):
		// the database refused a state the domain should have rejected first
		return errs.Wrap(err, "ledger invariant rejected by storage")
	default:
		return err
	}
}
