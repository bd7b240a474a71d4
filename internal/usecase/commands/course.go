package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"course-reservation/internal/domain/course"
	"course-reservation/internal/pkg/clock"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/usecase/queries"
	"course-reservation/internal/usecase/shared"
)

var ErrEmptyStudentID = fmt.Errorf("%w: student id cannot be empty", errs.ErrInvalidArgument)

type PublishCourseInput struct {
	CourseID      string
	Title         string
	Capacity      int
	Prerequisites []string
}

// CourseCommands manage the catalogue side of the ledger: creating records,
// moving them between statuses and recording completed courses.
type CourseCommands interface {
	PublishCourse(ctx context.Context, in PublishCourseInput) (*queries.CourseView, error)
	ChangeStatus(ctx context.Context, courseID, status string) (*queries.AvailabilityView, error)
	RecordCompletion(ctx context.Context, studentID, courseID string) error
}

type courseCommandsImpl struct {
	ledger        shared.LedgerStore
	prerequisites shared.PrerequisiteStore
	publisher     shared.EventPublisher
	clock         clock.Clock
	logger        *slog.Logger
}

func NewCourseCommands(
	ledger shared.LedgerStore,
	prerequisites shared.PrerequisiteStore,
	publisher shared.EventPublisher,
	clock clock.Clock,
	logger *slog.Logger,
) CourseCommands {
	return &courseCommandsImpl{
		ledger:        ledger,
		prerequisites: prerequisites,
		publisher:     publisher,
		clock:         clock,
		logger:        logger,
	}
}

func (c *courseCommandsImpl) PublishCourse(ctx context.Context, in PublishCourseInput) (*queries.CourseView, error) {
	now := c.clock.Now()

	a, err := course.NewAvailability(in.CourseID, in.Title, in.Capacity, now)
	if err != nil {
		return nil, err
	}

	prereqs := make([]string, 0, len(in.Prerequisites))
	for _, p := range in.Prerequisites {
		prereqs = append(prereqs, strings.TrimSpace(p))
	}
	if err := course.ValidatePrerequisites(a.CourseID(), prereqs); err != nil {
		return nil, err
	}

	if err := c.ledger.Create(ctx, a, prereqs); err != nil {
		return nil, queries.TranslateStoreErr(err, a.CourseID())
	}

	c.logger.Info("course published", "course_id", a.CourseID(), "capacity", a.Capacity(), "prerequisites", prereqs)
	c.publisher.Publish(ctx, course.NewLedgerEvent(course.EventCoursePublished, a, 0, now))

	return queries.NewCourseView(a, prereqs), nil
}

func (c *courseCommandsImpl) ChangeStatus(ctx context.Context, courseID, status string) (*queries.AvailabilityView, error) {
	if err := course.ValidateCourseID(courseID); err != nil {
		return nil, err
	}
	to, err := course.NewStatus(status)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	var from course.Status
	updated, err := c.ledger.Update(ctx, courseID, func(a *course.Availability) error {
		from = a.Status()
		return a.ChangeStatus(to, now)
	})
	if err != nil {
		return nil, queries.TranslateStoreErr(err, courseID)
	}

	if from != to {
		c.logger.Info("course status changed", "course_id", courseID, "from", from.String(), "to", to.String())
		c.publisher.Publish(ctx, course.NewLedgerEvent(course.EventStatusChanged, updated, 0, now))
	}
	return queries.NewAvailabilityView(updated), nil
}

func (c *courseCommandsImpl) RecordCompletion(ctx context.Context, studentID, courseID string) error {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return ErrEmptyStudentID
	}
	if err := course.ValidateCourseID(courseID); err != nil {
		return err
	}

	if err := c.prerequisites.RecordCompletion(ctx, studentID, courseID, c.clock.Now()); err != nil {
		return queries.TranslateStoreErr(err, courseID)
	}
	return nil
}
