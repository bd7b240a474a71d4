package commands

import (
	"context"
	"log/slog"
	"time"

	"course-reservation/internal/domain/course"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/pkg/retry"
	"course-reservation/internal/pkg/tracing"
	"course-reservation/internal/usecase/queries"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ReservationCommands is the coordinator in front of the ledger.
type ReservationCommands interface {
	// ReserveForEnrollment debits slots only when the student meets the course's
	// prerequisites. Nothing is mutated on any failure.
	ReserveForEnrollment(ctx context.Context, courseID, studentID string, slots int) (*queries.AvailabilityView, error)
	// ReleaseForCancellation credits slots back. A compensating release retries
	// transient failures with bounded backoff; business rejections end it at once.
	ReleaseForCancellation(ctx context.Context, courseID string, slots int, compensating bool) (*queries.AvailabilityView, error)
}

type reservationCommandsImpl struct {
	ledger  LedgerCommands
	queries queries.CourseQueries
	policy  retry.Policy
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewReservationCommands(
	ledger LedgerCommands,
	courseQueries queries.CourseQueries,
	policy retry.Policy,
	logger *slog.Logger,
) ReservationCommands {
	return &reservationCommandsImpl{
		ledger:  ledger,
		queries: courseQueries,
		policy:  policy,
		logger:  logger,
		tracer:  tracing.Tracer("reservation"),
	}
}

func (r *reservationCommandsImpl) ReserveForEnrollment(ctx context.Context, courseID, studentID string, slots int) (*queries.AvailabilityView, error) {
	ctx, span := r.tracer.Start(ctx, "ReserveForEnrollment", trace.WithAttributes(
		attribute.String("course.id", courseID),
		attribute.String("student.id", studentID),
		attribute.Int("slots", slots),
	))
	defer span.End()

	if slots <= 0 {
		return nil, recordErr(span, course.ErrInvalidSlots)
	}

	check, err := r.queries.CheckPrerequisites(ctx, courseID, studentID)
	if err != nil {
		return nil, recordErr(span, err)
	}
	if !check.PrerequisitesMet {
		r.logger.Info("reservation rejected: prerequisites not met",
			"course_id", courseID,
			"student_id", studentID,
			"missing", check.MissingPrerequisites)
		return nil, recordErr(span, &errs.PrerequisitesNotMetError{
			CourseID:  courseID,
			StudentID: studentID,
			Missing:   check.MissingPrerequisites,
		})
	}

	// a caller that already gave up must not be charged a seat
	if err := ctx.Err(); err != nil {
		return nil, recordErr(span, errs.Wrap(err, "reservation abandoned before debit"))
	}

	view, err := r.ledger.Debit(ctx, courseID, slots)
	if err != nil {
		return nil, recordErr(span, err)
	}

	span.SetAttributes(attribute.Int("course.available_slots", view.AvailableSlots))
	return view, nil
}

func (r *reservationCommandsImpl) ReleaseForCancellation(ctx context.Context, courseID string, slots int, compensating bool) (*queries.AvailabilityView, error) {
	ctx, span := r.tracer.Start(ctx, "ReleaseForCancellation", trace.WithAttributes(
		attribute.String("course.id", courseID),
		attribute.Int("slots", slots),
		attribute.Bool("compensating", compensating),
	))
	defer span.End()

	if !compensating {
		view, err := r.ledger.Credit(ctx, courseID, slots)
		if err != nil {
			return nil, recordErr(span, err)
		}
		return view, nil
	}

	var (
		view     *queries.AvailabilityView
		attempts int
	)
	err := retry.Do(ctx, r.policy,
		func(ctx context.Context) error {
			attempts++
			var err error
			view, err = r.ledger.Credit(ctx, courseID, slots)
			return err
		},
		isPermanent,
		func(err error, wait time.Duration) {
			r.logger.Warn("compensating release failed, retrying",
				"course_id", courseID,
				"slots", slots,
				"attempt", attempts,
				"wait_ms", wait.Milliseconds(),
				"error", err.Error())
		},
	)
	span.SetAttributes(attribute.Int("release.attempts", attempts))
	if err != nil {
		r.logger.Error("compensating release gave up",
			"course_id", courseID,
			"slots", slots,
			"attempts", attempts,
			"error", err.Error())
		return nil, recordErr(span, err)
	}
	return view, nil
}

func isPermanent(err error) bool {
	return errs.IsBusiness(errs.KindOf(err))
}

func recordErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(errs.KindOf(err)))
	return err
}
