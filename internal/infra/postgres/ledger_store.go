package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"course-reservation/internal/domain/course"
	"course-reservation/internal/infra"
	"course-reservation/internal/infra/db"
	"course-reservation/internal/infra/uow"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
	pgErrCheckViolation      = "23514"
)

// LedgerStore keeps availability in postgres. Update locks the course row with
// SELECT ... FOR UPDATE, so concurrent debits on one course queue behind each
// other while other courses proceed in parallel.
type LedgerStore struct {
	uow     uow.UnitOfWork
	queries *Queries
	logger  *slog.Logger
}

func NewLedgerStore(u uow.UnitOfWork, logger *slog.Logger) *LedgerStore {
	return &LedgerStore{
		uow:     u,
		queries: NewQueries(),
		logger:  logger,
	}
}

func (s *LedgerStore) Get(ctx context.Context, courseID string) (*course.Availability, error) {
	var a *course.Availability
	err := s.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		row, err := s.queries.GetCourseAvailability(ctx, dbtx, courseID)
		if err != nil {
			return s.wrapErr("failed to get course availability", err)
		}
		a, err = toDomain(row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *LedgerStore) Create(ctx context.Context, a *course.Availability, prerequisites []string) error {
	return s.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		params, err := toInsertParams(a)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidArgument)
		}
		if err := s.queries.InsertCourse(ctx, tx, params); err != nil {
			return s.wrapErr("failed to insert course", err)
		}
		for i, p := range prerequisites {
			if err := s.queries.InsertPrerequisite(ctx, tx, a.CourseID(), p, int32(i)); err != nil { // #nosec G115 -- small slice index
				return s.wrapErr("failed to insert prerequisite", err)
			}
		}
		return nil
	})
}

func (s *LedgerStore) Update(ctx context.Context, courseID string, fn func(a *course.Availability) error) (*course.Availability, error) {
	var updated *course.Availability
	err := s.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		row, err := s.queries.GetCourseAvailabilityForUpdate(ctx, tx, courseID)
		if err != nil {
			return s.wrapErr("failed to lock course availability", err)
		}

		a, err := toDomain(row)
		if err != nil {
			return err
		}

		if err := fn(a); err != nil {
			return err
		}

		affected, err := s.queries.UpdateCourse(ctx, tx, toUpdateParams(a))
		if err != nil {
			return s.wrapErr("failed to update course availability", err)
		}
		if affected != 1 {
			return infra.WrapRepoErr(s.logger, infra.KindNotFound, "course disappeared during update", nil)
		}

		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *LedgerStore) Prerequisites(ctx context.Context, courseID string) ([]string, error) {
	var out []string
	err := s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx db.DBTX) error {
		exists, err := s.queries.CourseExists(ctx, tx, courseID)
		if err != nil {
			return s.wrapErr("failed to check course", err)
		}
		if !exists {
			return infra.WrapRepoErr(s.logger, infra.KindNotFound, "course not found", nil)
		}

		out, err = s.queries.ListPrerequisites(ctx, tx, courseID)
		if err != nil {
			return s.wrapErr("failed to list prerequisites", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *LedgerStore) Completions(ctx context.Context, studentID string) ([]string, error) {
	var out []string
	err := s.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var err error
		out, err = s.queries.ListCompletions(ctx, dbtx, studentID)
		if err != nil {
			return s.wrapErr("failed to list completions", err)
		}
		return nil
	})
	return out, err
}

func (s *LedgerStore) RecordCompletion(ctx context.Context, studentID, courseID string, completedAt time.Time) error {
	return s.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		if err := s.queries.InsertCompletion(ctx, dbtx, studentID, courseID, pgconv.TimestamptzFromTime(completedAt)); err != nil {
			return s.wrapErr("failed to record completion", err)
		}
		return nil
	})
}

func (s *LedgerStore) wrapErr(msg string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return infra.WrapRepoErr(s.logger, infra.KindNotFound, msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, msg, err)
		case pgErrForeignKeyViolation:
			return infra.WrapRepoErr(s.logger, infra.KindForeignKeyViolated, msg, err)
		case pgErrCheckViolation:
			return infra.WrapRepoErr(s.logger, infra.KindCheckViolated, msg, err)
		}
	}

	// serialization failures must stay visible to the unit of work's retry
	return infra.WrapRepoErr(s.logger, infra.KindDBFailure, msg, err)
}
