package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"course-reservation/internal/domain/course"
	"course-reservation/internal/infra"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const timeLayout = time.RFC3339Nano

type courseRow struct {
	CourseID  string `db:"course_id"`
	Title     string `db:"title"`
	Capacity  int    `db:"capacity"`
	Enrolled  int    `db:"enrolled"`
	Status    string `db:"status"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

// LedgerStore keeps availability in a local sqlite file. All writes go through
// one connection, so Update is serialized across every course.
type LedgerStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewLedgerStore(db *sqlx.DB, logger *slog.Logger) *LedgerStore {
	return &LedgerStore{db: db, logger: logger}
}

func (s *LedgerStore) Get(ctx context.Context, courseID string) (*course.Availability, error) {
	var row courseRow
	err := s.db.GetContext(ctx, &row, `
SELECT course_id, title, capacity, enrolled, status, created_at, updated_at
FROM course_availability WHERE course_id = ?`, courseID)
	if err != nil {
		return nil, s.wrapErr("failed to get course availability", err)
	}
	return toDomain(row)
}

func (s *LedgerStore) Create(ctx context.Context, a *course.Availability, prerequisites []string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO course_availability(course_id, title, capacity, enrolled, status, created_at, updated_at)
VALUES (?, ?, ?, 0, ?, ?, ?)`,
			a.CourseID(), a.Title(), a.Capacity(), a.Status().String(),
			a.CreatedAt().UTC().Format(timeLayout), a.UpdatedAt().UTC().Format(timeLayout))
		if err != nil {
			return s.wrapErr("failed to insert course", err)
		}

		for i, p := range prerequisites {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO course_prerequisites(course_id, prerequisite_id, position) VALUES (?, ?, ?)`,
				a.CourseID(), p, i)
			if err != nil {
				return s.wrapErr("failed to insert prerequisite", err)
			}
		}
		return nil
	})
}

func (s *LedgerStore) Update(ctx context.Context, courseID string, fn func(a *course.Availability) error) (*course.Availability, error) {
	var updated *course.Availability
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var row courseRow
		err := tx.GetContext(ctx, &row, `
SELECT course_id, title, capacity, enrolled, status, created_at, updated_at
FROM course_availability WHERE course_id = ?`, courseID)
		if err != nil {
			return s.wrapErr("failed to load course availability", err)
		}

		a, err := toDomain(row)
		if err != nil {
			return err
		}
		if err := fn(a); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
UPDATE course_availability SET enrolled = ?, status = ?, updated_at = ?
WHERE course_id = ?`,
			a.Enrolled(), a.Status().String(), a.UpdatedAt().UTC().Format(timeLayout), a.CourseID())
		if err != nil {
			return s.wrapErr("failed to update course availability", err)
		}
		if n, err := res.RowsAffected(); err != nil || n != 1 {
			return infra.WrapRepoErr(s.logger, infra.KindNotFound, "course disappeared during update", err)
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
	var exists bool
	if err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM course_availability WHERE course_id = ?)`, courseID); err != nil {
		return nil, s.wrapErr("failed to check course", err)
	}
	if !exists {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "course not found", nil)
	}

	out := []string{}
	if err := s.db.SelectContext(ctx, &out,
		`SELECT prerequisite_id FROM course_prerequisites WHERE course_id = ? ORDER BY position`, courseID); err != nil {
		return nil, s.wrapErr("failed to list prerequisites", err)
	}
	return out, nil
}

func (s *LedgerStore) Completions(ctx context.Context, studentID string) ([]string, error) {
	out := []string{}
	if err := s.db.SelectContext(ctx, &out,
		`SELECT course_id FROM student_completions WHERE student_id = ? ORDER BY completed_at, course_id`, studentID); err != nil {
		return nil, s.wrapErr("failed to list completions", err)
	}
	return out, nil
}

func (s *LedgerStore) RecordCompletion(ctx context.Context, studentID, courseID string, completedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO student_completions(student_id, course_id, completed_at) VALUES (?, ?, ?)
ON CONFLICT(student_id, course_id) DO NOTHING`,
		studentID, courseID, completedAt.UTC().Format(timeLayout))
	if err != nil {
		return s.wrapErr("failed to record completion", err)
	}
	return nil
}

func (s *LedgerStore) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return s.wrapErr("failed to begin transaction", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.Warn("rollback failed", "error", rbErr.Error())
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return s.wrapErr("failed to commit transaction", err)
	}
	return nil
}

func (s *LedgerStore) wrapErr(msg string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return infra.WrapRepoErr(s.logger, infra.KindNotFound, msg, err)
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, msg, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return infra.WrapRepoErr(s.logger, infra.KindForeignKeyViolated, msg, err)
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return infra.WrapRepoErr(s.logger, infra.KindCheckViolated, msg, err)
		}
	}

	return infra.WrapRepoErr(s.logger, infra.KindDBFailure, msg, err)
}

func toDomain(row courseRow) (*course.Availability, error) {
	createdAt, err := time.Parse(timeLayout, row.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(timeLayout, row.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return course.ReconstructAvailability(
		row.CourseID,
		row.Title,
		row.Capacity,
		row.Enrolled,
		course.Status(row.Status),
		createdAt,
		updatedAt,
	)
}
