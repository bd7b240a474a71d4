//go:build unit

package postgres

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"course-reservation/internal/domain/course"
	"course-reservation/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerStore_wrapErr(t *testing.T) {
	s := &LedgerStore{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	cases := []struct {
		name string
		err  error
		want infra.RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: infra.KindNotFound},
		{name: "unique", err: &pgconn.PgError{Code: pgErrUniqueViolation}, want: infra.KindDuplicateKey},
		{name: "foreign key", err: &pgconn.PgError{Code: pgErrForeignKeyViolation}, want: infra.KindForeignKeyViolated},
		{name: "check", err: &pgconn.PgError{Code: pgErrCheckViolation}, want: infra.KindCheckViolated},
		{name: "other", err: errors.New("conn reset"), want: infra.KindDBFailure},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.True(t, infra.IsKind(s.wrapErr("op", c.err), c.want))
		})
	}

	t.Run("pg error survives wrapping for retry detection", func(t *testing.T) {
		wrapped := s.wrapErr("op", &pgconn.PgError{Code: "40001"})
		var pgErr *pgconn.PgError
		require.True(t, errors.As(wrapped, &pgErr))
		assert.Equal(t, "40001", pgErr.Code)
	})
}

func TestConverter(t *testing.T) {
	created := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	row := CourseAvailabilityRow{
		CourseID:  "CS101",
		Title:     "Intro",
		Capacity:  30,
		Enrolled:  5,
		Status:    "ACTIVE",
		CreatedAt: pgtype.Timestamptz{Time: created, Valid: true},
		UpdatedAt: pgtype.Timestamptz{Time: created, Valid: true},
	}

	a, err := toDomain(row)
	require.NoError(t, err)
	assert.Equal(t, 25, a.AvailableSlots())
	assert.Equal(t, course.StatusActive, a.Status())

	params := toUpdateParams(a)
	assert.Equal(t, int32(5), params.Enrolled)
	assert.Equal(t, "ACTIVE", params.Status)

	row.Enrolled = 31
	_, err = toDomain(row)
	assert.Error(t, err)
}
