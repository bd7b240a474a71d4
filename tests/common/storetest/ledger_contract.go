//go:build unit || e2e

// Package storetest holds behaviour every ledger backend must share.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"course-reservation/internal/domain/course"
	"course-reservation/internal/infra"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/usecase/shared"
	"course-reservation/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Store interface {
	shared.LedgerStore
	shared.PrerequisiteStore
}

// RunLedgerStoreContract runs the shared suite; newStore must return an empty store.
func RunLedgerStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	create := func(t *testing.T, s Store, b *builder.CourseBuilder) {
		t.Helper()
		a, err := b.BuildNew()
		require.NoError(t, err)
		require.NoError(t, s.Create(ctx, a, b.Prerequisites))
	}

	t.Run("get unknown course", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "NOPE")
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
	})

	t.Run("create then get", func(t *testing.T) {
		s := newStore(t)
		create(t, s, builder.NewCourseBuilder().WithCapacity(30))

		a, err := s.Get(ctx, "CS101")
		require.NoError(t, err)
		assert.Equal(t, 30, a.Capacity())
		assert.Equal(t, 0, a.Enrolled())
		assert.Equal(t, course.StatusActive, a.Status())
		assert.True(t, a.CreatedAt().Equal(now))
	})

	t.Run("duplicate create", func(t *testing.T) {
		s := newStore(t)
		create(t, s, builder.NewCourseBuilder())

		a, err := builder.NewCourseBuilder().BuildNew()
		require.NoError(t, err)
		err = s.Create(ctx, a, nil)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey), "got %v", err)
	})

	t.Run("update commits on success", func(t *testing.T) {
		s := newStore(t)
		create(t, s, builder.NewCourseBuilder().WithCapacity(30))

		later := now.Add(time.Hour)
		updated, err := s.Update(ctx, "CS101", func(a *course.Availability) error {
			return a.Debit(5, later)
		})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Enrolled())

		got, err := s.Get(ctx, "CS101")
		require.NoError(t, err)
		assert.Equal(t, 5, got.Enrolled())
		assert.Equal(t, 25, got.AvailableSlots())
		assert.True(t, got.UpdatedAt().Equal(later))
	})

	t.Run("update leaves state untouched when fn fails", func(t *testing.T) {
		s := newStore(t)
		create(t, s, builder.NewCourseBuilder().WithCapacity(2))

		_, err := s.Update(ctx, "CS101", func(a *course.Availability) error {
			return a.Debit(3, now)
		})
		assert.True(t, errors.Is(err, errs.ErrCapacityExceeded), "got %v", err)

		_, err = s.Update(ctx, "CS101", func(a *course.Availability) error {
			return a.Credit(1, now)
		})
		assert.True(t, errors.Is(err, errs.ErrInvalidRelease), "got %v", err)

		got, err := s.Get(ctx, "CS101")
		require.NoError(t, err)
		assert.Equal(t, 0, got.Enrolled())
	})

	t.Run("update unknown course", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Update(ctx, "NOPE", func(a *course.Availability) error { return nil })
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
	})

	t.Run("status change persists", func(t *testing.T) {
		s := newStore(t)
		create(t, s, builder.NewCourseBuilder())

		_, err := s.Update(ctx, "CS101", func(a *course.Availability) error {
			return a.ChangeStatus(course.StatusClosed, now)
		})
		require.NoError(t, err)

		got, err := s.Get(ctx, "CS101")
		require.NoError(t, err)
		assert.Equal(t, course.StatusClosed, got.Status())
	})

	t.Run("prerequisites keep declared order", func(t *testing.T) {
		s := newStore(t)
		create(t, s, builder.NewCourseBuilder().WithCourseID("CS301").WithPrerequisites("MATH200", "CS101", "CS201"))
		create(t, s, builder.NewCourseBuilder().WithCourseID("CS100"))

		got, err := s.Prerequisites(ctx, "CS301")
		require.NoError(t, err)
		assert.Equal(t, []string{"MATH200", "CS101", "CS201"}, got)

		none, err := s.Prerequisites(ctx, "CS100")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)

		_, err = s.Prerequisites(ctx, "NOPE")
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
	})

	t.Run("completions are recorded once", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.RecordCompletion(ctx, "student-1", "CS101", now))
		require.NoError(t, s.RecordCompletion(ctx, "student-1", "MATH100", now.Add(time.Minute)))
		require.NoError(t, s.RecordCompletion(ctx, "student-1", "CS101", now.Add(time.Hour)))

		got, err := s.Completions(ctx, "student-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"CS101", "MATH100"}, got)

		empty, err := s.Completions(ctx, "student-2")
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("concurrent debits never oversell", func(t *testing.T) {
		s := newStore(t)
		const capacity, workers = 10, 50
		create(t, s, builder.NewCourseBuilder().WithCapacity(capacity))

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			ok       int
			rejected int
			other    []error
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.Update(ctx, "CS101", func(a *course.Availability) error {
					return a.Debit(1, now)
				})
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					ok++
				case errors.Is(err, errs.ErrCapacityExceeded):
					rejected++
				default:
					other = append(other, err)
				}
			}()
		}
		wg.Wait()

		require.Empty(t, other)
		assert.Equal(t, capacity, ok)
		assert.Equal(t, workers-capacity, rejected)

		got, err := s.Get(ctx, "CS101")
		require.NoError(t, err)
		assert.Equal(t, capacity, got.Enrolled())
		assert.Equal(t, 0, got.AvailableSlots())
	})
}
