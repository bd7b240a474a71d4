//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool, pgx.Tx and *pgx.Conn.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SeedCourse inserts an availability row and its prerequisites in declared order.
func SeedCourse(t *testing.T, db DBLike, courseID string, capacity, enrolled int, prerequisites ...string) {
	t.Helper()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO course_availability (course_id, title, capacity, enrolled, status) VALUES ($1, $2, $3, $4, 'ACTIVE')",
		courseID, "Course "+courseID, capacity, enrolled)
	require.NoError(t, err)

	for i, p := range prerequisites {
		_, err := db.Exec(ctx,
			"INSERT INTO course_prerequisites (course_id, prerequisite_id, position) VALUES ($1, $2, $3)",
			courseID, p, i)
		require.NoError(t, err)
	}
}

func SeedCompletion(t *testing.T, db DBLike, studentID, courseID string) {
	t.Helper()
	_, err := db.Exec(context.Background(),
		"INSERT INTO student_completions (student_id, course_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		studentID, courseID)
	require.NoError(t, err)
}

func Enrolled(t *testing.T, db DBLike, courseID string) int {
	t.Helper()
	var enrolled int
	err := db.QueryRow(context.Background(),
		"SELECT enrolled FROM course_availability WHERE course_id = $1", courseID).Scan(&enrolled)
	require.NoError(t, err)
	return enrolled
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
