package postgres

import (
	"context"

	"course-reservation/internal/infra/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type CourseAvailabilityRow struct {
	CourseID  string
	Title     string
	Capacity  int32
	Enrolled  int32
	Status    string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type InsertCourseParams struct {
	CourseID  string
	Title     string
	Capacity  int32
	Status    string
	CreatedAt pgtype.Timestamptz
}

type UpdateCourseParams struct {
	CourseID  string
	Enrolled  int32
	Status    string
	UpdatedAt pgtype.Timestamptz
}

// Queries holds the SQL of the ledger tables. Every method takes the DBTX to run
// on so it works inside a unit of work.
type Queries struct{}

func NewQueries() *Queries {
	return &Queries{}
}

const getCourseAvailability = `
SELECT course_id, title, capacity, enrolled, status, created_at, updated_at
FROM course_availability
WHERE course_id = $1`

func (q *Queries) GetCourseAvailability(ctx context.Context, dbtx db.DBTX, courseID string) (CourseAvailabilityRow, error) {
	return scanCourse(dbtx.QueryRow(ctx, getCourseAvailability, courseID))
}

const getCourseAvailabilityForUpdate = getCourseAvailability + `
FOR UPDATE`

func (q *Queries) GetCourseAvailabilityForUpdate(ctx context.Context, dbtx db.DBTX, courseID string) (CourseAvailabilityRow, error) {
	return scanCourse(dbtx.QueryRow(ctx, getCourseAvailabilityForUpdate, courseID))
}

const insertCourse = `
INSERT INTO course_availability (course_id, title, capacity, enrolled, status, created_at, updated_at)
VALUES ($1, $2, $3, 0, $4, $5, $5)`

func (q *Queries) InsertCourse(ctx context.Context, dbtx db.DBTX, arg InsertCourseParams) error {
	_, err := dbtx.Exec(ctx, insertCourse, arg.CourseID, arg.Title, arg.Capacity, arg.Status, arg.CreatedAt)
	return err
}

const updateCourse = `
UPDATE course_availability
SET enrolled = $2, status = $3, updated_at = $4
WHERE course_id = $1`

func (q *Queries) UpdateCourse(ctx context.Context, dbtx db.DBTX, arg UpdateCourseParams) (int64, error) {
	tag, err := dbtx.Exec(ctx, updateCourse, arg.CourseID, arg.Enrolled, arg.Status, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const insertPrerequisite = `
INSERT INTO course_prerequisites (course_id, prerequisite_id, position)
VALUES ($1, $2, $3)`

func (q *Queries) InsertPrerequisite(ctx context.Context, dbtx db.DBTX, courseID, prerequisiteID string, position int32) error {
	_, err := dbtx.Exec(ctx, insertPrerequisite, courseID, prerequisiteID, position)
	return err
}

const listPrerequisites = `
SELECT prerequisite_id
FROM course_prerequisites
WHERE course_id = $1
ORDER BY position`

func (q *Queries) ListPrerequisites(ctx context.Context, dbtx db.DBTX, courseID string) ([]string, error) {
	return queryStrings(ctx, dbtx, listPrerequisites, courseID)
}

const courseExists = `
SELECT EXISTS (SELECT 1 FROM course_availability WHERE course_id = $1)`

func (q *Queries) CourseExists(ctx context.Context, dbtx db.DBTX, courseID string) (bool, error) {
	var exists bool
	err := dbtx.QueryRow(ctx, courseExists, courseID).Scan(&exists)
	return exists, err
}

const listCompletions = `
SELECT course_id
FROM student_completions
WHERE student_id = $1
ORDER BY completed_at, course_id`

func (q *Queries) ListCompletions(ctx context.Context, dbtx db.DBTX, studentID string) ([]string, error) {
	return queryStrings(ctx, dbtx, listCompletions, studentID)
}

const insertCompletion = `
INSERT INTO student_completions (student_id, course_id, completed_at)
VALUES ($1, $2, $3)
ON CONFLICT (student_id, course_id) DO NOTHING`

func (q *Queries) InsertCompletion(ctx context.Context, dbtx db.DBTX, studentID, courseID string, completedAt pgtype.Timestamptz) error {
	_, err := dbtx.Exec(ctx, insertCompletion, studentID, courseID, completedAt)
	return err
}

func scanCourse(row pgx.Row) (CourseAvailabilityRow, error) {
	var r CourseAvailabilityRow
	err := row.Scan(&r.CourseID, &r.Title, &r.Capacity, &r.Enrolled, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func queryStrings(ctx context.Context, dbtx db.DBTX, sql string, arg string) ([]string, error) {
	rows, err := dbtx.Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
