package postgres

import (
	"course-reservation/internal/domain/course"
	"course-reservation/internal/pkg/pgconv"
)

func toDomain(row CourseAvailabilityRow) (*course.Availability, error) {
	return course.ReconstructAvailability(
		row.CourseID,
		row.Title,
		int(row.Capacity),
		int(row.Enrolled),
		course.Status(row.Status),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func toInsertParams(a *course.Availability) (InsertCourseParams, error) {
	capacity, err := pgconv.Int32FromInt(a.Capacity())
	if err != nil {
		return InsertCourseParams{}, err
	}
	return InsertCourseParams{
		CourseID:  a.CourseID(),
		Title:     a.Title(),
		Capacity:  capacity,
		Status:    a.Status().String(),
		CreatedAt: pgconv.TimestamptzFromTime(a.CreatedAt()),
	}, nil
}

func toUpdateParams(a *course.Availability) UpdateCourseParams {
	return UpdateCourseParams{
		CourseID:  a.CourseID(),
		Enrolled:  int32(a.Enrolled()), // #nosec G115 -- enrolled <= capacity, which fit on insert
		Status:    a.Status().String(),
		UpdatedAt: pgconv.TimestamptzFromTime(a.UpdatedAt()),
	}
}
