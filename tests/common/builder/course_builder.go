//go:build unit || e2e

package builder

import (
	"time"

	"course-reservation/internal/domain/course"
	reqdto "course-reservation/internal/handler/dto/request"
	"course-reservation/internal/usecase/queries"
)

type CourseBuilder struct {
	CourseID      string
	Title         string
	Capacity      int
	Enrolled      int
	Status        course.Status
	Prerequisites []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewCourseBuilder() *CourseBuilder {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	return &CourseBuilder{
		CourseID:      "CS101",
		Title:         "Introduction to Computer Science",
		Capacity:      30,
		Enrolled:      0,
		Status:        course.StatusActive,
		Prerequisites: []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (b *CourseBuilder) With(mutate func(*CourseBuilder)) *CourseBuilder {
	mutate(b)
	return b
}

func (b *CourseBuilder) WithCourseID(id string) *CourseBuilder {
	b.CourseID = id
	return b
}

func (b *CourseBuilder) WithCapacity(capacity int) *CourseBuilder {
	b.Capacity = capacity
	return b
}

func (b *CourseBuilder) WithEnrolled(enrolled int) *CourseBuilder {
	b.Enrolled = enrolled
	return b
}

func (b *CourseBuilder) WithStatus(status course.Status) *CourseBuilder {
	b.Status = status
	return b
}

func (b *CourseBuilder) WithPrerequisites(ids ...string) *CourseBuilder {
	b.Prerequisites = ids
	return b
}

// BuildNew goes through NewAvailability, so Enrolled and Status are ignored.
func (b *CourseBuilder) BuildNew() (*course.Availability, error) {
	return course.NewAvailability(b.CourseID, b.Title, b.Capacity, b.CreatedAt)
}

func (b *CourseBuilder) BuildDomain() (*course.Availability, error) {
	return course.ReconstructAvailability(b.CourseID, b.Title, b.Capacity, b.Enrolled, b.Status, b.CreatedAt, b.UpdatedAt)
}

// MustBuildDomain is for fixtures known to be valid.
func (b *CourseBuilder) MustBuildDomain() *course.Availability {
	a, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return a
}

func (b *CourseBuilder) BuildPublishRequestDTO() reqdto.PublishCourseRequest {
	capacity := b.Capacity
	return reqdto.PublishCourseRequest{
		CourseID:      b.CourseID,
		Title:         b.Title,
		Capacity:      &capacity,
		Prerequisites: b.Prerequisites,
	}
}

func (b *CourseBuilder) BuildAvailabilityView() *queries.AvailabilityView {
	return queries.NewAvailabilityView(b.MustBuildDomain())
}

func (b *CourseBuilder) BuildCourseView() *queries.CourseView {
	return queries.NewCourseView(b.MustBuildDomain(), b.Prerequisites)
}
