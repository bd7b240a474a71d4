package queries

import (
	"time"

	"course-reservation/internal/domain/course"
)

// AvailabilityView is the read shape of one availability record.
type AvailabilityView struct {
	CourseID       string
	Title          string
	Capacity       int
	Enrolled       int
	AvailableSlots int
	Status         string
	IsAvailable    bool
	CanEnroll      bool
	UpdatedAt      time.Time
}

type CourseView struct {
	AvailabilityView
	Prerequisites []string
	CreatedAt     time.Time
}

type PrerequisiteView struct {
	CourseID             string
	StudentID            string
	PrerequisitesMet     bool
	MissingPrerequisites []string
	CanEnroll            bool
}

func NewAvailabilityView(a *course.Availability) *AvailabilityView {
	return &AvailabilityView{
		CourseID:       a.CourseID(),
		Title:          a.Title(),
		Capacity:       a.Capacity(),
		Enrolled:       a.Enrolled(),
		AvailableSlots: a.AvailableSlots(),
		Status:         a.Status().String(),
		IsAvailable:    a.IsAvailable(),
		CanEnroll:      a.CanEnroll(),
		UpdatedAt:      a.UpdatedAt(),
	}
}

func NewCourseView(a *course.Availability, prerequisites []string) *CourseView {
	if prerequisites == nil {
		prerequisites = []string{}
	}
	return &CourseView{
		AvailabilityView: *NewAvailabilityView(a),
		Prerequisites:    prerequisites,
		CreatedAt:        a.CreatedAt(),
	}
}

func NewPrerequisiteView(r course.PrerequisiteResult) *PrerequisiteView {
	return &PrerequisiteView{
		CourseID:             r.CourseID,
		StudentID:            r.StudentID,
		PrerequisitesMet:     r.Met(),
		MissingPrerequisites: r.Missing,
		CanEnroll:            r.Met(),
	}
}
