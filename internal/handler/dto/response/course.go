package response

import (
	"time"

	"course-reservation/internal/usecase/queries"
)

type AvailabilityResponse struct {
	CourseID       string    `json:"courseId"`
	Title          string    `json:"title"`
	Capacity       int       `json:"capacity"`
	Enrolled       int       `json:"enrolled"`
	AvailableSlots int       `json:"availableSlots"`
	Status         string    `json:"status"`
	IsAvailable    bool      `json:"isAvailable"`
	CanEnroll      bool      `json:"canEnroll"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CourseResponse struct {
	AvailabilityResponse
	Prerequisites []string  `json:"prerequisites"`
	CreatedAt     time.Time `json:"createdAt"`
}

type PrerequisiteResponse struct {
	CourseID             string   `json:"courseId"`
	StudentID            string   `json:"studentId"`
	PrerequisitesMet     bool     `json:"prerequisitesMet"`
	MissingPrerequisites []string `json:"missingPrerequisites"`
	CanEnroll            bool     `json:"canEnroll"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	return &AvailabilityResponse{
		CourseID:       v.CourseID,
		Title:          v.Title,
		Capacity:       v.Capacity,
		Enrolled:       v.Enrolled,
		AvailableSlots: v.AvailableSlots,
		Status:         v.Status,
		IsAvailable:    v.IsAvailable,
		CanEnroll:      v.CanEnroll,
		UpdatedAt:      v.UpdatedAt,
	}
}

func FromCourseView(v *queries.CourseView) *CourseResponse {
	return &CourseResponse{
		AvailabilityResponse: *FromAvailabilityView(&v.AvailabilityView),
		Prerequisites:        v.Prerequisites,
		CreatedAt:            v.CreatedAt,
	}
}

func FromPrerequisiteView(v *queries.PrerequisiteView) *PrerequisiteResponse {
	missing := v.MissingPrerequisites
	if missing == nil {
		missing = []string{}
	}
	return &PrerequisiteResponse{
		CourseID:             v.CourseID,
		StudentID:            v.StudentID,
		PrerequisitesMet:     v.PrerequisitesMet,
		MissingPrerequisites: missing,
		CanEnroll:            v.CanEnroll,
	}
}
