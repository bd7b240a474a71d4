package request

import (
	"course-reservation/internal/usecase/commands"
)

type PublishCourseRequest struct {
	CourseID      string   `json:"courseId" binding:"required,max=64"`
	Title         string   `json:"title" binding:"max=255"`
	Capacity      *int     `json:"capacity" binding:"required,min=0"`
	Prerequisites []string `json:"prerequisites" binding:"omitempty,dive,required,max=64"`
}

func (r PublishCourseRequest) ToInput() commands.PublishCourseInput {
	return commands.PublishCourseInput{
		CourseID:      r.CourseID,
		Title:         r.Title,
		Capacity:      *r.Capacity,
		Prerequisites: r.Prerequisites,
	}
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE CLOSED CANCELLED"`
}

type RecordCompletionRequest struct {
	CourseID string `json:"courseId" binding:"required,max=64"`
}
