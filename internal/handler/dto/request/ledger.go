package request

type SlotsRequest struct {
	Slots int `json:"slots" binding:"required,min=1"`
}

// EnrollmentRequest reserves for the caller unless StudentID names someone else.
type EnrollmentRequest struct {
	StudentID string `json:"studentId" binding:"omitempty,max=128"`
	Slots     int    `json:"slots" binding:"required,min=1"`
}

type CancellationRequest struct {
	Slots        int  `json:"slots" binding:"required,min=1"`
	Compensating bool `json:"compensating"`
}
