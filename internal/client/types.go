package client

import "time"

// Result is the wire envelope of every courses-service response.
type Result[T any] struct {
	Success bool       `json:"success"`
	Data    T          `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Kind                 string   `json:"kind"`
	Message              string   `json:"message"`
	MissingPrerequisites []string `json:"missingPrerequisites,omitempty"`
}

type Identity struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Availability struct {
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

type Course struct {
	Availability
	Prerequisites []string  `json:"prerequisites"`
	CreatedAt     time.Time `json:"createdAt"`
}

type PrerequisiteCheck struct {
	CourseID             string   `json:"courseId"`
	StudentID            string   `json:"studentId"`
	PrerequisitesMet     bool     `json:"prerequisitesMet"`
	MissingPrerequisites []string `json:"missingPrerequisites"`
	CanEnroll            bool     `json:"canEnroll"`
}

type Notification struct {
	Recipient string            `json:"recipient"`
	Type      string            `json:"type"`
	Subject   string            `json:"subject"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
}

type NotificationReceipt struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
