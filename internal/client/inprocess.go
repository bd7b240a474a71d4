package client

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"course-reservation/internal/infra/email"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/usecase"
	"course-reservation/internal/usecase/commands"
	"course-reservation/internal/usecase/queries"
)

// InProcessAuth verifies tokens with the local validator.
type InProcessAuth struct {
	validator usecase.TokenValidator
}

func NewInProcessAuth(validator usecase.TokenValidator) *InProcessAuth {
	return &InProcessAuth{validator: validator}
}

func (a *InProcessAuth) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, AsError(err)
	}
	id, err := a.validator.ValidateToken(token)
	if err != nil {
		return nil, AsError(err)
	}
	return &Identity{
		UserID:    id.UserID,
		Email:     id.Email,
		Role:      id.Role.String(),
		FirstName: id.FirstName,
		LastName:  id.LastName,
	}, nil
}

// InProcessCourses calls the usecase layer directly; used by tests and
// single-binary deployments.
type InProcessCourses struct {
	queries      queries.CourseQueries
	ledger       commands.LedgerCommands
	reservations commands.ReservationCommands
}

func NewInProcessCourses(q queries.CourseQueries, ledger commands.LedgerCommands, reservations commands.ReservationCommands) *InProcessCourses {
	return &InProcessCourses{queries: q, ledger: ledger, reservations: reservations}
}

func toAvailability(v *queries.AvailabilityView) *Availability {
	return &Availability{
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

func availabilityResult(v *queries.AvailabilityView, err error) (*Availability, error) {
	if err != nil {
		return nil, AsError(err)
	}
	return toAvailability(v), nil
}

func (c *InProcessCourses) GetCourseByID(ctx context.Context, courseID string) (*Course, error) {
	v, err := c.queries.GetCourse(ctx, courseID)
	if err != nil {
		return nil, AsError(err)
	}
	return &Course{
		Availability:  *toAvailability(&v.AvailabilityView),
		Prerequisites: v.Prerequisites,
		CreatedAt:     v.CreatedAt,
	}, nil
}

func (c *InProcessCourses) CheckCourseAvailability(ctx context.Context, courseID string) (*Availability, error) {
	return availabilityResult(c.queries.GetAvailability(ctx, courseID))
}

func (c *InProcessCourses) CheckPrerequisites(ctx context.Context, courseID, studentID string) (*PrerequisiteCheck, error) {
	v, err := c.queries.CheckPrerequisites(ctx, courseID, studentID)
	if err != nil {
		return nil, AsError(err)
	}
	return &PrerequisiteCheck{
		CourseID:             v.CourseID,
		StudentID:            v.StudentID,
		PrerequisitesMet:     v.PrerequisitesMet,
		MissingPrerequisites: v.MissingPrerequisites,
		CanEnroll:            v.CanEnroll,
	}, nil
}

func (c *InProcessCourses) ReserveSlots(ctx context.Context, courseID string, slots int) (*Availability, error) {
	return availabilityResult(c.ledger.Debit(ctx, courseID, slots))
}

func (c *InProcessCourses) ReleaseSlots(ctx context.Context, courseID string, slots int) (*Availability, error) {
	return availabilityResult(c.ledger.Credit(ctx, courseID, slots))
}

func (c *InProcessCourses) ReserveForEnrollment(ctx context.Context, courseID, studentID string, slots int) (*Availability, error) {
	return availabilityResult(c.reservations.ReserveForEnrollment(ctx, courseID, studentID, slots))
}

func (c *InProcessCourses) ReleaseForCancellation(ctx context.Context, courseID string, slots int, compensating bool) (*Availability, error) {
	return availabilityResult(c.reservations.ReleaseForCancellation(ctx, courseID, slots, compensating))
}

// InProcessNotifications delivers notifications as e-mail.
type InProcessNotifications struct {
	sender email.Sender
	logger *slog.Logger
}

func NewInProcessNotifications(sender email.Sender, logger *slog.Logger) *InProcessNotifications {
	return &InProcessNotifications{sender: sender, logger: logger}
}

func (n *InProcessNotifications) SendNotification(ctx context.Context, notification Notification) (*NotificationReceipt, error) {
	if strings.TrimSpace(notification.Recipient) == "" {
		return nil, &Error{Kind: errs.KindInvalidArgument, Message: "notification recipient is required"}
	}

	id, err := n.sender.Send(ctx, email.Message{
		To:      []string{notification.Recipient},
		Subject: notification.Subject,
		HTML:    renderNotification(notification),
	})
	if err != nil {
		n.logger.Warn("notification not delivered", "type", notification.Type, "error", err.Error())
		return nil, &Error{Kind: errs.KindUnavailable, Message: "notification delivery failed", Cause: err}
	}
	return &NotificationReceipt{ID: id, Status: "sent"}, nil
}

func renderNotification(n Notification) string {
	var sb strings.Builder
	sb.WriteString("<p>")
	sb.WriteString(html.EscapeString(n.Message))
	sb.WriteString("</p>")
	if len(n.Data) > 0 {
		sb.WriteString("<ul>")
		for _, k := range slices.Sorted(maps.Keys(n.Data)) {
			sb.WriteString(fmt.Sprintf("<li>%s: %s</li>", html.EscapeString(k), html.EscapeString(n.Data[k])))
		}
		sb.WriteString("</ul>")
	}
	return sb.String()
}

var (
	_ AuthClient         = (*InProcessAuth)(nil)
	_ CoursesClient      = (*InProcessCourses)(nil)
	_ NotificationClient = (*InProcessNotifications)(nil)
)
