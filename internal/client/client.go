// Package client is the facade other services use to reach auth, courses and
// notifications. Every call returns either a value or a *Error.
package client

import "context"

type AuthClient interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}

type CoursesClient interface {
	GetCourseByID(ctx context.Context, courseID string) (*Course, error)
	CheckCourseAvailability(ctx context.Context, courseID string) (*Availability, error)
	CheckPrerequisites(ctx context.Context, courseID, studentID string) (*PrerequisiteCheck, error)
	ReserveSlots(ctx context.Context, courseID string, slots int) (*Availability, error)
	ReleaseSlots(ctx context.Context, courseID string, slots int) (*Availability, error)
	ReserveForEnrollment(ctx context.Context, courseID, studentID string, slots int) (*Availability, error)
	ReleaseForCancellation(ctx context.Context, courseID string, slots int, compensating bool) (*Availability, error)
}

type NotificationClient interface {
	SendNotification(ctx context.Context, n Notification) (*NotificationReceipt, error)
}

type ctxKey int

const (
	idempotencyKeyCtx ctxKey = iota
	bearerTokenCtx
)

// WithIdempotencyKey makes the next mutating call carry key. Retries of the same
// logical operation must reuse it.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKeyCtx, key)
}

func IdempotencyKey(ctx context.Context) string {
	key, _ := ctx.Value(idempotencyKeyCtx).(string)
	return key
}

// WithBearerToken forwards the end user's token to downstream calls.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerTokenCtx, token)
}

func BearerToken(ctx context.Context) string {
	token, _ := ctx.Value(bearerTokenCtx).(string)
	return token
}
