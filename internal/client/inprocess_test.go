//go:build unit

package client_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"course-reservation/internal/client"
	"course-reservation/internal/infra/email"
	"course-reservation/internal/infra/memory"
	"course-reservation/internal/infra/messaging"
	"course-reservation/internal/pkg/clock"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/pkg/jwt"
	"course-reservation/internal/pkg/retry"
	"course-reservation/internal/usecase"
	"course-reservation/internal/usecase/commands"
	"course-reservation/internal/usecase/queries"
	"course-reservation/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInProcessCourses(t *testing.T) *client.InProcessCourses {
	t.Helper()
	store := memory.NewLedgerStore(discardLogger())
	for _, b := range []*builder.CourseBuilder{
		builder.NewCourseBuilder().WithEnrolled(5),
		builder.NewCourseBuilder().WithCourseID("CS201").WithPrerequisites("CS101"),
	} {
		require.NoError(t, store.Create(context.Background(), b.MustBuildDomain(), b.Prerequisites))
	}

	ledger := commands.NewLedgerCommands(store, messaging.NoopPublisher{}, clock.NewRealClock(), discardLogger())
	q := queries.NewCourseQueries(store, store)
	reservations := commands.NewReservationCommands(ledger, q, retry.DefaultPolicy(), discardLogger())
	return client.NewInProcessCourses(q, ledger, reservations)
}

func TestInProcessCourses(t *testing.T) {
	ctx := context.Background()
	courses := newInProcessCourses(t)

	avail, err := courses.ReserveForEnrollment(ctx, "CS101", "student-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 6, avail.Enrolled)
	assert.Equal(t, 24, avail.AvailableSlots)

	avail, err = courses.ReleaseForCancellation(ctx, "CS101", 1, true)
	require.NoError(t, err)
	assert.Equal(t, 5, avail.Enrolled)

	_, err = courses.ReserveForEnrollment(ctx, "CS201", "student-1", 1)
	var ce *client.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, errs.KindPrerequisitesNotMet, ce.Kind)
	assert.Equal(t, []string{"CS101"}, ce.MissingPrerequisites)
	assert.False(t, ce.Indeterminate())

	_, err = courses.ReleaseSlots(ctx, "CS101", 99)
	assert.Equal(t, errs.KindInvalidRelease, errs.KindOf(err))

	course, err := courses.GetCourseByID(ctx, "CS201")
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101"}, course.Prerequisites)

	check, err := courses.CheckPrerequisites(ctx, "CS201", "student-1")
	require.NoError(t, err)
	assert.False(t, check.PrerequisitesMet)

	_, err = courses.CheckCourseAvailability(ctx, "NOPE")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestInProcessAuth(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour)
	auth := client.NewInProcessAuth(usecase.NewTokenValidator(svc))

	token, err := svc.GenerateToken(jwt.Claims{UserID: "u1", Email: "u1@example.edu", Role: "instructor", FirstName: "Grace"})
	require.NoError(t, err)

	id, err := auth.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, &client.Identity{UserID: "u1", Email: "u1@example.edu", Role: "instructor", FirstName: "Grace"}, id)

	_, err = auth.VerifyToken(context.Background(), "not-a-token")
	assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
}

type stubSender struct {
	sent []email.Message
	err  error
}

func (s *stubSender) Send(_ context.Context, msg email.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, msg)
	return "msg-1", nil
}

func TestInProcessNotifications(t *testing.T) {
	t.Run("sends as e-mail", func(t *testing.T) {
		sender := &stubSender{}
		n := client.NewInProcessNotifications(sender, discardLogger())

		receipt, err := n.SendNotification(context.Background(), client.Notification{
			Recipient: "s1@example.edu",
			Type:      "enrollment_confirmed",
			Subject:   "Enrolled",
			Message:   "You are enrolled in <CS101>",
			Data:      map[string]string{"course": "CS101"},
		})
		require.NoError(t, err)
		assert.Equal(t, &client.NotificationReceipt{ID: "msg-1", Status: "sent"}, receipt)
		require.Len(t, sender.sent, 1)
		assert.Contains(t, sender.sent[0].HTML, "&lt;CS101&gt;")
	})

	t.Run("provider failure is unavailable", func(t *testing.T) {
		n := client.NewInProcessNotifications(&stubSender{err: errors.New("resend down")}, discardLogger())

		_, err := n.SendNotification(context.Background(), client.Notification{Recipient: "s1@example.edu"})
		assert.Equal(t, errs.KindUnavailable, errs.KindOf(err))
	})

	t.Run("recipient required", func(t *testing.T) {
		n := client.NewInProcessNotifications(&stubSender{}, discardLogger())

		_, err := n.SendNotification(context.Background(), client.Notification{})
		assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
	})
}
