//go:build unit

package enrollment_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"course-reservation/internal/client"
	"course-reservation/internal/domain/reservation"
	"course-reservation/internal/enrollment"
	"course-reservation/internal/pkg/clock"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/pkg/retry"
	clientmock "course-reservation/tests/mock/client"
	enrollmentmock "course-reservation/tests/mock/enrollment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var (
	testNow  = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	student  = &client.Identity{UserID: "student-1", Email: "s1@example.edu", Role: "student"}
	afterOne = &client.Availability{CourseID: "CS101", Capacity: 30, Enrolled: 6, AvailableSlots: 24}
	paid     = enrollment.Payment{AmountCents: 50000, Currency: "usd", Method: "card"}
)

func unavailable() error {
	return &client.Error{Kind: errs.KindUnavailable, Message: "service unreachable"}
}

type CoordinatorTestSuite struct {
	suite.Suite
	ctx           context.Context
	ctrl          *gomock.Controller
	auth          *clientmock.MockAuthClient
	courses       *clientmock.MockCoursesClient
	notifications *clientmock.MockNotificationClient
	payments      *enrollmentmock.MockPaymentGateway
	coordinator   *enrollment.Coordinator
}

func (s *CoordinatorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.auth = clientmock.NewMockAuthClient(s.ctrl)
	s.courses = clientmock.NewMockCoursesClient(s.ctrl)
	s.notifications = clientmock.NewMockNotificationClient(s.ctrl)
	s.payments = enrollmentmock.NewMockPaymentGateway(s.ctrl)

	policy := retry.Policy{InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond, MaxRetries: 3}
	s.coordinator = enrollment.NewCoordinator(s.auth, s.courses, s.notifications, s.payments, policy,
		clock.NewMockClock(testNow), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *CoordinatorTestSuite) TearDownTest() {
	s.coordinator.Wait()
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}

func (s *CoordinatorTestSuite) TestEnrollConfirmed() {
	var reserveKey string
	s.auth.EXPECT().VerifyToken(gomock.Any(), "token").Return(student, nil)
	s.courses.EXPECT().ReserveForEnrollment(gomock.Any(), "CS101", "student-1", 1).
		DoAndReturn(func(ctx context.Context, _, _ string, _ int) (*client.Availability, error) {
			reserveKey = client.IdempotencyKey(ctx)
			s.Equal("token", client.BearerToken(ctx))
			return afterOne, nil
		})
	s.payments.EXPECT().Charge(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req enrollment.ChargeRequest) (*enrollment.ChargeReceipt, error) {
			s.Equal(reserveKey, req.IdempotencyKey)
			s.Equal(int64(50000), req.AmountCents)
			return &enrollment.ChargeReceipt{PaymentID: "pay-1", Status: "succeeded"}, nil
		})
	s.notifications.EXPECT().SendNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n client.Notification) (*client.NotificationReceipt, error) {
			s.Equal("s1@example.edu", n.Recipient)
			s.Equal("enrollment_confirmed", n.Type)
			return &client.NotificationReceipt{ID: "n-1", Status: "sent"}, nil
		})

	out, err := s.coordinator.Enroll(s.ctx, "token", "CS101", 1, paid)
	s.coordinator.Wait()

	s.Require().NoError(err)
	s.Equal(reservation.StateConfirmed, out.State)
	s.Equal("pay-1", out.PaymentID)
	s.Equal(24, out.Availability.AvailableSlots)
	s.NotEmpty(reserveKey)
}

func (s *CoordinatorTestSuite) TestNotificationFailureDoesNotRollBack() {
	s.auth.EXPECT().VerifyToken(gomock.Any(), "token").Return(student, nil)
	s.courses.EXPECT().ReserveForEnrollment(gomock.Any(), "CS101", "student-1", 1).Return(afterOne, nil)
	s.payments.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(&enrollment.ChargeReceipt{PaymentID: "pay-1"}, nil)
	s.notifications.EXPECT().SendNotification(gomock.Any(), gomock.Any()).Return(nil, unavailable())
	s.courses.EXPECT().ReleaseForCancellation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	out, err := s.coordinator.Enroll(s.ctx, "token", "CS101", 1, paid)
	s.coordinator.Wait()

	s.Require().NoError(err)
	s.Equal(reservation.StateConfirmed, out.State)
}

func (s *CoordinatorTestSuite) TestUnauthorizedIsRejected() {
	s.auth.EXPECT().VerifyToken(gomock.Any(), "bad").Return(nil, &client.Error{Kind: errs.KindUnauthorized, Message: "invalid token"})

	out, err := s.coordinator.Enroll(s.ctx, "bad", "CS101", 1, paid)

	s.Equal(errs.KindUnauthorized, errs.KindOf(err))
	s.Equal(reservation.StateRejected, out.State)
}

func (s *CoordinatorTestSuite) TestBusinessRejection() {
	tests := []struct {
		name        string
		err         *client.Error
		wantMissing []string
	}{
		{name: "capacity exceeded", err: &client.Error{Kind: errs.KindCapacityExceeded, Message: "capacity exceeded"}},
		{name: "prerequisites not met", err: &client.Error{Kind: errs.KindPrerequisitesNotMet, MissingPrerequisites: []string{"MATH100"}}, wantMissing: []string{"MATH100"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.auth.EXPECT().VerifyToken(gomock.Any(), "token").Return(student, nil)
			s.courses.EXPECT().ReserveForEnrollment(gomock.Any(), "CS101", "student-1", 1).Return(nil, tt.err)

			out, err := s.coordinator.Enroll(s.ctx, "token", "CS101", 1, paid)

			s.Equal(reservation.StateRejected, out.State)
			s.Equal(string(tt.err.Kind), out.Reason)
			var ce *client.Error
			s.Require().ErrorAs(err, &ce)
			s.Equal(tt.wantMissing, ce.MissingPrerequisites)
			s.False(errs.Is(err, enrollment.ErrIndeterminate))
		})
	}
}

func (s *CoordinatorTestSuite) TestTimeoutOnReserveIssuesNoRelease() {
	s.auth.EXPECT().VerifyToken(gomock.Any(), "token").Return(student, nil)
	s.courses.EXPECT().ReserveForEnrollment(gomock.Any(), "CS101", "student-1", 1).
		Return(nil, &client.Error{Kind: errs.KindTimeout, Message: "request timed out"})
	s.courses.EXPECT().ReleaseForCancellation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	s.payments.EXPECT().Charge(gomock.Any(), gomock.Any()).Times(0)

	out, err := s.coordinator.Enroll(s.ctx, "token", "CS101", 1, paid)

	s.True(errs.Is(err, enrollment.ErrIndeterminate))
	s.Equal(errs.KindTimeout, errs.KindOf(err))
	s.Equal(reservation.StateIndeterminate, out.State)
}

func (s *CoordinatorTestSuite) TestCancelledBeforeReserve() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	s.auth.EXPECT().VerifyToken(gomock.Any(), "token").Return(student, nil)
	s.courses.EXPECT().ReserveForEnrollment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	out, err := s.coordinator.Enroll(ctx, "token", "CS101", 1, paid)

	s.Error(err)
	s.Equal(reservation.StateRejected, out.State)
}

func (s *CoordinatorTestSuite) TestPaymentFailureRollsBackWithRetries() {
	var keys []string
	s.auth.EXPECT().VerifyToken(gomock.Any(), "token").Return(student, nil)
	s.courses.EXPECT().ReserveForEnrollment(gomock.Any(), "CS101", "student-1", 1).Return(afterOne, nil)
	s.payments.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(nil, errors.New("card declined"))

	record := func(ctx context.Context, _ string, _ int, _ bool) {
		keys = append(keys, client.IdempotencyKey(ctx))
	}
	gomock.InOrder(
		s.courses.EXPECT().ReleaseForCancellation(gomock.Any(), "CS101", 1, true).Do(record).Return(nil, unavailable()),
		s.courses.EXPECT().ReleaseForCancellation(gomock.Any(), "CS101", 1, true).Do(record).Return(nil, unavailable()),
		s.courses.EXPECT().ReleaseForCancellation(gomock.Any(), "CS101", 1, true).Do(record).
			Return(&client.Availability{CourseID: "CS101", Enrolled: 5, AvailableSlots: 25}, nil),
	)

	out, err := s.coordinator.Enroll(s.ctx, "token", "CS101", 1, paid)

	s.True(errs.Is(err, enrollment.ErrPaymentFailed))
	s.Equal(reservation.StateRolledBack, out.State)
	s.Require().Len(keys, 3)
	s.Equal(keys[0], keys[1])
	s.Equal(keys[1], keys[2])
}

func (s *CoordinatorTestSuite) TestReleaseGivesUpAndReportsLeak() {
	s.auth.EXPECT().VerifyToken(gomock.Any(), "token").Return(student, nil)
	s.courses.EXPECT().ReserveForEnrollment(gomock.Any(), "CS101", "student-1", 1).Return(afterOne, nil)
	s.payments.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(nil, errors.New("card declined"))
	s.courses.EXPECT().ReleaseForCancellation(gomock.Any(), "CS101", 1, true).Return(nil, unavailable()).Times(4)

	out, err := s.coordinator.Enroll(s.ctx, "token", "CS101", 1, paid)

	s.True(errs.Is(err, enrollment.ErrSeatLeaked))
	s.Equal(reservation.StateDebited, out.State)
}

func (s *CoordinatorTestSuite) TestReleaseBusinessErrorIsNotRetried() {
	s.auth.EXPECT().VerifyToken(gomock.Any(), "token").Return(student, nil)
	s.courses.EXPECT().ReserveForEnrollment(gomock.Any(), "CS101", "student-1", 1).Return(afterOne, nil)
	s.payments.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(nil, errors.New("card declined"))
	s.courses.EXPECT().ReleaseForCancellation(gomock.Any(), "CS101", 1, true).
		Return(nil, &client.Error{Kind: errs.KindInvalidRelease}).Times(1)

	_, err := s.coordinator.Enroll(s.ctx, "token", "CS101", 1, paid)

	s.True(errs.Is(err, enrollment.ErrSeatLeaked))
}

func (s *CoordinatorTestSuite) TestCancelledDuringChargeStillConfirms() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	s.auth.EXPECT().VerifyToken(gomock.Any(), "token").Return(student, nil)
	s.courses.EXPECT().ReserveForEnrollment(gomock.Any(), "CS101", "student-1", 1).Return(afterOne, nil)
	s.payments.EXPECT().Charge(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, enrollment.ChargeRequest) (*enrollment.ChargeReceipt, error) {
			cancel()
			return &enrollment.ChargeReceipt{PaymentID: "pay-1", Status: "succeeded"}, nil
		})
	s.courses.EXPECT().ReleaseForCancellation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	s.notifications.EXPECT().SendNotification(gomock.Any(), gomock.Any()).
		Return(&client.NotificationReceipt{ID: "n-1", Status: "sent"}, nil)

	out, err := s.coordinator.Enroll(ctx, "token", "CS101", 1, paid)
	s.coordinator.Wait()

	s.Require().NoError(err)
	s.Equal(reservation.StateConfirmed, out.State)
	s.Equal("pay-1", out.PaymentID)
}

func (s *CoordinatorTestSuite) TestCancelledAfterDebitReleasesWithoutCharge() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	s.auth.EXPECT().VerifyToken(gomock.Any(), "token").Return(student, nil)
	s.courses.EXPECT().ReserveForEnrollment(gomock.Any(), "CS101", "student-1", 1).
		DoAndReturn(func(context.Context, string, string, int) (*client.Availability, error) {
			cancel()
			return afterOne, nil
		})
	s.payments.EXPECT().Charge(gomock.Any(), gomock.Any()).Times(0)
	s.courses.EXPECT().ReleaseForCancellation(gomock.Any(), "CS101", 1, true).
		DoAndReturn(func(ctx context.Context, _ string, _ int, _ bool) (*client.Availability, error) {
			s.NoError(ctx.Err())
			return &client.Availability{CourseID: "CS101", Enrolled: 5, AvailableSlots: 25}, nil
		})

	out, err := s.coordinator.Enroll(ctx, "token", "CS101", 1, paid)

	s.True(errs.Is(err, enrollment.ErrCancelled))
	s.False(errs.Is(err, enrollment.ErrPaymentFailed))
	s.Equal(reservation.StateRolledBack, out.State)
}

func (s *CoordinatorTestSuite) TestReleaseRetriesTransientOutcomes() {
	tests := []struct {
		name     string
		failures []error
	}{
		{
			name: "timeout then duplicate in flight",
			failures: []error{
				&client.Error{Kind: errs.KindTimeout},
				&client.Error{Kind: errs.KindConflict, Message: "request already in progress", InFlight: true},
			},
		},
		{
			name:     "internal error",
			failures: []error{&client.Error{Kind: errs.KindInternal, Message: "boom"}},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.auth.EXPECT().VerifyToken(gomock.Any(), "token").Return(student, nil)
			s.courses.EXPECT().ReserveForEnrollment(gomock.Any(), "CS101", "student-1", 1).Return(afterOne, nil)
			s.payments.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(nil, errors.New("card declined"))

			var calls []any
			for _, failure := range tt.failures {
				calls = append(calls, s.courses.EXPECT().ReleaseForCancellation(gomock.Any(), "CS101", 1, true).Return(nil, failure))
			}
			calls = append(calls, s.courses.EXPECT().ReleaseForCancellation(gomock.Any(), "CS101", 1, true).
				Return(&client.Availability{CourseID: "CS101", Enrolled: 5, AvailableSlots: 25}, nil))
			gomock.InOrder(calls...)

			out, err := s.coordinator.Enroll(s.ctx, "token", "CS101", 1, paid)

			s.True(errs.Is(err, enrollment.ErrPaymentFailed))
			s.False(errs.Is(err, enrollment.ErrSeatLeaked))
			s.Equal(reservation.StateRolledBack, out.State)
		})
	}
}

func (s *CoordinatorTestSuite) TestSettledConflictOnReleaseIsNotRetried() {
	s.auth.EXPECT().VerifyToken(gomock.Any(), "token").Return(student, nil)
	s.courses.EXPECT().ReserveForEnrollment(gomock.Any(), "CS101", "student-1", 1).Return(afterOne, nil)
	s.payments.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(nil, errors.New("card declined"))
	s.courses.EXPECT().ReleaseForCancellation(gomock.Any(), "CS101", 1, true).
		Return(nil, &client.Error{Kind: errs.KindConflict, Message: "idempotency key reused"}).Times(1)

	out, err := s.coordinator.Enroll(s.ctx, "token", "CS101", 1, paid)

	s.True(errs.Is(err, enrollment.ErrSeatLeaked))
	s.Equal(reservation.StateDebited, out.State)
}

func (s *CoordinatorTestSuite) TestFreeEnrollmentSkipsPayment() {
	s.auth.EXPECT().VerifyToken(gomock.Any(), "token").Return(&client.Identity{UserID: "student-1"}, nil)
	s.courses.EXPECT().ReserveForEnrollment(gomock.Any(), "CS101", "student-1", 1).Return(afterOne, nil)
	s.payments.EXPECT().Charge(gomock.Any(), gomock.Any()).Times(0)

	out, err := s.coordinator.Enroll(s.ctx, "token", "CS101", 1, enrollment.Payment{})

	s.Require().NoError(err)
	s.Equal(reservation.StateConfirmed, out.State)
}

func TestCoordinator_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := clientmock.NewMockAuthClient(ctrl)
	courses := clientmock.NewMockCoursesClient(ctrl)
	coordinator := enrollment.NewCoordinator(auth, courses, nil, nil, retry.DefaultPolicy(),
		clock.NewMockClock(testNow), slog.New(slog.NewTextHandler(io.Discard, nil)))

	auth.EXPECT().VerifyToken(gomock.Any(), "token").Return(student, nil).Times(2)
	courses.EXPECT().ReleaseForCancellation(gomock.Any(), "CS101", 1, false).
		Return(&client.Availability{CourseID: "CS101", Enrolled: 5}, nil)
	courses.EXPECT().ReleaseForCancellation(gomock.Any(), "CS101", 9, false).
		Return(nil, &client.Error{Kind: errs.KindInvalidRelease}).Times(1)

	avail, err := coordinator.Cancel(context.Background(), "token", "CS101", 1)
	require.NoError(t, err)
	assert.Equal(t, 5, avail.Enrolled)

	_, err = coordinator.Cancel(context.Background(), "token", "CS101", 9)
	assert.Equal(t, errs.KindInvalidRelease, errs.KindOf(err))
}
