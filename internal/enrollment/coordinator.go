// Package enrollment drives one reserve-then-pay flow against the courses service
// through the client facade.
package enrollment

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"course-reservation/internal/client"
	"course-reservation/internal/domain/reservation"
	"course-reservation/internal/pkg/clock"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/pkg/retry"

	"github.com/google/uuid"
)

var (
	ErrIndeterminate = errors.New("enrollment outcome indeterminate")
	ErrPaymentFailed = errors.New("payment failed")
	ErrSeatLeaked    = errors.New("compensating release failed, seat leaked")
	ErrCancelled     = errors.New("enrollment cancelled before payment")
)

const notificationTimeout = 10 * time.Second

type Outcome struct {
	AttemptID    uuid.UUID
	State        reservation.State
	Reason       string
	Availability *client.Availability
	PaymentID    string
}

type Coordinator struct {
	auth          client.AuthClient
	courses       client.CoursesClient
	notifications client.NotificationClient
	payments      PaymentGateway
	policy        retry.Policy
	clock         clock.Clock
	logger        *slog.Logger

	pending sync.WaitGroup
}

func NewCoordinator(
	auth client.AuthClient,
	courses client.CoursesClient,
	notifications client.NotificationClient,
	payments PaymentGateway,
	policy retry.Policy,
	clock clock.Clock,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		auth:          auth,
		courses:       courses,
		notifications: notifications,
		payments:      payments,
		policy:        policy,
		clock:         clock,
		logger:        logger,
	}
}

func outcomeOf(a *reservation.Attempt) *Outcome {
	return &Outcome{AttemptID: a.ID(), State: a.State(), Reason: a.Reason()}
}

// Enroll reserves seats for the token's owner, charges payment and confirms.
// Timeouts on the reserve call leave the attempt INDETERMINATE and issue no release.
// A payment failure after the debit is compensated by a retried release.
func (c *Coordinator) Enroll(ctx context.Context, token, courseID string, slots int, payment Payment) (*Outcome, error) {
	identity, authErr := c.auth.VerifyToken(ctx, token)
	studentID := ""
	if identity != nil {
		studentID = identity.UserID
	}

	attempt, err := reservation.NewAttempt(courseID, studentID, slots, c.clock.Now())
	if err != nil {
		return nil, client.AsError(errs.Mark(err, errs.ErrInvalidArgument))
	}
	log := c.logger.With("attempt_id", attempt.ID().String(), "course_id", courseID, "student_id", studentID)

	if authErr != nil {
		logTransition(log, "reject", attempt.Reject("unauthorized", c.clock.Now()))
		return outcomeOf(attempt), client.AsError(authErr)
	}

	// a caller that already gave up is never charged a seat
	if err := ctx.Err(); err != nil {
		logTransition(log, "reject", attempt.Reject("cancelled before reserve", c.clock.Now()))
		return outcomeOf(attempt), client.AsError(err)
	}

	callCtx := client.WithIdempotencyKey(client.WithBearerToken(ctx, token), attempt.IdempotencyKey())
	avail, err := c.courses.ReserveForEnrollment(callCtx, courseID, studentID, slots)
	if err != nil {
		return c.reserveFailed(attempt, log, err)
	}
	logTransition(log, "prerequisites checked", attempt.MarkPrerequisiteChecked(c.clock.Now()))
	logTransition(log, "debit", attempt.MarkDebited(c.clock.Now()))
	log.Info("seats debited", "slots", slots, "available_slots", avail.AvailableSlots)

	// cancelled between debit and charge: nothing was taken, so give the seats back
	if err := ctx.Err(); err != nil {
		return c.compensate(ctx, token, attempt, log, err, ErrCancelled)
	}

	// once the gateway has returned a receipt the money is taken and the
	// enrollment is confirmed, even if the caller has gone away since
	paymentID, payErr := c.charge(ctx, attempt, payment)
	if payErr != nil {
		return c.compensate(ctx, token, attempt, log, payErr, ErrPaymentFailed)
	}

	logTransition(log, "confirm", attempt.Confirm(c.clock.Now()))
	log.Info("enrollment confirmed", "payment_id", paymentID)

	out := outcomeOf(attempt)
	out.Availability = avail
	out.PaymentID = paymentID

	c.notify(ctx, identity, attempt)
	return out, nil
}

func (c *Coordinator) reserveFailed(attempt *reservation.Attempt, log *slog.Logger, err error) (*Outcome, error) {
	ce := client.AsError(err)
	now := c.clock.Now()

	switch {
	case ce.Indeterminate():
		logTransition(log, "indeterminate", attempt.MarkIndeterminate(string(ce.Kind), now))
		log.Warn("reserve outcome unknown, no release issued", "kind", ce.Kind, "error", ce.Error())
		return outcomeOf(attempt), errs.Mark(ce, ErrIndeterminate)
	case errs.IsBusiness(ce.Kind):
		if ce.Kind != errs.KindPrerequisitesNotMet {
			logTransition(log, "prerequisites checked", attempt.MarkPrerequisiteChecked(now))
		}
		logTransition(log, "reject", attempt.Reject(string(ce.Kind), now))
		log.Info("enrollment rejected", "kind", ce.Kind, "missing", ce.MissingPrerequisites)
		return outcomeOf(attempt), ce
	default:
		// Internal on the courses side: the debit may or may not have committed
		logTransition(log, "indeterminate", attempt.MarkIndeterminate(string(ce.Kind), now))
		log.Error("reserve failed with internal error", "error", ce.Error())
		return outcomeOf(attempt), errs.Mark(ce, ErrIndeterminate)
	}
}

func (c *Coordinator) charge(ctx context.Context, attempt *reservation.Attempt, payment Payment) (string, error) {
	if payment.AmountCents <= 0 {
		return "", nil
	}
	receipt, err := c.payments.Charge(ctx, ChargeRequest{
		IdempotencyKey: attempt.IdempotencyKey(),
		StudentID:      attempt.StudentID(),
		CourseID:       attempt.CourseID(),
		Slots:          attempt.Slots(),
		AmountCents:    payment.AmountCents,
		Currency:       payment.Currency,
		Method:         payment.Method,
	})
	if err != nil {
		return "", err
	}
	return receipt.PaymentID, nil
}

// compensate releases the debited seats. It ignores caller cancellation: once
// seats are debited they must be given back. A rolled back attempt reports
// cause marked with outcome.
func (c *Coordinator) compensate(ctx context.Context, token string, attempt *reservation.Attempt, log *slog.Logger, cause, outcome error) (*Outcome, error) {
	releaseCtx := client.WithIdempotencyKey(client.WithBearerToken(context.WithoutCancel(ctx), token), attempt.IdempotencyKey())

	attempts := 0
	err := retry.Do(releaseCtx, c.policy,
		func(ctx context.Context) error {
			attempts++
			_, err := c.courses.ReleaseForCancellation(ctx, attempt.CourseID(), attempt.Slots(), true)
			return err
		},
		releaseIsPermanent,
		func(err error, wait time.Duration) {
			log.Warn("compensating release failed, retrying", "attempt", attempts, "wait_ms", wait.Milliseconds(), "error", err.Error())
		},
	)
	if err != nil {
		log.Error("seat leaked: compensating release gave up",
			"slots", attempt.Slots(),
			"release_attempts", attempts,
			"payment_error", cause.Error(),
			"error", err.Error())
		return outcomeOf(attempt), errs.Mark(errs.Wrap(client.AsError(err), "release after payment failure"), ErrSeatLeaked)
	}

	logTransition(log, "roll back", attempt.RollBack(cause.Error(), c.clock.Now()))
	log.Info("enrollment rolled back", "release_attempts", attempts, "reason", cause.Error())
	return outcomeOf(attempt), errs.Mark(errs.Wrap(cause, "enrollment rolled back"), outcome)
}

// releaseIsPermanent stops compensation only on a business rejection of the
// release itself. A duplicate still in flight under the same key may yet end in
// a 5xx that frees the key, and Internal says nothing about whether the credit
// committed, so both are retried.
func releaseIsPermanent(err error) bool {
	ce := client.AsError(err)
	if ce.InFlight {
		return false
	}
	return errs.IsBusiness(ce.Kind)
}

// logTransition reports an attempt driven out of order. The flow keeps going so
// the caller still gets the downstream outcome.
func logTransition(log *slog.Logger, step string, err error) {
	if err != nil {
		log.Error("illegal attempt transition", "step", step, "error", err.Error())
	}
}

func (c *Coordinator) notify(ctx context.Context, identity *client.Identity, attempt *reservation.Attempt) {
	if identity == nil || identity.Email == "" {
		return
	}

	n := client.Notification{
		Recipient: identity.Email,
		Type:      "enrollment_confirmed",
		Subject:   "Enrollment confirmed: " + attempt.CourseID(),
		Message:   "Your enrollment has been confirmed.",
		Data: map[string]string{
			"courseId":  attempt.CourseID(),
			"attemptId": attempt.ID().String(),
		},
	}

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notificationTimeout)
		defer cancel()

		if _, err := c.notifications.SendNotification(nctx, n); err != nil {
			c.logger.Warn("enrollment notification failed", "attempt_id", attempt.ID().String(), "error", err.Error())
		}
	}()
}

// Wait blocks until in-flight notifications finish.
func (c *Coordinator) Wait() {
	c.pending.Wait()
}

// Cancel is a user cancellation: a single plain release whose errors are returned as is.
func (c *Coordinator) Cancel(ctx context.Context, token, courseID string, slots int) (*client.Availability, error) {
	if _, err := c.auth.VerifyToken(ctx, token); err != nil {
		return nil, client.AsError(err)
	}
	avail, err := c.courses.ReleaseForCancellation(client.WithBearerToken(ctx, token), courseID, slots, false)
	if err != nil {
		return nil, client.AsError(err)
	}
	return avail, nil
}
