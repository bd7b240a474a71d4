package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/pkg/tracing"
)

const (
	DefaultTimeout = 5 * time.Second
	maxBodyBytes   = 1 << 20
)

type httpTransport struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

func newHTTPTransport(baseURL string, timeout time.Duration, hc *http.Client, logger *slog.Logger) httpTransport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if hc == nil {
		hc = &http.Client{}
	}
	return httpTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  hc,
		timeout: timeout,
		logger:  logger,
	}
}

// call performs one request and decodes the envelope into out. Every failure is a *Error.
func call[T any](ctx context.Context, t httpTransport, method, path string, in any) (T, error) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return zero, &Error{Kind: errs.KindInvalidArgument, Message: "encode request", Cause: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, body)
	if err != nil {
		return zero, &Error{Kind: errs.KindInvalidArgument, Message: "build request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := BearerToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if key := IdempotencyKey(ctx); key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	tracing.InjectHTTPHeaders(ctx, req.Header)

	resp, err := t.client.Do(req)
	if err != nil {
		ce := transportError(ctx, err)
		t.logger.Warn("downstream call failed", "method", method, "url", t.baseURL+path, "kind", ce.Kind, "error", err.Error())
		return zero, ce
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return zero, transportError(ctx, err)
	}

	var result Result[T]
	if err := json.Unmarshal(raw, &result); err != nil {
		return zero, statusError(resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}

	if !result.Success || resp.StatusCode >= http.StatusBadRequest {
		if result.Error == nil {
			return zero, statusError(resp.StatusCode, fmt.Errorf("status %d without error body", resp.StatusCode))
		}
		return zero, &Error{
			Kind:                 errs.Kind(result.Error.Kind),
			Message:              result.Error.Message,
			MissingPrerequisites: result.Error.MissingPrerequisites,
			InFlight:             resp.StatusCode == http.StatusConflict && resp.Header.Get("Retry-After") != "",
		}
	}
	return result.Data, nil
}

func transportError(ctx context.Context, err error) *Error {
	var netErr net.Error
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return &Error{Kind: errs.KindTimeout, Message: "request timed out", Cause: err}
	case errors.Is(err, context.Canceled):
		return &Error{Kind: errs.KindTimeout, Message: "request cancelled", Cause: err}
	default:
		return &Error{Kind: errs.KindUnavailable, Message: "service unreachable", Cause: err}
	}
}

func statusError(status int, cause error) *Error {
	switch {
	case status == http.StatusGatewayTimeout:
		return &Error{Kind: errs.KindTimeout, Message: http.StatusText(status), Cause: cause}
	case status >= http.StatusInternalServerError:
		return &Error{Kind: errs.KindUnavailable, Message: http.StatusText(status), Cause: cause}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Error{Kind: errs.KindUnauthorized, Message: http.StatusText(status), Cause: cause}
	case status == http.StatusNotFound:
		return &Error{Kind: errs.KindNotFound, Message: http.StatusText(status), Cause: cause}
	default:
		return &Error{Kind: errs.KindInternal, Message: "unexpected response", Cause: cause}
	}
}

// HTTPAuth verifies tokens against the auth service.
type HTTPAuth struct {
	t httpTransport
}

func NewHTTPAuth(baseURL string, timeout time.Duration, hc *http.Client, logger *slog.Logger) *HTTPAuth {
	return &HTTPAuth{t: newHTTPTransport(baseURL, timeout, hc, logger)}
}

func (a *HTTPAuth) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	if strings.TrimSpace(token) == "" {
		return nil, &Error{Kind: errs.KindUnauthorized, Message: "missing token"}
	}
	return call[*Identity](WithBearerToken(ctx, token), a.t, http.MethodGet, "/api/auth/verify", nil)
}

type HTTPCourses struct {
	t httpTransport
}

func NewHTTPCourses(baseURL string, timeout time.Duration, hc *http.Client, logger *slog.Logger) *HTTPCourses {
	return &HTTPCourses{t: newHTTPTransport(baseURL, timeout, hc, logger)}
}

func coursePath(courseID string, parts ...string) string {
	p := "/api/courses/" + url.PathEscape(courseID)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

type slotsBody struct {
	Slots int `json:"slots"`
}

func (c *HTTPCourses) GetCourseByID(ctx context.Context, courseID string) (*Course, error) {
	return call[*Course](ctx, c.t, http.MethodGet, coursePath(courseID), nil)
}

func (c *HTTPCourses) CheckCourseAvailability(ctx context.Context, courseID string) (*Availability, error) {
	return call[*Availability](ctx, c.t, http.MethodGet, coursePath(courseID, "availability"), nil)
}

func (c *HTTPCourses) CheckPrerequisites(ctx context.Context, courseID, studentID string) (*PrerequisiteCheck, error) {
	return call[*PrerequisiteCheck](ctx, c.t, http.MethodGet, coursePath(courseID, "prerequisites", url.PathEscape(studentID)), nil)
}

func (c *HTTPCourses) ReserveSlots(ctx context.Context, courseID string, slots int) (*Availability, error) {
	return call[*Availability](ctx, c.t, http.MethodPost, coursePath(courseID, "reserve"), slotsBody{Slots: slots})
}

func (c *HTTPCourses) ReleaseSlots(ctx context.Context, courseID string, slots int) (*Availability, error) {
	return call[*Availability](ctx, c.t, http.MethodPost, coursePath(courseID, "release"), slotsBody{Slots: slots})
}

func (c *HTTPCourses) ReserveForEnrollment(ctx context.Context, courseID, studentID string, slots int) (*Availability, error) {
	body := struct {
		StudentID string `json:"studentId,omitempty"`
		Slots     int    `json:"slots"`
	}{StudentID: studentID, Slots: slots}
	return call[*Availability](ctx, c.t, http.MethodPost, coursePath(courseID, "enrollments"), body)
}

func (c *HTTPCourses) ReleaseForCancellation(ctx context.Context, courseID string, slots int, compensating bool) (*Availability, error) {
	body := struct {
		Slots        int  `json:"slots"`
		Compensating bool `json:"compensating"`
	}{Slots: slots, Compensating: compensating}
	return call[*Availability](ctx, c.t, http.MethodPost, coursePath(courseID, "cancellations"), body)
}

type HTTPNotifications struct {
	t httpTransport
}

func NewHTTPNotifications(baseURL string, timeout time.Duration, hc *http.Client, logger *slog.Logger) *HTTPNotifications {
	return &HTTPNotifications{t: newHTTPTransport(baseURL, timeout, hc, logger)}
}

func (n *HTTPNotifications) SendNotification(ctx context.Context, notification Notification) (*NotificationReceipt, error) {
	return call[*NotificationReceipt](ctx, n.t, http.MethodPost, "/api/notifications", notification)
}

var (
	_ AuthClient         = (*HTTPAuth)(nil)
	_ CoursesClient      = (*HTTPCourses)(nil)
	_ NotificationClient = (*HTTPNotifications)(nil)
)
