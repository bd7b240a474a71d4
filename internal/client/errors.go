package client

import (
	"context"
	"errors"
	"fmt"

	"course-reservation/internal/pkg/errs"
)

// Error is the only error type returned by the facade. Business rejections and
// transport faults share the same Kind taxonomy.
type Error struct {
	Kind                 errs.Kind
	Message              string
	MissingPrerequisites []string
	// InFlight marks a Conflict raised because an earlier request with the same
	// Idempotency-Key is still running. Retrying later gets its final answer.
	InFlight             bool
	Cause                error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is lets errs.KindOf and errors.Is match the taxonomy sentinels.
func (e *Error) Is(target error) bool {
	if s := errs.Sentinel(e.Kind); s != nil && s == target {
		return true
	}
	return e.Kind == errs.KindPrerequisitesNotMet && target == errs.ErrPrerequisitesNotMet
}

// Indeterminate reports whether the outcome of the call is unknown to the caller.
func (e *Error) Indeterminate() bool {
	return e.Kind == errs.KindTimeout || e.Kind == errs.KindUnavailable
}

// AsError converts any error into a facade *Error, keeping an existing one as is.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: errs.KindTimeout, Message: err.Error(), Cause: err}
	}
	kind := errs.KindOf(err)
	msg := err.Error()
	if kind == errs.KindInternal {
		msg = "internal error"
	}
	return &Error{
		Kind:                 kind,
		Message:              msg,
		MissingPrerequisites: errs.MissingPrerequisites(err),
		Cause:                err,
	}
}

// IsIndeterminate is true for Timeout and Unavailable errors.
func IsIndeterminate(err error) bool {
	ce := AsError(err)
	return ce != nil && ce.Indeterminate()
}
