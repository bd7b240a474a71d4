package errs

import (
	"context"
	"errors"
	"strings"
)

// Kind is the error taxonomy shared by the ledger, the coordinator and the client facade.
type Kind string

const (
	KindNotFound            Kind = "NotFound"
	KindCapacityExceeded    Kind = "CapacityExceeded"
	KindInvalidRelease      Kind = "InvalidRelease"
	KindPrerequisitesNotMet Kind = "PrerequisitesNotMet"
	KindUnauthorized        Kind = "Unauthorized"
	KindUnavailable         Kind = "Unavailable"
	KindTimeout             Kind = "Timeout"
	KindInvalidArgument     Kind = "InvalidArgument"
	KindCourseInactive      Kind = "CourseInactive"
	KindConflict            Kind = "Conflict"
	KindInternal            Kind = "Internal"
)

// Sentinel errors for usecase layers. Causes are tagged with Mark, so compare with errs.Is.
var (
	ErrNotFound            = errors.New("course not found")
	ErrCapacityExceeded    = errors.New("capacity exceeded")
	ErrInvalidRelease      = errors.New("invalid release")
	ErrPrerequisitesNotMet = errors.New("prerequisites not met")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUnavailable         = errors.New("service unavailable")
	ErrTimeout             = errors.New("operation timed out")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrCourseInactive      = errors.New("course is not active")
	ErrConflict            = errors.New("conflict")
)

var kinds = []struct {
	sentinel error
	kind     Kind
}{
	{ErrNotFound, KindNotFound},
	{ErrCapacityExceeded, KindCapacityExceeded},
	{ErrInvalidRelease, KindInvalidRelease},
	{ErrPrerequisitesNotMet, KindPrerequisitesNotMet},
	{ErrUnauthorized, KindUnauthorized},
	{ErrUnavailable, KindUnavailable},
	{ErrTimeout, KindTimeout},
	{ErrInvalidArgument, KindInvalidArgument},
	{ErrCourseInactive, KindCourseInactive},
	{ErrConflict, KindConflict},
	// a caller that gave up cannot know the outcome
	{context.DeadlineExceeded, KindTimeout},
	{context.Canceled, KindTimeout},
}

// KindOf classifies err. Errors outside the taxonomy are Internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if Is(err, k.sentinel) {
			return k.kind
		}
	}
	return KindInternal
}

// Sentinel returns the sentinel error for kind, or nil for Internal and unknown kinds.
func Sentinel(kind Kind) error {
	for _, k := range kinds {
		if k.kind == kind {
			return k.sentinel
		}
	}
	return nil
}

// IsBusiness reports whether kind is a terminal business-rule rejection.
// Transport kinds (Unavailable, Timeout) and Internal are not.
func IsBusiness(kind Kind) bool {
	switch kind {
	case KindUnavailable, KindTimeout, KindInternal, "":
		return false
	default:
		return true
	}
}

// PrerequisitesNotMetError carries the missing course ids in the order the
// course declares them.
type PrerequisitesNotMetError struct {
	CourseID  string
	StudentID string
	Missing   []string
}

func (e *PrerequisitesNotMetError) Error() string {
	return "prerequisites not met for " + e.CourseID + ": missing " + strings.Join(e.Missing, ", ")
}

func (e *PrerequisitesNotMetError) Is(target error) bool {
	return target == ErrPrerequisitesNotMet
}

// MissingPrerequisites returns the missing list of a PrerequisitesNotMetError in err's chain.
func MissingPrerequisites(err error) []string {
	var e *PrerequisitesNotMetError
	if As(err, &e) {
		return e.Missing
	}
	return nil
}
