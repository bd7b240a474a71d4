package infra

import (
	"context"
	"log/slog"

	"course-reservation/internal/pkg/errs"
)

// RepositoryErrorKind classifies a ledger store failure the same way for the
// memory, sqlite and postgres backends.
type RepositoryErrorKind string

const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindCheckViolated      RepositoryErrorKind = "CHECK_VIOLATED"
)

type RepositoryError struct {
	Kind  RepositoryErrorKind
	msg   string
	cause error
}

func (e RepositoryError) Error() string {
	if e.cause == nil {
		return string(e.Kind) + ": " + e.msg
	}
	return string(e.Kind) + ": " + e.msg + ": " + e.cause.Error()
}

func (e RepositoryError) Unwrap() error {
	return e.cause
}

// expected reports misses a caller routinely handles, such as an unknown
// course id or a second publish of the same course.
func (k RepositoryErrorKind) expected() bool {
	return k == KindNotFound || k == KindDuplicateKey
}

// WrapRepoErr classifies err and logs it. Expected misses go to debug so a
// storm of unknown course lookups does not flood the error log.
func WrapRepoErr(logger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	attrs := []slog.Attr{slog.String("store_error_kind", string(kind))}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		err = errs.Wrap(err, msg)
	}

	level := slog.LevelError
	if kind.expected() {
		level = slog.LevelDebug
	}
	logger.LogAttrs(context.Background(), level, "ledger store: "+msg, attrs...)

	return RepositoryError{Kind: kind, msg: msg, cause: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	return errs.As(err, &e) && e.Kind == kind
}
