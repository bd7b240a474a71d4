package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"course-reservation/internal/infra/db"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/pkg/retry"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type TxFunc func(ctx context.Context, tx db.DBTX) error

type UnitOfWork interface {
	// Within runs fn in a read-write transaction, retried on serialization
	// failures and deadlocks.
	Within(ctx context.Context, fn TxFunc) error
	// WithinReadOnly gives fn one snapshot across several reads.
	WithinReadOnly(ctx context.Context, fn TxFunc) error
	// WithDB runs single statements in implicit transactions.
	WithDB(ctx context.Context, fn TxFunc) error
}

type PostgresUoW struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
	policy retry.Policy
}

func NewPostgresUoW(pool *pgxpool.Pool, logger *slog.Logger) *PostgresUoW {
	return &PostgresUoW{
		pool:   pool,
		logger: logger,
		policy: txRetryPolicy(),
	}
}

func txRetryPolicy() retry.Policy {
	return retry.Policy{
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     500 * time.Millisecond,
		MaxRetries:      3,
	}
}

// Within uses ReadCommitted: every ledger mutation locks its course row first,
// so two debits of one course never interleave.
func (u *PostgresUoW) Within(ctx context.Context, fn TxFunc) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	err := retry.Do(ctx, u.policy,
		func(ctx context.Context) error { return u.attempt(ctx, opts, fn) },
		func(err error) bool { return !isRetryableError(err) },
		func(err error, wait time.Duration) {
			u.logger.Warn("retrying ledger transaction",
				"wait_ms", wait.Milliseconds(),
				"error", err.Error())
		},
	)
	if err != nil && isRetryableError(err) {
		u.logger.Error("ledger transaction failed after max retries",
			"attempts", u.policy.MaxRetries+1,
			"error", err.Error())
		return errs.Mark(err, errMaxRetriesExceeded)
	}
	return err
}

func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn TxFunc) error {
	return u.attempt(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn TxFunc) error {
	return fn(ctx, u.pool)
}

// attempt always ends its transaction before returning so a retry never
// holds two connections.
func (u *PostgresUoW) attempt(ctx context.Context, opts pgx.TxOptions, fn TxFunc) (err error) {
	tx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			u.logger.Warn("rollback failed", "error", rbErr.Error())
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrCodeSerializationFailure || pgErr.Code == pgErrCodeDeadlockDetected
}
