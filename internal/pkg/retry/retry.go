// Package retry runs operations with bounded exponential backoff.
// Used by compensating releases, the enrollment coordinator, the postgres unit
// of work and the smoke checker.
package retry

import (
	"context"
	"time"

	"course-reservation/internal/pkg/config"

	"github.com/cenkalti/backoff/v4"
)

type Policy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxRetries      uint64
}

func NewPolicy(cfg config.RetryConfig) Policy {
	return Policy{
		InitialInterval: cfg.InitialInterval,
		MaxInterval:     cfg.MaxInterval,
		MaxRetries:      cfg.MaxRetries,
	}
}

func DefaultPolicy() Policy {
	return Policy{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		MaxRetries:      5,
	}
}

// Do calls op until it succeeds, op's error is permanent, the retry budget is spent
// or ctx ends. The last error from op is returned (ctx.Err() if ctx ended first).
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error, permanent func(error) bool, notify func(err error, wait time.Duration)) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	exp.MaxInterval = p.MaxInterval
	exp.MaxElapsedTime = 0
	exp.Reset()

	b := backoff.WithContext(backoff.WithMaxRetries(exp, p.MaxRetries), ctx)

	operation := func() error {
		err := op(ctx)
		if err != nil && permanent != nil && permanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.RetryNotify(operation, b, notify)
}
