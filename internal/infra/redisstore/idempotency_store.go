package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "idem:courses:"

// IdempotencyStore shares idempotency records between service replicas. SetNX
// makes the first claim of a key atomic across all of them.
type IdempotencyStore struct {
	rdb redis.Cmdable
}

func NewIdempotencyStore(rdb redis.Cmdable) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb}
}

func (s *IdempotencyStore) Key(key string) string {
	return keyPrefix + key
}

func (s *IdempotencyStore) Claim(ctx context.Context, key, fingerprint string, ttl time.Duration) (*shared.IdempotencyRecord, bool, error) {
	payload, err := json.Marshal(shared.IdempotencyRecord{
		Status:      shared.IdempotencyStatusProcessing,
		Fingerprint: fingerprint,
	})
	if err != nil {
		return nil, false, err
	}

	ok, err := s.rdb.SetNX(ctx, s.Key(key), payload, ttl).Result()
	if err != nil {
		return nil, false, errs.Mark(errs.Wrap(err, "redis setnx"), errs.ErrUnavailable)
	}
	if ok {
		return nil, true, nil
	}

	raw, err := s.rdb.Get(ctx, s.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET; let the caller try again
		return nil, false, errs.Mark(fmt.Errorf("idempotency key %q vanished", key), errs.ErrConflict)
	}
	if err != nil {
		return nil, false, errs.Mark(errs.Wrap(err, "redis get"), errs.ErrUnavailable)
	}

	var rec shared.IdempotencyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false, errs.Wrap(err, "decode idempotency record")
	}
	return &rec, false, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key string, record shared.IdempotencyRecord, ttl time.Duration) error {
	record.Status = shared.IdempotencyStatusCompleted
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	if err := s.rdb.Set(ctx, s.Key(key), payload, ttl).Err(); err != nil {
		return errs.Mark(errs.Wrap(err, "redis set"), errs.ErrUnavailable)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.Key(key)).Err(); err != nil {
		return errs.Mark(errs.Wrap(err, "redis del"), errs.ErrUnavailable)
	}
	return nil
}
