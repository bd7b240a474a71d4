package memory

import (
	"context"
	"sync"
	"time"

	"course-reservation/internal/pkg/clock"
	"course-reservation/internal/usecase/shared"
)

type idempotencyEntry struct {
	record    shared.IdempotencyRecord
	expiresAt time.Time
}

// IdempotencyStore keeps idempotency records for a single process. Expired
// entries are dropped lazily when their key is touched again.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idempotencyEntry
	clock   clock.Clock
}

func NewIdempotencyStore(c clock.Clock) *IdempotencyStore {
	return &IdempotencyStore{
		entries: make(map[string]idempotencyEntry),
		clock:   c,
	}
}

func (s *IdempotencyStore) Claim(_ context.Context, key, fingerprint string, ttl time.Duration) (*shared.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if e, ok := s.entries[key]; ok && now.Before(e.expiresAt) {
		rec := e.record
		return &rec, false, nil
	}

	s.entries[key] = idempotencyEntry{
		record: shared.IdempotencyRecord{
			Status:      shared.IdempotencyStatusProcessing,
			Fingerprint: fingerprint,
		},
		expiresAt: now.Add(ttl),
	}
	return nil, true, nil
}

func (s *IdempotencyStore) Complete(_ context.Context, key string, record shared.IdempotencyRecord, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.Status = shared.IdempotencyStatusCompleted
	s.entries[key] = idempotencyEntry{record: record, expiresAt: s.clock.Now().Add(ttl)}
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
