package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"course-reservation/internal/domain/course"
	"course-reservation/internal/infra"
)

type courseEntry struct {
	mu            sync.Mutex
	availability  *course.Availability
	prerequisites []string
}

type completion struct {
	courseID    string
	completedAt time.Time
}

// LedgerStore is the in-process ledger. Each course has its own mutex; the map
// lock is only held to find the entry, so different courses never contend.
type LedgerStore struct {
	mu          sync.RWMutex
	courses     map[string]*courseEntry
	completions map[string][]completion
	logger      *slog.Logger
}

func NewLedgerStore(logger *slog.Logger) *LedgerStore {
	return &LedgerStore{
		courses:     make(map[string]*courseEntry),
		completions: make(map[string][]completion),
		logger:      logger,
	}
}

func (s *LedgerStore) entry(courseID string) (*courseEntry, error) {
	s.mu.RLock()
	e, ok := s.courses[courseID]
	s.mu.RUnlock()
	if !ok {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "course not found", nil)
	}
	return e, nil
}

func (s *LedgerStore) Get(_ context.Context, courseID string) (*course.Availability, error) {
	e, err := s.entry(courseID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.availability.Clone(), nil
}

func (s *LedgerStore) Create(_ context.Context, a *course.Availability, prerequisites []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.courses[a.CourseID()]; exists {
		return infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "course already exists", nil)
	}

	s.courses[a.CourseID()] = &courseEntry{
		availability:  a.Clone(),
		prerequisites: append([]string{}, prerequisites...),
	}
	return nil
}

// Update works on a copy and swaps it in only when fn succeeds.
func (s *LedgerStore) Update(ctx context.Context, courseID string, fn func(a *course.Availability) error) (*course.Availability, error) {
	e, err := s.entry(courseID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	working := e.availability.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}

	e.availability = working
	return working.Clone(), nil
}

func (s *LedgerStore) Prerequisites(_ context.Context, courseID string) ([]string, error) {
	e, err := s.entry(courseID)
	if err != nil {
		return nil, err
	}
	return append([]string{}, e.prerequisites...), nil
}

func (s *LedgerStore) Completions(_ context.Context, studentID string) ([]string, error) {
	s.mu.RLock()
	done := append([]completion{}, s.completions[studentID]...)
	s.mu.RUnlock()

	sort.SliceStable(done, func(i, j int) bool {
		return done[i].completedAt.Before(done[j].completedAt)
	})

	out := make([]string, 0, len(done))
	for _, c := range done {
		out = append(out, c.courseID)
	}
	return out, nil
}

func (s *LedgerStore) RecordCompletion(_ context.Context, studentID, courseID string, completedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.completions[studentID] {
		if c.courseID == courseID {
			return nil
		}
	}
	s.completions[studentID] = append(s.completions[studentID], completion{courseID: courseID, completedAt: completedAt})
	return nil
}
