package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"quotes-aggregator/internal/application"
	"quotes-aggregator/internal/domain"
)

// Store keeps the sample log in process memory. Samples are never removed.
type Store struct {
	mu     sync.RWMutex
	seq    int64
	log    []domain.RateSample
	latest map[string]int // source -> index into log
	now    func() time.Time
}

var _ application.RateStore = (*Store)(nil)

func New() *Store {
	return &Store{
		latest: make(map[string]int),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// NewWithClock is used by tests that need deterministic timestamps.
func NewWithClock(now func() time.Time) *Store {
	s := New()
	s.now = now
	return s
}

func (s *Store) Append(ctx context.Context, sample domain.RateSample) (domain.RateSample, error) {
	if err := ctx.Err(); err != nil {
		return domain.RateSample{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	sample.Seq = s.seq
	sample.CreatedAt = s.now()
	s.log = append(s.log, sample)
	s.latest[sample.Source] = len(s.log) - 1
	return sample, nil
}

func (s *Store) LatestPerSource(ctx context.Context) ([]domain.RateSample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]domain.RateSample, 0, len(s.latest))
	for _, i := range s.latest {
		out = append(out, s.log[i])
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

// Len reports how many samples were ever appended.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.log)
}
