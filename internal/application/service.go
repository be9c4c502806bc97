package application

import (
	"context"
	"time"

	"quotes-aggregator/internal/domain"

	"golang.org/x/sync/singleflight"
)

// sharedReadTimeout bounds a store query shared by concurrent readers.
const sharedReadTimeout = 10 * time.Second

// QuotesService serves the read views over the latest sample per source.
type QuotesService struct {
	store       RateStore
	reads       singleflight.Group
	readTimeout time.Duration
}

func NewQuotesService(store RateStore) *QuotesService {
	return &QuotesService{store: store, readTimeout: sharedReadTimeout}
}

// Latest returns the latest-per-source set. Concurrent callers share one
// store query; the returned slice must not be modified. The shared query
// is detached from any single caller, so one caller giving up only ends
// its own wait.
func (s *QuotesService) Latest(ctx context.Context) ([]domain.RateSample, error) {
	ch := s.reads.DoChan("latest", func() (any, error) {
		qctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.readTimeout)
		defer cancel()
		return s.store.LatestPerSource(qctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.([]domain.RateSample), nil
	}
}

func (s *QuotesService) Average(ctx context.Context) (domain.Average, error) {
	latest, err := s.Latest(ctx)
	if err != nil {
		return domain.Average{}, err
	}
	return domain.AverageOf(latest)
}

func (s *QuotesService) Slippage(ctx context.Context) ([]domain.Slippage, error) {
	latest, err := s.Latest(ctx)
	if err != nil {
		return nil, err
	}
	return domain.SlippagesOf(latest)
}

// Ping reports store readiness when the store supports it.
func (s *QuotesService) Ping(ctx context.Context) error {
	if p, ok := s.store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
