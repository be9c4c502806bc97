package application

import (
	"context"

	"quotes-aggregator/internal/domain"
)

// RateStore is an append-only log of samples.
type RateStore interface {
	// Append assigns Seq and CreatedAt and returns the stored sample.
	Append(ctx context.Context, s domain.RateSample) (domain.RateSample, error)
	// LatestPerSource returns the highest-Seq sample of every source that has
	// one, ordered by Seq.
	LatestPerSource(ctx context.Context) ([]domain.RateSample, error)
}

// Extractor reads one source. Any error means the source yields no sample
// in this cycle.
type Extractor interface {
	Extract(ctx context.Context, src domain.Source) (domain.RatePair, error)
}

type SamplePublisher interface {
	Publish(ctx context.Context, s domain.RateSample) error
}

type CycleObserver interface {
	SourceDone(source string, outcome Outcome)
	StoreFailed(source string)
	CycleDone(r CycleReport)
	CycleSkipped()
}

// Pinger is implemented by stores that can report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}
