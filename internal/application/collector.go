package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"quotes-aggregator/internal/domain"

	"go.uber.org/zap"
)

type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeFetch       Outcome = "fetch"
	OutcomeParse       Outcome = "parse"
	OutcomeBrowser     Outcome = "browser"
	OutcomeUnsupported Outcome = "unsupported"
	OutcomePanic       Outcome = "panic"
)

type CycleReport struct {
	Started     time.Time
	Duration    time.Duration
	Stored      int
	Failed      int
	StoreErrors int
}

// Collector runs fetch cycles: every source is read one after another and
// each valid pair is appended to the store. A failing source never aborts
// the cycle.
type Collector struct {
	sources    []domain.Source
	extractors map[domain.Strategy]Extractor
	store      RateStore
	publisher  SamplePublisher
	observer   CycleObserver
	clock      Clock
	log        *zap.Logger

	running sync.Mutex
}

type CollectorOption func(*Collector)

func WithPublisher(p SamplePublisher) CollectorOption {
	return func(c *Collector) { c.publisher = p }
}

func WithObserver(o CycleObserver) CollectorOption {
	return func(c *Collector) { c.observer = o }
}

func WithCollectorClock(cl Clock) CollectorOption {
	return func(c *Collector) { c.clock = cl }
}

func WithLogger(l *zap.Logger) CollectorOption {
	return func(c *Collector) { c.log = l }
}

func NewCollector(sources []domain.Source, extractors map[domain.Strategy]Extractor, store RateStore, opts ...CollectorOption) *Collector {
	c := &Collector{
		sources:    cycleOrder(sources),
		extractors: extractors,
		store:      store,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.observer == nil {
		c.observer = noopObserver{}
	}
	if c.clock == nil {
		c.clock = realClock{}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

// cycleOrder puts static-markup sources first and rendered pages after them,
// keeping registry order inside each group.
func cycleOrder(sources []domain.Source) []domain.Source {
	out := make([]domain.Source, 0, len(sources))
	for _, s := range sources {
		if s.Strategy != domain.StrategyRenderedPage {
			out = append(out, s)
		}
	}
	for _, s := range sources {
		if s.Strategy == domain.StrategyRenderedPage {
			out = append(out, s)
		}
	}
	return out
}

func (c *Collector) Sources() []domain.Source { return c.sources }

// RunCycle performs one full pass. If another cycle is still running it
// returns ErrCycleInProgress without touching any source.
func (c *Collector) RunCycle(ctx context.Context) (CycleReport, error) {
	if !c.running.TryLock() {
		c.observer.CycleSkipped()
		c.log.Warn("collector.cycle_skipped")
		return CycleReport{}, ErrCycleInProgress
	}
	defer c.running.Unlock()

	report := CycleReport{Started: c.clock.Now()}
	for _, src := range c.sources {
		if err := ctx.Err(); err != nil {
			report.Duration = c.clock.Now().Sub(report.Started)
			return report, err
		}
		c.collectOne(ctx, src, &report)
	}
	report.Duration = c.clock.Now().Sub(report.Started)
	c.observer.CycleDone(report)
	c.log.Info("collector.cycle_done",
		zap.Int("stored", report.Stored),
		zap.Int("failed", report.Failed),
		zap.Int("store_errors", report.StoreErrors),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

func (c *Collector) collectOne(ctx context.Context, src domain.Source, report *CycleReport) {
	log := c.log.With(zap.String("source", src.Name), zap.String("source_id", src.ID))
	defer func() {
		if r := recover(); r != nil {
			report.Failed++
			c.observer.SourceDone(src.Name, OutcomePanic)
			log.Error("collector.source_panic", zap.Any("panic", r))
		}
	}()

	pair, err := c.extract(ctx, src)
	if err != nil {
		report.Failed++
		outcome := classify(err)
		c.observer.SourceDone(src.Name, outcome)
		log.Warn("collector.source_failed", zap.String("outcome", string(outcome)), zap.Error(err))
		return
	}

	sample, err := c.store.Append(ctx, domain.NewRateSample(src.ID, pair))
	if err != nil {
		report.StoreErrors++
		c.observer.StoreFailed(src.Name)
		log.Error("collector.store_failed", zap.Error(err))
		return
	}
	report.Stored++
	c.observer.SourceDone(src.Name, OutcomeOK)
	log.Debug("collector.sample_stored",
		zap.Int64("seq", sample.Seq),
		zap.Float64("buy", sample.Buy),
		zap.Float64("sell", sample.Sell),
	)

	if c.publisher != nil {
		if err := c.publisher.Publish(ctx, sample); err != nil {
			log.Warn("collector.publish_failed", zap.Int64("seq", sample.Seq), zap.Error(err))
		}
	}
}

func (c *Collector) extract(ctx context.Context, src domain.Source) (domain.RatePair, error) {
	ex, ok := c.extractors[src.Strategy]
	if !ok {
		return domain.RatePair{}, fmt.Errorf("%w: %s", ErrNoExtractor, src.Strategy)
	}
	return ex.Extract(ctx, src)
}

func classify(err error) Outcome {
	switch {
	case errors.Is(err, ErrNoExtractor):
		return OutcomeUnsupported
	case errors.Is(err, ErrBrowser):
		return OutcomeBrowser
	case errors.Is(err, ErrFetch):
		return OutcomeFetch
	default:
		return OutcomeParse
	}
}

type noopObserver struct{}

func (noopObserver) SourceDone(string, Outcome) {}
func (noopObserver) StoreFailed(string)         {}
func (noopObserver) CycleDone(CycleReport)      {}
func (noopObserver) CycleSkipped()              {}
