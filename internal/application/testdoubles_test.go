package application

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"quotes-aggregator/internal/domain"
)

var errStore = errors.New("store down")

type fakeStore struct {
	mu      sync.Mutex
	seq     int64
	samples []domain.RateSample
	err     error
	reads   int
}

func (f *fakeStore) Append(_ context.Context, s domain.RateSample) (domain.RateSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.RateSample{}, f.err
	}
	f.seq++
	s.Seq = f.seq
	f.samples = append(f.samples, s)
	return s, nil
}

func (f *fakeStore) LatestPerSource(context.Context) ([]domain.RateSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.err != nil {
		return nil, f.err
	}
	latest := map[string]domain.RateSample{}
	for _, s := range f.samples {
		if cur, ok := latest[s.Source]; !ok || s.Seq > cur.Seq {
			latest[s.Source] = s
		}
	}
	out := make([]domain.RateSample, 0, len(latest))
	for _, s := range latest {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

// slowStore blocks reads until release is closed, failing early if the
// query context ends first.
type slowStore struct {
	*fakeStore
	entered chan struct{}
	release chan struct{}
}

func (s *slowStore) LatestPerSource(ctx context.Context) ([]domain.RateSample, error) {
	select {
	case s.entered <- struct{}{}:
	default:
	}
	select {
	case <-s.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.fakeStore.LatestPerSource(ctx)
}

func (f *fakeStore) stored() []domain.RateSample {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.RateSample(nil), f.samples...)
}

// fakeExtractor answers per source ID and records the call order.
type fakeExtractor struct {
	mu      sync.Mutex
	results map[string]domain.RatePair
	errs    map[string]error
	calls   []string
	block   chan struct{}
	panicOn string
}

func (f *fakeExtractor) Extract(_ context.Context, src domain.Source) (domain.RatePair, error) {
	f.mu.Lock()
	f.calls = append(f.calls, src.ID)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if src.ID == f.panicOn {
		panic("selector exploded")
	}
	if err, ok := f.errs[src.ID]; ok {
		return domain.RatePair{}, err
	}
	p, ok := f.results[src.ID]
	if !ok {
		return domain.RatePair{}, domain.ErrNoMatch
	}
	return p, nil
}

func (f *fakeExtractor) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakePublisher struct {
	mu        sync.Mutex
	published []domain.RateSample
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, s domain.RateSample) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, s)
	return f.err
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes map[string]Outcome
	storeErr []string
	cycles   []CycleReport
	skipped  int
}

func (r *recordingObserver) SourceDone(source string, o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = map[string]Outcome{}
	}
	r.outcomes[source] = o
}

func (r *recordingObserver) StoreFailed(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storeErr = append(r.storeErr, source)
}

func (r *recordingObserver) CycleDone(rep CycleReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cycles = append(r.cycles, rep)
}

func (r *recordingObserver) CycleSkipped() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped++
}

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

func staticSource(name string) domain.Source {
	return domain.Source{
		ID:       "https://" + name + ".example",
		Name:     name,
		URL:      "https://" + name + ".example",
		Strategy: domain.StrategyStaticMarkup,
		Static:   domain.StaticRule{BuySelector: ".buy", SellSelector: ".sell"},
	}
}

func renderedSource(name string) domain.Source {
	return domain.Source{
		ID:       "https://" + name + ".example",
		Name:     name,
		URL:      "https://" + name + ".example",
		Strategy: domain.StrategyRenderedPage,
		Rendered: domain.RenderedRule{Selector: "td font", Invert: true},
	}
}
