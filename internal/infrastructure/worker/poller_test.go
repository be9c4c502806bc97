package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"quotes-aggregator/internal/application"

	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	calls   atomic.Int32
	running atomic.Bool
	hold    time.Duration
	skipped atomic.Int32
}

func (r *countingRunner) RunCycle(ctx context.Context) (application.CycleReport, error) {
	if !r.running.CompareAndSwap(false, true) {
		r.skipped.Add(1)
		return application.CycleReport{}, application.ErrCycleInProgress
	}
	defer r.running.Store(false)
	r.calls.Add(1)
	select {
	case <-time.After(r.hold):
	case <-ctx.Done():
		return application.CycleReport{}, ctx.Err()
	}
	return application.CycleReport{}, nil
}

func TestPoller_RunsImmediately(t *testing.T) {
	r := &countingRunner{}
	p := &Poller{Collector: r, Interval: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { p.Start(ctx); close(done) }()

	require.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
	require.Equal(t, int32(1), r.calls.Load())
}

func TestPoller_RepeatsOnInterval(t *testing.T) {
	r := &countingRunner{}
	p := &Poller{Collector: r, Interval: 20 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Start(ctx)

	require.Eventually(t, func() bool { return r.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestPoller_OverrunIsSkippedNotQueued(t *testing.T) {
	r := &countingRunner{hold: 150 * time.Millisecond}
	p := &Poller{Collector: r, Interval: 20 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() { defer wg.Done(); p.Start(ctx) }()

	require.Eventually(t, func() bool { return r.skipped.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	wg.Wait()
	require.False(t, r.running.Load(), "Start returned while a cycle was running")
}
