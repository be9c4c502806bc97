package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"quotes-aggregator/internal/application"

	"go.uber.org/zap"
)

var _ application.Worker = (*Poller)(nil)

type cycleRunner interface {
	RunCycle(ctx context.Context) (application.CycleReport, error)
}

// Poller runs one collection cycle immediately and then one per Interval
// until its context is cancelled. A tick that arrives while a cycle is
// still running is dropped by the collector. Start returns after in-flight
// cycles have finished.
type Poller struct {
	Collector cycleRunner
	Interval  time.Duration
	Log       *zap.Logger
}

func (p *Poller) Start(ctx context.Context) {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	if p.Interval <= 0 {
		p.Interval = time.Minute
	}

	var wg sync.WaitGroup
	run := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.tick(ctx, log)
		}()
	}

	log.Info("poller_started", zap.Duration("interval", p.Interval))
	t := time.NewTicker(p.Interval)
	defer t.Stop()
	run()
	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			log.Info("poller_stopped")
			return
		case <-t.C:
			// Ticks keep firing during a long cycle; an overrun shows up
			// as a skipped cycle.
			run()
		}
	}
}

func (p *Poller) tick(ctx context.Context, log *zap.Logger) {
	_, err := p.Collector.RunCycle(ctx)
	switch {
	case err == nil:
	case errors.Is(err, application.ErrCycleInProgress):
		log.Debug("poller_tick_skipped")
	case errors.Is(err, context.Canceled):
	default:
		log.Warn("poller_cycle_failed", zap.Error(err))
	}
}
