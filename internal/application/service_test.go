package application

import (
	"context"
	"testing"

	"quotes-aggregator/internal/domain"

	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T, samples ...domain.RateSample) *fakeStore {
	t.Helper()
	s := &fakeStore{}
	for _, smp := range samples {
		_, err := s.Append(context.Background(), smp)
		require.NoError(t, err)
	}
	return s
}

func Test_Latest_OnePerSource(t *testing.T) {
	t.Parallel()
	store := seeded(t,
		domain.RateSample{Source: "a", Buy: 1, Sell: 1},
		domain.RateSample{Source: "b", Buy: 20, Sell: 22},
		domain.RateSample{Source: "a", Buy: 10, Sell: 12},
	)
	svc := NewQuotesService(store)

	got, err := svc.Latest(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "b", got[0].Source)
	require.Equal(t, "a", got[1].Source)
	require.Equal(t, 10.0, got[1].Buy)
}

func Test_Average(t *testing.T) {
	t.Parallel()
	svc := NewQuotesService(seeded(t,
		domain.RateSample{Source: "a", Buy: 10, Sell: 12},
		domain.RateSample{Source: "b", Buy: 20, Sell: 22},
	))
	avg, err := svc.Average(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.Average{Buy: 15, Sell: 17}, avg)
}

func Test_Average_EmptyStore(t *testing.T) {
	t.Parallel()
	svc := NewQuotesService(&fakeStore{})
	_, err := svc.Average(context.Background())
	require.ErrorIs(t, err, domain.ErrNoSamples)
}

func Test_Slippage(t *testing.T) {
	t.Parallel()
	svc := NewQuotesService(seeded(t,
		domain.RateSample{Source: "a", Buy: 10, Sell: 12},
		domain.RateSample{Source: "b", Buy: 20, Sell: 22},
	))
	got, err := svc.Slippage(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.InDelta(t, -1.0/3, got[0].Buy, 1e-12)
	require.InDelta(t, 1.0/3, got[1].Buy, 1e-12)
}

func Test_StoreErrorPropagates(t *testing.T) {
	t.Parallel()
	svc := NewQuotesService(&fakeStore{err: errStore})
	_, err := svc.Latest(context.Background())
	require.ErrorIs(t, err, errStore)
	_, err = svc.Average(context.Background())
	require.ErrorIs(t, err, errStore)
	_, err = svc.Slippage(context.Background())
	require.ErrorIs(t, err, errStore)
}

func Test_Ping_WithoutPinger(t *testing.T) {
	t.Parallel()
	require.NoError(t, NewQuotesService(&fakeStore{}).Ping(context.Background()))
}

func Test_Latest_CancelledCallerDoesNotFailOthers(t *testing.T) {
	t.Parallel()
	store := &slowStore{
		fakeStore: seeded(t, domain.RateSample{Source: "a", Buy: 10, Sell: 12}),
		entered:   make(chan struct{}, 1),
		release:   make(chan struct{}),
	}
	svc := NewQuotesService(store)

	ctx1, cancel1 := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := svc.Latest(ctx1)
		first <- err
	}()
	<-store.entered

	type result struct {
		got []domain.RateSample
		err error
	}
	second := make(chan result, 1)
	go func() {
		got, err := svc.Latest(context.Background())
		second <- result{got, err}
	}()

	cancel1()
	require.ErrorIs(t, <-first, context.Canceled)

	close(store.release)
	r := <-second
	require.NoError(t, r.err)
	require.Len(t, r.got, 1)
	require.Equal(t, 10.0, r.got[0].Buy)
}
