package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"quotes-aggregator/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { w.closed = true; return nil }

func TestPublish_EncodesSample(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), domain.RateSample{Seq: 7, Source: "https://wise.example", Buy: 0.18, Sell: 0.19, CreatedAt: at})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	require.Equal(t, "https://wise.example", string(w.msgs[0].Key))
	require.Equal(t, at, w.msgs[0].Time)

	var ev SampleEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	require.Equal(t, SampleEvent{Seq: 7, Source: "https://wise.example", BuyPrice: 0.18, SellPrice: 0.19, CreatedAt: at}, ev)

	require.NoError(t, p.Close())
	require.True(t, w.closed)
}

func TestPublish_WrapsWriterError(t *testing.T) {
	boom := errors.New("leader not available")
	p := &Publisher{writer: &fakeWriter{err: boom}, timeout: time.Second}
	err := p.Publish(context.Background(), domain.RateSample{Source: "s"})
	require.ErrorIs(t, err, boom)
}
