package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quotes-aggregator/internal/application"
	"quotes-aggregator/internal/domain"

	"github.com/segmentio/kafka-go"
)

// SampleEvent is the payload published for every stored sample.
type SampleEvent struct {
	Seq       int64     `json:"seq"`
	Source    string    `json:"source"`
	BuyPrice  float64   `json:"buy_price"`
	SellPrice float64   `json:"sell_price"`
	CreatedAt time.Time `json:"created_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer  messageWriter
	timeout time.Duration
}

var _ application.SamplePublisher = (*Publisher)(nil)

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		timeout: 5 * time.Second,
	}
}

// Publish writes one event keyed by source, so samples of one source keep
// their order within a partition.
func (p *Publisher) Publish(ctx context.Context, s domain.RateSample) error {
	v, err := json.Marshal(SampleEvent{
		Seq:       s.Seq,
		Source:    s.Source,
		BuyPrice:  s.Buy,
		SellPrice: s.Sell,
		CreatedAt: s.CreatedAt,
	})
	if err != nil {
		return err
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	msg := kafka.Message{Key: []byte(s.Source), Value: v, Time: s.CreatedAt}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error { return p.writer.Close() }
