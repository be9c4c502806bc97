package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"quotes-aggregator/internal/application"
	"quotes-aggregator/internal/domain"

	"github.com/redis/go-redis/v9"
)

// appendScript assigns the next sequence number and records the sample in
// the log list and the per-source latest hash in one step. ARGV[2] is the
// sample encoded without its seq field.
var appendScript = redis.NewScript(`
local seq = redis.call('INCR', KEYS[1])
local doc = '{"seq":' .. seq .. ',' .. string.sub(ARGV[2], 2)
redis.call('RPUSH', KEYS[2], doc)
redis.call('HSET', KEYS[3], ARGV[1], doc)
return seq
`)

type record struct {
	Seq       int64     `json:"seq,omitempty"`
	Buy       float64   `json:"buy"`
	Sell      float64   `json:"sell"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps the sample log in Redis under Prefix.
type Store struct {
	Client *redis.Client
	Prefix string
	now    func() time.Time
}

var _ application.RateStore = (*Store)(nil)
var _ application.Pinger = (*Store)(nil)

func New(client *redis.Client, prefix string) *Store {
	return &Store{Client: client, Prefix: prefix, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Store) key(name string) string { return s.Prefix + ":" + name }

func (s *Store) Append(ctx context.Context, sample domain.RateSample) (domain.RateSample, error) {
	sample.CreatedAt = s.now()
	body, err := json.Marshal(record{Buy: sample.Buy, Sell: sample.Sell, Source: sample.Source, CreatedAt: sample.CreatedAt})
	if err != nil {
		return domain.RateSample{}, fmt.Errorf("encode sample: %w", err)
	}
	keys := []string{s.key("seq"), s.key("log"), s.key("latest")}
	seq, err := appendScript.Run(ctx, s.Client, keys, sample.Source, string(body)).Int64()
	if err != nil {
		return domain.RateSample{}, fmt.Errorf("redis append: %w", err)
	}
	sample.Seq = seq
	return sample, nil
}

func (s *Store) LatestPerSource(ctx context.Context) ([]domain.RateSample, error) {
	vals, err := s.Client.HVals(ctx, s.key("latest")).Result()
	if err != nil {
		return nil, fmt.Errorf("redis latest: %w", err)
	}
	out := make([]domain.RateSample, 0, len(vals))
	for _, v := range vals {
		var r record
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			return nil, fmt.Errorf("decode sample: %w", err)
		}
		out = append(out, domain.RateSample{
			Seq:       r.Seq,
			Buy:       r.Buy,
			Sell:      r.Sell,
			Source:    r.Source,
			CreatedAt: r.CreatedAt.UTC(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

// Len returns the number of samples in the log.
func (s *Store) Len(ctx context.Context) (int64, error) {
	return s.Client.LLen(ctx, s.key("log")).Result()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}
