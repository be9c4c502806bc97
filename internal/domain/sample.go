package domain

import (
	"fmt"
	"math"
	"time"
)

// RatePair is a validated buy/sell observation. Build it with NewRatePair.
type RatePair struct {
	Buy  float64
	Sell float64
}

func NewRatePair(buy, sell float64) (RatePair, error) {
	if !finite(buy) || !finite(sell) {
		return RatePair{}, fmt.Errorf("%w: buy=%v sell=%v", ErrNonFinite, buy, sell)
	}
	return RatePair{Buy: buy, Sell: sell}, nil
}

// Reciprocal turns a quotation published in the opposite direction into the
// one we collect. Zero and negative rates have no meaningful inverse.
func Reciprocal(rate float64) (float64, error) {
	if !finite(rate) || rate <= 0 {
		return 0, fmt.Errorf("%w: cannot invert %v", ErrInvalidRate, rate)
	}
	return 1 / rate, nil
}

type RateSample struct {
	Seq       int64
	Buy       float64
	Sell      float64
	Source    string
	CreatedAt time.Time
}

func NewRateSample(source string, p RatePair) RateSample {
	return RateSample{Buy: p.Buy, Sell: p.Sell, Source: source}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
