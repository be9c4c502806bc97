package domain

type Average struct {
	Buy  float64
	Sell float64
}

type Slippage struct {
	Source string
	Buy    float64
	Sell   float64
}

// AverageOf is the arithmetic mean of buy and sell over the latest sample of
// every source. It is undefined for an empty set.
func AverageOf(samples []RateSample) (Average, error) {
	if len(samples) == 0 {
		return Average{}, ErrNoSamples
	}
	var buy, sell float64
	for _, s := range samples {
		buy += s.Buy
		sell += s.Sell
	}
	n := float64(len(samples))
	return Average{Buy: buy / n, Sell: sell / n}, nil
}

// SlippagesOf reports each source's relative deviation from the mean:
// (price - mean) / mean, independently for buy and sell.
func SlippagesOf(samples []RateSample) ([]Slippage, error) {
	out := make([]Slippage, 0, len(samples))
	if len(samples) == 0 {
		return out, nil
	}
	avg, err := AverageOf(samples)
	if err != nil {
		return nil, err
	}
	if avg.Buy == 0 || avg.Sell == 0 {
		return nil, ErrZeroMean
	}
	for _, s := range samples {
		out = append(out, Slippage{
			Source: s.Source,
			Buy:    (s.Buy - avg.Buy) / avg.Buy,
			Sell:   (s.Sell - avg.Sell) / avg.Sell,
		})
	}
	return out, nil
}
