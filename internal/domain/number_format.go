package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// NumberFormat is the punctuation convention of a single source. It is
// configured per source; two sources that look alike still get their own
// value.
type NumberFormat struct {
	Symbols   []string
	Thousands string
	Decimal   string
}

// Parse converts source text such as "$ 1.234,50" into a float. Anything
// that is not a plain number after cleanup is rejected, never read as zero.
func (f NumberFormat) Parse(raw string) (float64, error) {
	s := raw
	for _, sym := range f.Symbols {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.TrimSpace(s)
	if f.Thousands != "" {
		s = strings.ReplaceAll(s, f.Thousands, "")
	}
	if f.Decimal != "" && f.Decimal != "." {
		s = strings.Replace(s, f.Decimal, ".", 1)
	}
	if s == "" {
		return 0, fmt.Errorf("%w: empty text", ErrInvalidNumber)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	v, _ := d.Float64()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNonFinite, raw)
	}
	return v, nil
}
