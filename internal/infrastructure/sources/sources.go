// Package sources holds the descriptors of every quotation provider the
// collector knows about. Selectors, patterns and number formats are tied to
// each site's current markup and are expected to drift.
package sources

import (
	"fmt"
	"regexp"
	"time"

	"quotes-aggregator/internal/domain"
)

const (
	DolarHoy = "dolarhoy"
	Cronista = "cronista"
	Wise     = "wise"
	Nomad    = "nomad"
	Nubank   = "nubank"
)

var (
	wisePattern  = regexp.MustCompile(`(?is)1\s*BRL.*?([0-9.,]+)\s*USD`)
	nomadPattern = regexp.MustCompile(`US\$ 1 = R\$ ([0-9.,]+)`)
)

// Default returns the descriptors in polling order.
func Default(settle time.Duration) []domain.Source {
	return []domain.Source{
		{
			ID:       "https://www.dolarhoy.com",
			Name:     DolarHoy,
			URL:      "https://www.dolarhoy.com",
			Strategy: domain.StrategyStaticMarkup,
			Static: domain.StaticRule{
				BuySelector:  ".compra .val",
				SellSelector: ".venta .val",
				Format:       domain.NumberFormat{Symbols: []string{"$"}, Decimal: ","},
			},
		},
		{
			ID:       "https://www.cronista.com/MercadosOnline/moneda.html?id=ARSB",
			Name:     Cronista,
			URL:      "https://www.cronista.com/MercadosOnline/moneda.html?id=ARSB",
			Strategy: domain.StrategyStaticMarkup,
			Static: domain.StaticRule{
				BuySelector:  ".buy .val",
				SellSelector: ".sell .val",
				Format:       domain.NumberFormat{Symbols: []string{"$"}, Thousands: ".", Decimal: ","},
			},
		},
		{
			ID:       "https://wise.com/in/currency-converter/brl-to-usd-rate",
			Name:     Wise,
			URL:      "https://wise.com/in/currency-converter/brl-to-usd-rate",
			Strategy: domain.StrategyStaticMarkup,
			Static: domain.StaticRule{
				TextSelector: "main",
				Pattern:      wisePattern,
				Format:       domain.NumberFormat{Decimal: ","},
			},
		},
		{
			ID:       "https://www.nomadglobal.com/",
			Name:     Nomad,
			URL:      "https://www.nomadglobal.com/",
			Strategy: domain.StrategyRenderedPage,
			Rendered: domain.RenderedRule{
				Pattern: nomadPattern,
				Format:  domain.NumberFormat{Decimal: ","},
				Invert:  true,
				Settle:  settle,
			},
		},
		{
			ID:       "https://nubank.com.br/taxas-conversao/",
			Name:     Nubank,
			URL:      "https://nubank.com.br/taxas-conversao/",
			Strategy: domain.StrategyRenderedPage,
			Rendered: domain.RenderedRule{
				Selector: "td.css-119vuvi font",
				Format:   domain.NumberFormat{Decimal: ","},
				Invert:   true,
			},
		},
	}
}

// Filter keeps the named sources in registry order. No names keeps all.
func Filter(all []domain.Source, names []string) ([]domain.Source, error) {
	if len(names) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	out := make([]domain.Source, 0, len(names))
	for _, s := range all {
		if want[s.Name] {
			out = append(out, s)
			delete(want, s.Name)
		}
	}
	for n := range want {
		return nil, fmt.Errorf("%w: unknown source %q", domain.ErrInvalidSource, n)
	}
	return out, nil
}

// Validate checks every descriptor and rejects duplicate identities.
func Validate(all []domain.Source) error {
	seen := make(map[string]bool, len(all))
	for _, s := range all {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate id %q", domain.ErrInvalidSource, s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}
