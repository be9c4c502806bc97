package scraper

import (
	"bytes"
	"context"
	"fmt"

	"quotes-aggregator/internal/application"
	"quotes-aggregator/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Static reads sources whose quotes are present in the served HTML.
type Static struct {
	Fetch Fetcher
}

var _ application.Extractor = (*Static)(nil)

func NewStatic(f Fetcher) *Static { return &Static{Fetch: f} }

func (s *Static) Extract(ctx context.Context, src domain.Source) (domain.RatePair, error) {
	body, err := s.Fetch.Get(ctx, src.URL)
	if err != nil {
		return domain.RatePair{}, fmt.Errorf("%w: %s: %w", application.ErrFetch, src.Name, err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return domain.RatePair{}, fmt.Errorf("%s: parse document: %w", src.Name, err)
	}
	pair, err := Parse(doc, src.Static)
	if err != nil {
		return domain.RatePair{}, fmt.Errorf("%s: %w", src.Name, err)
	}
	return pair, nil
}

// Parse applies rule to an already parsed document.
func Parse(doc *goquery.Document, rule domain.StaticRule) (domain.RatePair, error) {
	if rule.UsesPattern() {
		raw, err := domain.Submatch(rule.Pattern, doc.Find(rule.TextSelector).Text())
		if err != nil {
			return domain.RatePair{}, err
		}
		v, err := rule.Format.Parse(raw)
		if err != nil {
			return domain.RatePair{}, err
		}
		return domain.NewRatePair(v, v)
	}

	buy, err := firstValue(doc, rule.BuySelector, rule.Format)
	if err != nil {
		return domain.RatePair{}, fmt.Errorf("buy: %w", err)
	}
	sell, err := firstValue(doc, rule.SellSelector, rule.Format)
	if err != nil {
		return domain.RatePair{}, fmt.Errorf("sell: %w", err)
	}
	return domain.NewRatePair(buy, sell)
}

func firstValue(doc *goquery.Document, selector string, f domain.NumberFormat) (float64, error) {
	node := doc.Find(selector).First()
	if node.Length() == 0 {
		return 0, fmt.Errorf("%w: selector %q", domain.ErrNoMatch, selector)
	}
	return f.Parse(node.Text())
}
