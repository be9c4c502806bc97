package domain

import (
	"fmt"
	"regexp"
	"time"
)

type Strategy string

const (
	StrategyStaticMarkup Strategy = "static_markup"
	StrategyRenderedPage Strategy = "rendered_page"
)

// Source describes one external quotation provider and how to read it.
// ID is the stable identity reported by the read API.
type Source struct {
	ID       string
	Name     string
	URL      string
	Strategy Strategy
	Static   StaticRule
	Rendered RenderedRule
}

// StaticRule locates buy/sell text in a downloaded document. Either both
// selectors are set, or Pattern is matched against the text of TextSelector
// and the single captured value is used for both sides.
type StaticRule struct {
	BuySelector  string
	SellSelector string
	TextSelector string
	Pattern      *regexp.Regexp
	Format       NumberFormat
}

func (r StaticRule) UsesPattern() bool { return r.Pattern != nil }

// RenderedRule reads a rate from a page after client-side rendering.
// An empty Selector means the visible text of the whole body.
type RenderedRule struct {
	Selector string
	Pattern  *regexp.Regexp
	Format   NumberFormat
	Invert   bool
	Settle   time.Duration
}

// Raw isolates the rate substring from the rendered text.
func (r RenderedRule) Raw(text string) (string, error) {
	if r.Pattern == nil {
		return text, nil
	}
	return Submatch(r.Pattern, text)
}

func (s Source) Validate() error {
	if s.ID == "" || s.URL == "" {
		return fmt.Errorf("%w: %q: id and url are required", ErrInvalidSource, s.Name)
	}
	switch s.Strategy {
	case StrategyStaticMarkup:
		if s.Static.UsesPattern() {
			if s.Static.TextSelector == "" {
				return fmt.Errorf("%w: %q: pattern rule needs a text selector", ErrInvalidSource, s.Name)
			}
			return nil
		}
		if s.Static.BuySelector == "" || s.Static.SellSelector == "" {
			return fmt.Errorf("%w: %q: buy and sell selectors are required", ErrInvalidSource, s.Name)
		}
	case StrategyRenderedPage:
		if s.Rendered.Selector == "" && s.Rendered.Pattern == nil {
			return fmt.Errorf("%w: %q: selector or pattern is required", ErrInvalidSource, s.Name)
		}
	default:
		return fmt.Errorf("%w: %q: unknown strategy %q", ErrInvalidSource, s.Name, s.Strategy)
	}
	return nil
}

// Submatch returns the first capture group of re in text.
func Submatch(re *regexp.Regexp, text string) (string, error) {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 || m[1] == "" {
		return "", fmt.Errorf("%w: %s", ErrNoMatch, re.String())
	}
	return m[1], nil
}
