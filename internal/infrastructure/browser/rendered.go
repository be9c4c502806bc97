package browser

import (
	"context"
	"fmt"
	"time"

	"quotes-aggregator/internal/application"
	"quotes-aggregator/internal/domain"

	"go.uber.org/zap"
)

// Rendered reads sources whose quotes only appear after client-side
// rendering. One page is used per extraction and is always released.
type Rendered struct {
	browser Browser
	timeout time.Duration
	log     *zap.Logger
}

var _ application.Extractor = (*Rendered)(nil)

func NewRendered(b Browser, timeout time.Duration, log *zap.Logger) *Rendered {
	if log == nil {
		log = zap.NewNop()
	}
	return &Rendered{browser: b, timeout: timeout, log: log}
}

func (r *Rendered) Extract(ctx context.Context, src domain.Source) (pair domain.RatePair, err error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	page, err := r.browser.NewPage(ctx)
	if err != nil {
		return domain.RatePair{}, fmt.Errorf("%w: %s: %w", application.ErrBrowser, src.Name, err)
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			r.log.Warn("browser.close_failed", zap.String("source", src.Name), zap.Error(cerr))
		}
	}()

	if err := page.Navigate(ctx, src.URL); err != nil {
		return domain.RatePair{}, fmt.Errorf("%w: %s: navigate: %w", application.ErrBrowser, src.Name, err)
	}
	if err := sleep(ctx, src.Rendered.Settle); err != nil {
		return domain.RatePair{}, fmt.Errorf("%w: %s: settle: %w", application.ErrBrowser, src.Name, err)
	}
	text, err := page.Text(ctx, src.Rendered.Selector)
	if err != nil {
		return domain.RatePair{}, fmt.Errorf("%w: %s: read text: %w", application.ErrBrowser, src.Name, err)
	}

	pair, err = Interpret(src.Rendered, text)
	if err != nil {
		return domain.RatePair{}, fmt.Errorf("%s: %w", src.Name, err)
	}
	return pair, nil
}

// Interpret turns rendered text into a pair: the rate is isolated by the
// rule's pattern, normalized, and optionally inverted. Buy and sell are equal.
func Interpret(rule domain.RenderedRule, text string) (domain.RatePair, error) {
	raw, err := rule.Raw(text)
	if err != nil {
		return domain.RatePair{}, err
	}
	v, err := rule.Format.Parse(raw)
	if err != nil {
		return domain.RatePair{}, err
	}
	if rule.Invert {
		if v, err = domain.Reciprocal(v); err != nil {
			return domain.RatePair{}, err
		}
	} else if v <= 0 {
		return domain.RatePair{}, fmt.Errorf("%w: %v", domain.ErrInvalidRate, v)
	}
	return domain.NewRatePair(v, v)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
