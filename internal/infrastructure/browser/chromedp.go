package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

type ChromeOptions struct {
	ExecPath  string
	Headless  bool
	NoSandbox bool
	UserAgent string
}

// Chrome starts a dedicated browser process for every page.
type Chrome struct {
	opts ChromeOptions
	log  *zap.Logger
}

var _ Browser = (*Chrome)(nil)

func NewChrome(opts ChromeOptions, log *zap.Logger) *Chrome {
	if log == nil {
		log = zap.NewNop()
	}
	return &Chrome{opts: opts, log: log}
}

func (c *Chrome) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.Flag("headless", c.opts.Headless))
	if c.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.opts.ExecPath))
	}
	if c.opts.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if c.opts.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(c.opts.UserAgent))
	}
	return opts
}

// NewPage launches a browser and opens a tab. The launch is bounded by
// ctx; the page itself outlives ctx until Close.
func (c *Chrome) NewPage(ctx context.Context) (Page, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), c.allocatorOptions()...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	// An empty Run starts the browser so launch failures surface here. A
	// deadline on the first Run would end the browser with it, so the
	// launch is raced against ctx instead.
	started := make(chan error, 1)
	go func() { started <- chromedp.Run(tabCtx) }()
	select {
	case err := <-started:
		if err != nil {
			tabCancel()
			allocCancel()
			return nil, fmt.Errorf("start browser: %w", err)
		}
	case <-ctx.Done():
		tabCancel()
		allocCancel()
		<-started
		return nil, fmt.Errorf("start browser: %w", ctx.Err())
	}
	c.log.Debug("browser.page_opened")
	return &chromePage{ctx: tabCtx, cancelTab: tabCancel, cancelAlloc: allocCancel, log: c.log}, nil
}

type chromePage struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	log         *zap.Logger
	closed      bool
}

// run executes actions on the tab, bounded by the caller's ctx.
func (p *chromePage) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()
	if dl, ok := ctx.Deadline(); ok {
		var cancelDL context.CancelFunc
		runCtx, cancelDL = context.WithDeadline(runCtx, dl)
		defer cancelDL()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (p *chromePage) Navigate(ctx context.Context, url string) error {
	return p.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// textSource picks the node to read. An explicit selector reads the
// node's textContent, hidden or not; without one the page body's
// rendered text is read.
func textSource(selector string) (sel string, content bool) {
	if selector == "" {
		return "body", false
	}
	return selector, true
}

func (p *chromePage) Text(ctx context.Context, selector string) (string, error) {
	sel, content := textSource(selector)
	var text string
	action := chromedp.Text(sel, &text, chromedp.ByQuery)
	if content {
		action = chromedp.TextContent(sel, &text, chromedp.ByQuery)
	}
	if err := p.run(ctx, action); err != nil {
		return "", err
	}
	return text, nil
}

// Close shuts the tab and the browser process. Safe to call twice.
func (p *chromePage) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	err := chromedp.Cancel(p.ctx)
	p.cancelTab()
	p.cancelAlloc()
	p.log.Debug("browser.page_closed")
	return err
}
