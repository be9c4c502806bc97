package browser

import "context"

//go:generate mockgen -source=browser.go -destination=mocks_test.go -package=browser

// Browser hands out exclusive pages. Every page must be closed by the caller.
type Browser interface {
	NewPage(ctx context.Context) (Page, error)
}

type Page interface {
	// Navigate loads url and waits until the document body is ready.
	Navigate(ctx context.Context, url string) error
	// Text returns the textContent of the first node matching selector,
	// whether or not it is visible. An empty selector returns the rendered
	// text of the page body.
	Text(ctx context.Context, selector string) (string, error)
	Close() error
}
