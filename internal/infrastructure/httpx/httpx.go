package httpx

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const maxBodyBytes = 8 << 20

// Client issues GET requests with fixed identifying headers and retries
// transport errors and 5xx responses for at most RetryMaxElapsed. The
// HTTP client timeout bounds the whole call, retries included.
type Client struct {
	HTTP            *http.Client
	UserAgent       string
	Headers         map[string]string
	RetryMaxElapsed time.Duration
}

func New(timeout time.Duration) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   2,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &Client{HTTP: &http.Client{Timeout: timeout, Transport: transport}}
}

func (c *Client) policy(ctx context.Context) backoff.BackOff {
	if c.RetryMaxElapsed <= 0 {
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 1 * time.Second
	exp.MaxElapsedTime = c.RetryMaxElapsed
	return backoff.WithContext(exp, ctx)
}

// Get fetches url and returns the response body of a 200 response.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if c.HTTP == nil {
		c.HTTP = http.DefaultClient
	}
	if c.HTTP.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.HTTP.Timeout)
		defer cancel()
	}
	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		if c.UserAgent != "" {
			req.Header.Set("User-Agent", c.UserAgent)
		}
		for k, v := range c.Headers {
			req.Header.Set(k, v)
		}
		resp, err := c.HTTP.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		body = b
		return nil
	}
	if err := backoff.Retry(op, c.policy(ctx)); err != nil {
		return nil, err
	}
	return body, nil
}
