// ABOUTME: Resilient HTTP client for the fitness backend.
// ABOUTME: Bounded retries, linear backoff, terminal 4xx classification.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitcoach/internal/identity"
)

const (
	defaultRetries   = 3
	defaultBaseDelay = 2 * time.Second

	initDataHeader = "x-telegram-init-data"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Terminal() {
		return fmt.Sprintf("client error: %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("server error: %d: %s", e.Status, e.Body)
}

// Terminal reports whether the error must not be retried: any 4xx except
// 429. Everything else (5xx, 429) counts as transient.
func (e *APIError) Terminal() bool {
	return e.Status >= 400 && e.Status < 500 && e.Status != http.StatusTooManyRequests
}

// Client sends authenticated requests to the backend, retrying transient
// failures with linear backoff (delay, 2*delay, ... between attempts).
type Client struct {
	baseURL   string
	http      *http.Client
	identity  identity.Provider
	retries   int
	baseDelay time.Duration
	sleep     func(time.Duration)
	log       *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRetries overrides the attempt count.
func WithRetries(n int) Option {
	return func(c *Client) { c.retries = n }
}

// WithBaseDelay overrides the base backoff delay.
func WithBaseDelay(d time.Duration) Option {
	return func(c *Client) { c.baseDelay = d }
}

// WithSleep overrides the sleep function. Tests pass a no-op.
func WithSleep(fn func(time.Duration)) Option {
	return func(c *Client) { c.sleep = fn }
}

// NewClient creates a backend client rooted at baseURL.
func NewClient(baseURL string, id identity.Provider, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		http:      &http.Client{Timeout: 30 * time.Second},
		identity:  id,
		retries:   defaultRetries,
		baseDelay: defaultBaseDelay,
		sleep:     time.Sleep,
		log:       log.WithPrefix("api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one JSON request with retries and decodes the response into out
// (skipped when out is nil). Terminal client errors surface immediately;
// transient failures retry up to the attempt budget and the last error is
// returned after exhaustion.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if attempt > 1 {
			c.sleep(c.baseDelay * time.Duration(attempt-1))
		}

		err := c.attempt(ctx, method, path, payload, out)
		if err == nil {
			return nil
		}
		if apiErr, ok := err.(*APIError); ok && apiErr.Terminal() {
			return apiErr
		}
		lastErr = err
		c.log.Warn("request attempt failed", "method", method, "path", path, "attempt", attempt, "err", err)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return fmt.Errorf("after %d attempts: %w", c.retries, lastErr)
}

func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, out any) error {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if initData := c.identity.InitData(); initData != "" {
		req.Header.Set(initDataHeader, initData)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: string(bytes.TrimSpace(respBody))}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
