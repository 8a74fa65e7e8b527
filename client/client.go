// Package client provides the HTTP client for the forest-sensor
// dashboard API. A Client carries the base address, a default timeout
// and the current bearer credential; every other package talks to the
// server through it.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every request unless overridden with WithTimeout
// or WithHTTPClient.
const DefaultTimeout = 30 * time.Second

// RequestLogger receives one line per completed request. status is 0 when
// no response was received.
type RequestLogger func(method, path string, status int, elapsed time.Duration)

// Client is an authenticated HTTP client for the dashboard API.
// The bearer credential is mutable; changing it affects only requests
// issued after the change.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logf       RequestLogger

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient substitutes the underlying *http.Client entirely.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger installs a request logger. The default logs nothing.
func WithLogger(logf RequestLogger) Option {
	return func(c *Client) { c.logf = logf }
}

// New creates a Client for the given base address.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base address.
func (c *Client) BaseURL() string { return c.baseURL }

// SetToken sets the default bearer credential for subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the default bearer credential.
func (c *Client) ClearToken() { c.SetToken("") }

// Token returns the current bearer credential, empty if none.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do issues one request and decodes a JSON response into out (skipped when
// out is nil). contentType is empty for bodyless requests.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logf != nil {
			c.logf(method, path, 0, time.Since(start))
		}
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()
	if c.logf != nil {
		c.logf(method, path, resp.StatusCode, time.Since(start))
	}

	if resp.StatusCode >= 400 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return apiErrorFromResponse(resp.StatusCode, payload)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrMalformedResponse, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(in); err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, strings.NewReader(buf.String()), "application/json", out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", out)
}
