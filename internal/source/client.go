package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ams-console/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenSource supplies the bearer token attached to every request.
// Implementations may refuse (return an error) when no valid token is held.
type TokenSource interface {
	Token() (string, error)
}

// Client talks to one logical service (identity, asset or HR). Requests run
// to completion or failure; there is no client-side timeout, retry or abort
// beyond context cancellation.
type Client struct {
	base    string
	httpc   *http.Client
	tokens  TokenSource
	log     *zap.SugaredLogger
	metrics *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithTokenSource attaches bearer tokens from ts to every request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the request logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) { c.log = log }
}

// WithMetrics enables request instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a client for the service rooted at base.
func NewClient(base string, opts ...Option) *Client {
	c := &Client{
		base:  strings.TrimRight(base, "/"),
		httpc: &http.Client{},
		log:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Base returns the service base URL.
func (c *Client) Base() string { return c.base }

// Metrics returns the attached metrics set, possibly nil.
func (c *Client) Metrics() *metrics.Metrics { return c.metrics }

// do issues one request and returns the response status, headers and body.
// Non-2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload interface{}) (http.Header, []byte, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("bearer token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warnw("request failed", "method", method, "url", u, "error", err)
		return nil, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	c.log.Debugw("request done",
		"method", method, "url", u,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.Header, data, decodeAPIError(resp.StatusCode, data)
	}
	return resp.Header, data, nil
}
