package petcare

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

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/brightpaws/frontdesk/internal/observability/metrics"
	"github.com/brightpaws/frontdesk/pkg/logging"
)

// TokenSource supplies the session credential attached to authenticated
// requests. Invalidate is called by the client, and only by the client, when
// the API reports the credential invalid or expired.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate(ctx context.Context) error
}

// Client is an HTTP client for the appointment-management API.
type Client struct {
	baseURL    string
	version    string
	httpClient *http.Client
	logger     *logging.Logger
	tokens     TokenSource
	metrics    *metrics.APIMetrics
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTokenSource attaches a session credential source. Without one the
// client issues unauthenticated requests (the public booking widget).
func WithTokenSource(tokens TokenSource) ClientOption {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithMetrics records per-operation request counters and latency.
func WithMetrics(m *metrics.APIMetrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a client for the API mounted under
// baseURL/api/<version>. Every request carries an explicit timeout so an
// unresponsive server can never leave a caller suspended indefinitely.
func NewClient(baseURL, version string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		version: version,
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logging.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + "/api/" + c.version + path
}

// do issues one API call and decodes the response into out (when non-nil).
// Mutating operations return the updated representation, which callers must
// treat as authoritative.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	start := time.Now()
	err := c.doOnce(ctx, op, method, path, query, body, out)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.ObserveRequest(op, outcome)
	c.metrics.ObserveLatency(op, time.Since(start).Seconds())
	return err
}

func (c *Client) doOnce(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("petcare: marshal %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.endpoint(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("petcare: create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("petcare: resolve credential for %s: %w", op, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("petcare: %s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && c.tokens != nil {
		if invErr := c.tokens.Invalidate(ctx); invErr != nil {
			c.logger.Warn("failed to clear rejected credential", "operation", op, "error", invErr)
		}
		return fmt.Errorf("petcare: %s: %w", op, ErrUnauthorized)
	}

	if resp.StatusCode >= 400 {
		return c.rejection(op, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("petcare: decode %s response: %w", op, err)
		}
	}

	return nil
}

// rejection turns a non-success response into an APIError, preferring the
// server's "detail" field when the body carries one.
func (c *Client) rejection(op string, resp *http.Response) error {
	apiErr := &APIError{Operation: op, StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(raw) > 0 {
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(raw, &payload) == nil {
			apiErr.Detail = payload.Detail
		}
	}

	c.logger.Warn("api rejection", "operation", op, "status", resp.StatusCode, "detail", apiErr.Detail)
	return apiErr
}
