// Package adda is a small authenticated REST client for the Broker Adda
// backend. It knows nothing about response shapes: every call returns the raw
// body bytes and leaves decoding to the caller.
package adda

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoToken is returned before any network I/O when the session holds no token.
var ErrNoToken = errors.New("no authentication token found")

// TokenSource yields the current bearer token. It is consulted on every call,
// so a login or logout takes effect on the next request.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Observer is notified after every completed round trip.
type Observer interface {
	ObserveRequest(method, path string, status int, elapsed time.Duration)
}

// StatusError is returned for responses with status >= 400.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("adda: %s %s: status %d: %s", e.Method, e.Path, e.Status, body)
}

// StatusCode extracts the HTTP status from err, or 0 when err is not a StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// Client represents a Broker Adda API client
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	tokens   TokenSource
	observer Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = hc
	}
}

// WithObserver registers a round-trip observer, typically the metrics collector.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient creates a new client. No timeout is set unless the caller
// provides an http.Client carrying one.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues an authenticated GET with the given query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req, path, true)
}

// Post sends body as JSON with an authenticated POST.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.sendJSON(ctx, http.MethodPost, path, body, true)
}

// PostPublic sends body as JSON without an Authorization header (login).
func (c *Client) PostPublic(ctx context.Context, path string, body any) ([]byte, error) {
	return c.sendJSON(ctx, http.MethodPost, path, body, false)
}

// Put sends body as JSON with an authenticated PUT.
func (c *Client) Put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.sendJSON(ctx, http.MethodPut, path, body, true)
}

// Patch sends body as JSON with an authenticated PATCH. A nil body sends no payload.
func (c *Client) Patch(ctx context.Context, path string, body any) ([]byte, error) {
	return c.sendJSON(ctx, http.MethodPatch, path, body, true)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req, path, true)
}

// Upload posts r as a multipart form file under field.
func (c *Client) Upload(ctx context.Context, path, field, filename string, r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to copy upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, path, true)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body any, auth bool) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, path, auth)
}

func (c *Client) do(req *http.Request, path string, auth bool) ([]byte, error) {
	if auth {
		token := ""
		if c.tokens != nil {
			token = c.tokens.Token()
		}
		if token == "" {
			return nil, ErrNoToken
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.observe(req.Method, path, 0, start)
		return nil, fmt.Errorf("%s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.observe(req.Method, path, resp.StatusCode, start)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &StatusError{
			Method: req.Method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   string(body),
		}
	}

	return body, nil
}

func (c *Client) observe(method, path string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(method, path, status, time.Since(start))
	}
}
