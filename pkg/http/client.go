package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	MethodGet  = http.MethodGet
	MethodHead = http.MethodHead

	// DefaultMaxBody caps a response body read into memory.
	DefaultMaxBody = 32 << 20
	defaultAgent   = "inflation-panel/1.0"
)

// ClientOption configures Client.
type ClientOption func(*Client)

// RequestOptions holds HTTP request parameters.
type RequestOptions struct {
	Method      string
	URL         string
	Headers     map[string]string
	QueryParams map[string][]string
}

// Client fetches documents with a bounded timeout and body size.
type Client struct {
	timeout   time.Duration
	maxBody   int64
	userAgent string
	client    *http.Client
}

// NewClient creates a new HTTP client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		timeout:   30 * time.Second,
		maxBody:   DefaultMaxBody,
		userAgent: defaultAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{Timeout: c.timeout}
	return c
}

// SendRequest sends an HTTP request and returns response.
func (c *Client) SendRequest(ctx context.Context, opts *RequestOptions) (*http.Response, error) {
	method := opts.Method
	if method == "" {
		method = MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, opts.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if len(opts.QueryParams) > 0 {
		q := req.URL.Query()
		for key, values := range opts.QueryParams {
			for _, value := range values {
				q.Add(key, value)
			}
		}
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("User-Agent", c.userAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// SendAndParse sends request and reads the response into dest:
// raw bytes for *[]byte, a copy for io.Writer, JSON otherwise.
// Non-2xx responses are errors carrying the status and a body excerpt.
func (c *Client) SendAndParse(ctx context.Context, opts *RequestOptions, dest interface{}) error {
	resp, err := c.SendRequest(ctx, opts)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, c.maxBody)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, excerpt)
	}

	if dest == nil {
		return nil
	}

	switch v := dest.(type) {
	case *[]byte:
		b, err := io.ReadAll(body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		*v = b
	case io.Writer:
		if _, err := io.Copy(v, body); err != nil {
			return fmt.Errorf("copy body: %w", err)
		}
	default:
		if err := json.NewDecoder(body).Decode(dest); err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
	}

	return nil
}

// WithTimeout sets client timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithMaxBody caps the bytes read from one response.
func WithMaxBody(n int64) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}
