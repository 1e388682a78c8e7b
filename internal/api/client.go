package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client is a high-level client for the Tester Talk API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the Client during construction.
type Option func(*clientConfig) error

type clientConfig struct {
	httpClient *http.Client
	jar        http.CookieJar
	logger     *slog.Logger
	timeout    time.Duration
}

// New creates a new Client for the given Tester Talk instance. The
// server authenticates through a session cookie, so the client always
// carries a cookie jar; pass WithCookieJar to supply a persistent one.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("api: baseURL is required")
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	cfg := &clientConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.timeout > 0 {
		httpClient.Timeout = cfg.timeout
	}
	if cfg.jar != nil {
		httpClient.Jar = cfg.jar
	} else if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("api: create cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) error {
		cfg.httpClient = c
		return nil
	}
}

// WithCookieJar sets the cookie jar holding the session cookie.
func WithCookieJar(jar http.CookieJar) Option {
	return func(cfg *clientConfig) error {
		cfg.jar = jar
		return nil
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithTimeout sets a timeout on the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		cfg.timeout = d
		return nil
	}
}

// BaseURL returns the server URL the client talks to, without a
// trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// errorBody is the server's JSON error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// doJSON executes an HTTP request with an optional JSON body and
// decodes the JSON response into dst. If the response has an error
// status, it returns an *APIError carrying the server's message.
func (c *Client) doJSON(ctx context.Context, method, url, operation string, body, dst any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", operation, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", operation, err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, operation, dst)
}

// do executes a prepared request and decodes the JSON response into
// dst. Shared by doJSON and the multipart upload path.
func (c *Client) do(req *http.Request, operation string, dst any) error {
	ctx := req.Context()
	c.logger.InfoContext(ctx, "API request", "operation", operation, "method", req.Method, "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: do request: %w", operation, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "API response", "operation", operation, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		var eb errorBody
		if json.Unmarshal(respBody, &eb) == nil && eb.Error != "" {
			return newAPIError(operation, resp.StatusCode, eb.Error)
		}
		msg := strings.TrimSpace(string(respBody))
		if msg == "" {
			msg = resp.Status
		}
		return newAPIError(operation, resp.StatusCode, msg)
	}

	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return fmt.Errorf("%s: decode response: %w", operation, err)
		}
	}
	return nil
}

// Auth returns the scope for session management operations.
func (c *Client) Auth() *AuthScope { return &AuthScope{client: c} }

// Issues returns the scope for issue operations.
func (c *Client) Issues() *IssueScope { return &IssueScope{client: c} }

// Comments returns the scope for comment operations.
func (c *Client) Comments() *CommentScope { return &CommentScope{client: c} }

// Meta returns the scope for dropdown and metadata endpoints.
func (c *Client) Meta() *MetaScope { return &MetaScope{client: c} }

// Admin returns the scope for administrative operations.
func (c *Client) Admin() *AdminScope { return &AdminScope{client: c} }
