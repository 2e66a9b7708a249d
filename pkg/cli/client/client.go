package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"agentscrape-go/pkg/cli/logger"

	"github.com/google/uuid"
)

// DefaultTimeout is used when NewClient is given a non-positive timeout.
const DefaultTimeout = 30 * time.Second

// Client is an HTTP client for the agent and scraper API
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l.Sub("client") }
}

// NewClient creates a new API client
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	// Remove trailing slash from base URL
	baseURL = strings.TrimSuffix(baseURL, "/")
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// buildRequest creates an HTTP request with proper headers
func (c *Client) buildRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := fmt.Sprintf("%s%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	return req, nil
}

// do performs an HTTP request and returns the body of a 2xx response.
func (c *Client) do(op string, req *http.Request) ([]byte, error) {
	start := time.Now()
	reqID := req.Header.Get("X-Request-ID")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("op", op).Str("request_id", reqID).Msg("request failed")
		return nil, newTransportError(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(op, fmt.Errorf("failed to read response: %w", err))
	}

	c.log.Debug().
		Str("op", op).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request completed")

	// Check for HTTP errors
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errorResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error != "" {
			return nil, newBackendError(op, resp.StatusCode, errorResp.Error)
		}
		errorMsg := strings.TrimSpace(string(body))
		if errorMsg == "" {
			errorMsg = resp.Status
		}
		return nil, newBackendError(op, resp.StatusCode, errorMsg)
	}

	return body, nil
}

// doEnvelope performs a request whose response carries a success flag and
// decodes the payload into data when data is non-nil.
func (c *Client) doEnvelope(ctx context.Context, op, method, path string, payload, data interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := c.buildRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	raw, err := c.do(op, req)
	if err != nil {
		return err
	}

	var env struct {
		Success bool            `json:"success"`
		Error   string          `json:"error"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return newInvalidResponseError(op, err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "backend reported failure"
		}
		return newBackendError(op, 0, msg)
	}

	if data != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, data); err != nil {
			return newInvalidResponseError(op, err)
		}
	}
	return nil
}

// doAccepted performs a request where only HTTP-level success matters.
func (c *Client) doAccepted(ctx context.Context, op, method, path string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := c.buildRequest(ctx, method, path, bytes.NewReader(jsonData))
	if err != nil {
		return err
	}

	_, err = c.do(op, req)
	return err
}
