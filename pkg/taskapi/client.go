package taskapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	RequestIDHeader = "X-Request-ID"

	defaultTimeout = 10 * time.Second
)

// Client talks to the task API rooted at a fixed base URL. Every call is a
// single attempt; failures come back as *RequestError or *NetworkError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout applies to a copy of the HTTP client; a client passed through
// WithHTTPClient is never modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{baseURL: strings.TrimRight(baseURL, "/")}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if c.timeout > 0 {
		httpClient := *c.httpClient
		httpClient.Timeout = c.timeout
		c.httpClient = &httpClient
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// RequestOption adjusts an outgoing request after the default headers are
// set, so caller headers take precedence.
type RequestOption func(*http.Request)

func WithHeader(key string, value string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

func WithQuery(values url.Values) RequestOption {
	return func(req *http.Request) {
		req.URL.RawQuery = values.Encode()
	}
}

// Do sends one request to path and decodes a successful body into out.
// A 204 response, or a nil out, leaves out untouched.
func (c *Client) Do(ctx context.Context, method string, path string, body interface{}, out interface{}, opts ...RequestOption) error {
	payload, err := c.send(ctx, method, path, body, opts...)
	if err != nil {
		return err
	}
	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, path, err)
	}
	return nil
}

// send performs the request and returns the trimmed body of a 2xx reply,
// empty for 204.
func (c *Client) send(ctx context.Context, method string, path string, body interface{}, opts ...RequestOption) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	for _, opt := range opts {
		opt(req)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("requestId", requestID).Str("method", method).Str("path", path).Msg("Task API unreachable")
		return nil, &NetworkError{Method: method, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	log.Debug().
		Str("requestId", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Task API call")

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	payload, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// an unreadable error body still reports the status
		if readErr != nil {
			log.Debug().Err(readErr).Str("requestId", requestID).Msg("Failed to read error body")
			payload = nil
		}
		return nil, &RequestError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, payload)}
	}
	if readErr != nil {
		return nil, &NetworkError{Method: method, URL: endpoint, Err: readErr}
	}
	return bytes.TrimSpace(payload), nil
}

// errorMessage pulls a readable message out of an error body: a string
// detail, or the msg fields of a validation detail list.
func errorMessage(statusCode int, payload []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && len(body.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(body.Detail, &detail); err == nil && detail != "" {
			return detail
		}

		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(body.Detail, &items); err == nil {
			messages := make([]string, 0, len(items))
			for _, item := range items {
				if item.Msg != "" {
					messages = append(messages, item.Msg)
				}
			}
			if len(messages) > 0 {
				return strings.Join(messages, "; ")
			}
		}
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}
