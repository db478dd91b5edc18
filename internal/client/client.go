// Package client is a typed HTTP client for the shop API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/http/apierr"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/correlationid"
)

var (
	// ErrNotFound is returned when the API answers 404.
	ErrNotFound = errors.New("not found")
	// ErrConnection is returned when the API cannot be reached at all.
	ErrConnection = errors.New("connection error")
)

// StatusError is returned for any other non-200 answer.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a client for the API rooted at baseURL, which includes the API prefix,
// e.g. http://localhost:8000/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id, ok := correlationid.FromContext(ctx); ok {
		req.Header.Set(correlationid.Header, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrConnection, method, path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	default:
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var res apierr.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&res); err == nil {
			statusErr.Code = res.Code
			statusErr.Message = res.Message
		}
		return fmt.Errorf("%s %s: %w", method, path, statusErr)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
