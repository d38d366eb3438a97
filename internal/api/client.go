// Package api is the HTTP client for the finance backend's REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/storksoft/cashtrack/internal/common"
)

const apiPrefix = "/api/v1"

// Client talks to the backend. The token source is an explicit dependency;
// a nil source makes an unauthenticated client, used only for registration.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
	retry      common.RetryOptions
}

// New creates an authenticated API client.
func New(baseURL string, tokens oauth2.TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
	}
}

// NewPublic creates a client without a session, for unauthenticated
// endpoints.
func NewPublic(baseURL string) *Client {
	return New(baseURL, nil)
}

// Error is a failed backend response.
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error: %d - %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

// do performs one request/response cycle. out may be nil when no response
// body is expected.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u, err := url.Parse(c.baseURL + apiPrefix + path)
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return fmt.Errorf("failed to encode request body: %w", marshalErr)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, tokenErr := c.tokens.Token()
		if tokenErr != nil {
			return tokenErr
		}
		token.SetAuthHeader(req)
	}

	slog.Debug("API request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return c.responseError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// responseError maps a failed response to an error value. The backend wraps
// messages in a {"message": ...} envelope.
func (c *Client) responseError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var envelope struct {
		Message string `json:"message"`
	}
	message := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		message = envelope.Message
	}

	apiErr := &Error{StatusCode: resp.StatusCode, Message: message}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %v", common.ErrUnauthorized, apiErr)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %v", common.ErrForbidden, apiErr)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", common.ErrNotFound, apiErr)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", common.ErrRateLimit, apiErr)
	}
	return apiErr
}

// get performs an idempotent read with retries. Server-side failures and
// rate limits are retried; client errors are not.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return common.WithRetry(ctx, func() error {
		err := c.do(ctx, http.MethodGet, path, query, nil, out)
		if err == nil {
			return nil
		}

		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 && apiErr.StatusCode != http.StatusTooManyRequests {
			return &common.RetryableError{Err: err, Retryable: false}
		}
		if errors.Is(err, common.ErrUnauthorized) ||
			errors.Is(err, common.ErrForbidden) ||
			errors.Is(err, common.ErrNotFound) ||
			errors.Is(err, common.ErrSessionExpired) ||
			errors.Is(err, common.ErrNoSession) {
			return &common.RetryableError{Err: err, Retryable: false}
		}
		return err
	}, c.retry)
}

// Mutations run exactly once: one request per directed command, no retry.

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
