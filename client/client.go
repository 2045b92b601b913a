// Package client is a typed HTTP client for the kanban API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"kanban/models"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL points at a server started with the default config.
const DefaultBaseURL = "http://localhost:8080/api/kanban"

// Client calls one kanban server. Board-scoped calls are sent for the
// project set with WithProject, or the server's default project when none
// is set.
type Client struct {
	baseURL    string
	projectID  string
	httpClient *http.Client
}

type Option func(*Client)

func WithProject(projectID string) Option {
	return func(c *Client) {
		c.projectID = projectID
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Project returns the project id board-scoped calls use; "" means the
// server default.
func (c *Client) Project() string {
	return c.projectID
}

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Details    string `json:"details"`
	Code       string `json:"code"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%d): %s", e.Message, e.StatusCode, e.Details)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
}

// Unwrap maps the response onto the models error sentinels so callers can
// use errors.Is.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "not_found":
		return models.ErrNotFound
	case "invalid_input":
		return models.ErrInvalidInput
	case "no_target":
		return models.ErrNoTarget
	case "clarification_needed":
		return models.ErrClarificationNeeded
	case "storage_failure":
		return models.ErrStorageFailure
	}
	switch {
	case e.StatusCode == http.StatusNotFound:
		return models.ErrNotFound
	case e.StatusCode == http.StatusBadRequest:
		return models.ErrInvalidInput
	}
	return nil
}

// do sends body as JSON and decodes the response into out when out is not nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
			apiErr.Details = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// scope adds the project id to board-scoped requests.
func (c *Client) scope(q url.Values) url.Values {
	if q == nil {
		q = url.Values{}
	}
	if c.projectID != "" {
		q.Set("projectId", c.projectID)
	}
	return q
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
