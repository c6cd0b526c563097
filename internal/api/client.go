package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash-preview-05-20"
	DefaultTimeout = 60 * time.Second
)

// ErrNoAPIKey is returned when a request is attempted without
// CALC_GEMINI_API_KEY or gemini.api_key being set.
var ErrNoAPIKey = errors.New("CALC_GEMINI_API_KEY is not set")

// StatusError is a non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
	Status     string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (status: %s)", e.Message, e.Status)
	}
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

// Client communicates with the Gemini generateContent API.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewClient creates a new API client. Empty arguments fall back to the
// defaults above.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Model returns the model requests are sent to.
func (c *Client) Model() string { return c.model }

// do makes a key-authenticated request (x-goog-api-key) and returns the raw
// response body.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	return c.requestWithHeaders(ctx, method, path, body, map[string]string{
		"x-goog-api-key": c.apiKey,
	})
}

func (c *Client) requestWithHeaders(ctx context.Context, method, path string, body interface{}, headers map[string]string) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &StatusError{StatusCode: resp.StatusCode}
		if gjson.ValidBytes(respBody) {
			apiErr.Message = gjson.GetBytes(respBody, "error.message").String()
			apiErr.Status = gjson.GetBytes(respBody, "error.status").String()
		}
		return nil, apiErr
	}

	return respBody, nil
}
