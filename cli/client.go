package cli

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

	"launcher/models"
)

// Client is the HTTP client for talking to a launcher server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new HTTP client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-2xx reply. Message is the server's "error" field when
// the body carried one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doRequest executes an HTTP request. body is sent as is when it is a
// []byte and JSON encoded otherwise.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		bodyReader = bytes.NewReader(b)
	default:
		jsonData, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// handleResponse decodes a 2xx body into result or turns the reply into an
// *APIError.
func (c *Client) handleResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(bodyBytes))}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(bodyBytes, &payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// HealthCheck pings the health endpoint
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return err
	}
	return c.handleResponse(resp, nil)
}

// ListApps lists apps, optionally restricted to category
func (c *Client) ListApps(ctx context.Context, category string) ([]models.AppEntry, error) {
	path := "/api/apps"
	if category != "" {
		path += "?" + url.Values{"category": {category}}.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Apps []models.AppEntry `json:"apps"`
	}
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, err
	}
	return result.Apps, nil
}

// ImportApps posts an import body ({"apps": [...]} or a bare array)
func (c *Client) ImportApps(ctx context.Context, body []byte) (models.ImportSummary, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/apps/import", body)
	if err != nil {
		return models.ImportSummary{}, err
	}

	var summary models.ImportSummary
	if err := c.handleResponse(resp, &summary); err != nil {
		return models.ImportSummary{}, err
	}
	return summary, nil
}

// Export fetches every app and the current settings
func (c *Client) Export(ctx context.Context) (models.Export, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/apps/export", nil)
	if err != nil {
		return models.Export{}, err
	}

	var export models.Export
	if err := c.handleResponse(resp, &export); err != nil {
		return models.Export{}, err
	}
	return export, nil
}
