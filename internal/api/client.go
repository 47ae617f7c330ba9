package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to a running Tasbih API server. Counting sessions use it
// for the optimistic write-behind path: local state is updated first and
// the server write follows.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL, e.g.
// "http://localhost:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListCounters fetches all counters from the server.
func (c *Client) ListCounters(ctx context.Context) ([]CounterPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/counters", nil)
	if err != nil {
		return nil, fmt.Errorf("api client: list: %w", err)
	}
	var out []CounterPayload
	if err := c.do(req, http.StatusOK, &out); err != nil {
		return nil, fmt.Errorf("api client: list: %w", err)
	}
	return out, nil
}

// CreateCounter creates a counter on the server.
func (c *Client) CreateCounter(ctx context.Context, title string, count int) (CounterPayload, error) {
	body, err := json.Marshal(CreateCounterRequest{Title: title, Count: count})
	if err != nil {
		return CounterPayload{}, fmt.Errorf("api client: create: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/counters", bytes.NewReader(body))
	if err != nil {
		return CounterPayload{}, fmt.Errorf("api client: create: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out CounterPayload
	if err := c.do(req, http.StatusOK, &out); err != nil {
		return CounterPayload{}, fmt.Errorf("api client: create: %w", err)
	}
	return out, nil
}

// CompleteRun reports a finished run for the given counter id.
func (c *Client) CompleteRun(ctx context.Context, id uint, count int) (CounterPayload, error) {
	body, err := json.Marshal(CompleteRunRequest{Count: count})
	if err != nil {
		return CounterPayload{}, fmt.Errorf("api client: complete %d: %w", id, err)
	}
	url := fmt.Sprintf("%s/counters/%d/complete", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return CounterPayload{}, fmt.Errorf("api client: complete %d: %w", id, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out CounterPayload
	if err := c.do(req, http.StatusOK, &out); err != nil {
		return CounterPayload{}, fmt.Errorf("api client: complete %d: %w", id, err)
	}
	return out, nil
}

// DeleteCounter removes a counter from the server.
func (c *Client) DeleteCounter(ctx context.Context, id uint) error {
	url := fmt.Sprintf("%s/counters/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("api client: delete %d: %w", id, err)
	}
	if err := c.do(req, http.StatusNoContent, nil); err != nil {
		return fmt.Errorf("api client: delete %d: %w", id, err)
	}
	return nil
}

// do executes the request and decodes the response body into out when the
// status matches. Non-matching statuses are surfaced with the server's
// error body when one is present.
func (c *Client) do(req *http.Request, wantStatus int, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var apiErr ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
