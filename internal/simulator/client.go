package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/isdelr/tagpulse-be/internal/models"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Message)
}

// Client talks to the event API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the server at baseURL, e.g. http://localhost:4000.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// CreateEvent posts a new event and returns the stored record.
func (c *Client) CreateEvent(ctx context.Context, in NewEvent) (models.Event, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return models.Event{}, fmt.Errorf("could not save event: %w", err)
	}
	var out models.Event
	if err := c.do(ctx, http.MethodPost, "/api/events", body, http.StatusCreated, &out); err != nil {
		return models.Event{}, fmt.Errorf("could not save event: %w", err)
	}
	return out, nil
}

// ListEvents fetches all events, newest first.
func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	if err := c.do(ctx, http.MethodGet, "/api/events", nil, http.StatusOK, &out); err != nil {
		return nil, fmt.Errorf("could not load events: %w", err)
	}
	return out, nil
}

// GetStats fetches the aggregate stats.
func (c *Client) GetStats(ctx context.Context) (models.Stats, error) {
	var out models.Stats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, http.StatusOK, &out); err != nil {
		return models.Stats{}, fmt.Errorf("could not load stats: %w", err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, wantStatus int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var apiErr struct {
			Message string `json:"message"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(raw, &apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return &APIError{Status: resp.StatusCode, Message: apiErr.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
