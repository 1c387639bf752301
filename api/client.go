package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wricardo/mcp-training/fibbox/game/engine"
	"github.com/wricardo/mcp-training/fibbox/game/service"
)

// APIError is a non-2xx response from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// Client is a small typed client for the REST API, used by the bundled
// command line tools.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CreateSession starts a new session on the given config; empty means default
func (c *Client) CreateSession(ctx context.Context, configID string) (*service.SessionInfo, error) {
	var body any
	if configID != "" {
		body = map[string]string{"config_id": configID}
	}
	var info service.SessionInfo
	if err := c.do(ctx, http.MethodPost, "/api/sessions", body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetSession fetches a session with its current snapshot
func (c *Client) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	var info service.SessionInfo
	if err := c.do(ctx, http.MethodGet, "/api/sessions/"+sessionID, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetState fetches just the snapshot of a session
func (c *Client) GetState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	var state engine.GameState
	if err := c.do(ctx, http.MethodGet, "/api/sessions/"+sessionID+"/state", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Move moves the player one cell
func (c *Client) Move(ctx context.Context, sessionID, direction string) (*service.MoveResult, error) {
	var result service.MoveResult
	body := map[string]any{"direction": direction}
	if err := c.do(ctx, http.MethodPost, "/api/sessions/"+sessionID+"/move", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BulkMove executes moves in order until one is blocked
func (c *Client) BulkMove(ctx context.Context, sessionID string, moves []string) (*service.BulkMoveResult, error) {
	var result service.BulkMoveResult
	body := map[string]any{"moves": moves}
	if err := c.do(ctx, http.MethodPost, "/api/sessions/"+sessionID+"/bulk-move", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PressKey sends a raw key name; unmapped keys come back with Mapped=false
func (c *Client) PressKey(ctx context.Context, sessionID, key string) (*service.KeyResult, error) {
	var result service.KeyResult
	body := map[string]string{"key": key}
	if err := c.do(ctx, http.MethodPost, "/api/sessions/"+sessionID+"/key", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Tick asks the server to spawn one box now
func (c *Client) Tick(ctx context.Context, sessionID string) (*service.TickResult, error) {
	var result service.TickResult
	if err := c.do(ctx, http.MethodPost, "/api/sessions/"+sessionID+"/tick", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reset clears the board and places the player on a new random cell
func (c *Client) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	var resp struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/sessions/"+sessionID+"/reset", nil, &resp); err != nil {
		return nil, err
	}
	return resp.State, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}
