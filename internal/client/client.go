// internal/client/client.go
//
// Typed HTTP client for the Hangman API, shared by the player binary's
// solver modes. Every call returns the server's snapshot of the game.

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

	"github.com/robalobadob/hangman/internal/game"
)

const userAgent = "hangman-client/0.1.0"

// APIError is a non-2xx response decoded from the server's error
// envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d (%s): %s", e.Status, e.Code, e.Message)
}

// Client talks to one Hangman server.
type Client struct {
	base string
	http *http.Client
}

// New builds a client for the server at base, e.g. "http://127.0.0.1:8080".
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewGame asks the server to start a game.
func (c *Client) NewGame(ctx context.Context) (game.Snapshot, error) {
	return c.do(ctx, http.MethodGet, "/", nil)
}

// Game fetches the current snapshot of an existing game.
func (c *Client) Game(ctx context.Context, id string) (game.Snapshot, error) {
	return c.do(ctx, http.MethodGet, "/"+id, nil)
}

// Guess submits one letter to an existing game.
func (c *Client) Guess(ctx context.Context, id, letter string) (game.Snapshot, error) {
	body, err := json.Marshal(struct {
		Letter string `json:"letter"`
	}{Letter: letter})
	if err != nil {
		return game.Snapshot{}, err
	}
	return c.do(ctx, http.MethodPut, "/"+id, body)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (game.Snapshot, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: res.StatusCode, Code: "unknown"}
		var envelope struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(res.Body).Decode(&envelope); err == nil && envelope.Error != "" {
			apiErr.Code = envelope.Error
			apiErr.Message = envelope.Message
		}
		return game.Snapshot{}, apiErr
	}

	var snap game.Snapshot
	if err := json.NewDecoder(res.Body).Decode(&snap); err != nil {
		return game.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
