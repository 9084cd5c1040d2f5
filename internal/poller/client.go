package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/freeeve/sideline/api/internal/model"
)

// Scoreboard is what a viewer renders: the active game and its plays.
type Scoreboard struct {
	Game  model.Game
	Plays []model.Play
}

// Client reads the public scoreboard endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for a server such as "http://localhost:8009".
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("get %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// FetchScoreboard loads the active game and then its plays.
func (c *Client) FetchScoreboard(ctx context.Context) (*Scoreboard, error) {
	var sb Scoreboard
	if err := c.get(ctx, "/api/v1/game", &sb.Game); err != nil {
		return nil, err
	}
	if err := c.get(ctx, "/api/v1/plays/"+strconv.FormatInt(sb.Game.ID, 10), &sb.Plays); err != nil {
		return nil, err
	}
	return &sb, nil
}
