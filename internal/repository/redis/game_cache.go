package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freeeve/sideline/api/internal/model"
)

const activeGameKey = "scoreboard:active"

// snapshotTTL bounds how stale a cached snapshot can get if an
// invalidation is ever missed.
const snapshotTTL = 30 * time.Second

// GetActiveGame returns the cached active game, or nil on a miss.
func (c *Client) GetActiveGame(ctx context.Context) (*model.Game, error) {
	data, err := c.rdb.Get(ctx, activeGameKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active game: %w", err)
	}
	var g model.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode active game: %w", err)
	}
	return &g, nil
}

// SetActiveGame stores the snapshot viewers read.
func (c *Client) SetActiveGame(ctx context.Context, g *model.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode active game: %w", err)
	}
	return c.rdb.Set(ctx, activeGameKey, data, snapshotTTL).Err()
}

// InvalidateActiveGame drops the snapshot so the next read goes to the database.
func (c *Client) InvalidateActiveGame(ctx context.Context) error {
	return c.rdb.Del(ctx, activeGameKey).Err()
}
