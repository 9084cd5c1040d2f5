package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/freeeve/sideline/api/internal/football"
)

const rosterKey = "scoreboard:roster"

// Get returns the stored roster, or an empty one.
func (c *Client) Get(ctx context.Context) (*football.Roster, error) {
	data, err := c.rdb.Get(ctx, rosterKey).Bytes()
	if err == redis.Nil {
		return football.NewRoster(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get roster: %w", err)
	}
	r := football.NewRoster()
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	if r.Kickers == nil {
		r.Kickers = map[football.Side]string{}
	}
	return r, nil
}

// Save replaces the stored roster. Rosters do not expire.
func (c *Client) Save(ctx context.Context, r *football.Roster) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	return c.rdb.Set(ctx, rosterKey, data, 0).Err()
}
