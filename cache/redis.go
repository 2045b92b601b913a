// Package cache keeps recently used board snapshots in Redis so that reads
// skip the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"kanban/models"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long a snapshot may outlive its last write.
const DefaultTTL = 5 * time.Minute

// Redis implements service.Cache. Every failure is logged and treated as a
// miss.
type Redis struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis returns a cache using keys of the form "{prefix}:board:{project}".
// A ttl of zero uses DefaultTTL.
func NewRedis(redisOpts *redis.Options, prefix string, ttl time.Duration) (*Redis, error) {
	if prefix == "" {
		return nil, fmt.Errorf("key prefix cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Redis{
		rdb:    redis.NewClient(redisOpts),
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

// Dial parses a redis:// URL, connects and verifies the server answers.
func Dial(ctx context.Context, redisURL, prefix string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	c, err := NewRedis(opts, prefix, ttl)
	if err != nil {
		return nil, err
	}
	if err := c.Ping(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return c, nil
}

func (c *Redis) Close() error {
	return c.rdb.Close()
}

func (c *Redis) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// BoardKey returns the key holding projectID's snapshot.
func (c *Redis) BoardKey(projectID string) string {
	return fmt.Sprintf("%s:board:%s", c.prefix, projectID)
}

func (c *Redis) GetBoard(ctx context.Context, projectID string) (*models.Board, bool) {
	data, err := c.rdb.Get(ctx, c.BoardKey(projectID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("cache read failed", "project", projectID, "error", err)
		return nil, false
	}

	var b models.Board
	if err := json.Unmarshal(data, &b); err != nil {
		slog.Warn("dropping undecodable cache entry", "project", projectID, "error", err)
		c.Invalidate(ctx, projectID)
		return nil, false
	}
	if b.Cards == nil {
		b.Cards = map[string]*models.Card{}
	}
	return &b, true
}

func (c *Redis) SetBoard(ctx context.Context, b *models.Board) {
	data, err := json.Marshal(b)
	if err != nil {
		slog.Warn("cache encode failed", "project", b.ProjectID, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, c.BoardKey(b.ProjectID), data, c.ttl).Err(); err != nil {
		slog.Warn("cache write failed", "project", b.ProjectID, "error", err)
	}
}

func (c *Redis) Invalidate(ctx context.Context, projectID string) {
	if err := c.rdb.Del(ctx, c.BoardKey(projectID)).Err(); err != nil {
		slog.Warn("cache invalidate failed", "project", projectID, "error", err)
	}
}
