package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr            string
	Password        string
	AvailabilityTTL time.Duration
	IdempotencyTTL  time.Duration
}

// Client wraps Redis for the two things this service caches: short-lived
// availability snapshots and createBooking idempotency keys. A nil *Client
// is valid everywhere and degrades to cache-miss behavior.
type Client struct {
	rdb *redis.Client
	cfg Config
}

func New(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, cfg: cfg}, nil
}

func availabilityKey(showID string) string {
	return "availability:" + showID
}

// GetAvailabilityRaw returns the cached availability JSON for a show
func (c *Client) GetAvailabilityRaw(ctx context.Context, showID string) ([]byte, error) {
	if c == nil {
		return nil, redis.Nil
	}
	return c.rdb.Get(ctx, availabilityKey(showID)).Bytes()
}

// SetAvailability stores an availability snapshot with a short TTL
func (c *Client) SetAvailability(ctx context.Context, showID string, v any) {
	if c == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, availabilityKey(showID), data, c.cfg.AvailabilityTTL)
}

// InvalidateAvailability drops the snapshot after a reserve or release
func (c *Client) InvalidateAvailability(ctx context.Context, showID string) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, availabilityKey(showID))
}

func idempotencyKey(key string) string {
	return "idem:booking:" + key
}

// LookupIdempotencyKey returns the booking id recorded for a client retry
// key, if any.
func (c *Client) LookupIdempotencyKey(ctx context.Context, key string) (string, bool, error) {
	if c == nil {
		return "", false, nil
	}
	id, err := c.rdb.Get(ctx, idempotencyKey(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// StoreIdempotencyKey records key -> booking id. SetNX keeps the first
// committed booking authoritative if two retries race.
func (c *Client) StoreIdempotencyKey(ctx context.Context, key, bookingID string) error {
	if c == nil {
		return nil
	}
	return c.rdb.SetNX(ctx, idempotencyKey(key), bookingID, c.cfg.IdempotencyTTL).Err()
}

func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
