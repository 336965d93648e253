package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/realworld-persistence/internal/config"
	"github.com/realworld-persistence/internal/models"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// TagCache stores the full tag listing
type TagCache interface {
	GetTags(ctx context.Context) ([]*models.Tag, error)
	SetTags(ctx context.Context, tags []*models.Tag, ttl time.Duration) error
	Invalidate(ctx context.Context) error
	Close() error
}

type RedisTagCache struct {
	client *redis.Client
	key    string
}

func NewRedisTagCache(cfg config.RedisConfig, prefix string) (*RedisTagCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisTagCacheWithClient(client, prefix), nil
}

// NewRedisTagCacheWithClient wraps an existing client without pinging it
func NewRedisTagCacheWithClient(client *redis.Client, prefix string) *RedisTagCache {
	return &RedisTagCache{
		client: client,
		key:    fmt.Sprintf("%s:tags:all", prefix),
	}
}

func (c *RedisTagCache) GetTags(ctx context.Context) ([]*models.Tag, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var tags []*models.Tag
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return tags, nil
}

func (c *RedisTagCache) SetTags(ctx context.Context, tags []*models.Tag, ttl time.Duration) error {
	data, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, c.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}

	return nil
}

func (c *RedisTagCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

func (c *RedisTagCache) Close() error {
	return c.client.Close()
}
