package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pantryplan/backend-go/internal/config"
	"github.com/pantryplan/backend-go/internal/domain"
)

const (
	dashboardKeyPrefix = "dashboard:user"
	defaultTTL         = time.Minute
	dialTimeout        = 5 * time.Second
)

// DashboardCache holds assembled dashboard payloads per user for a short
// TTL. It is never authoritative: writes invalidate, reads recompute on miss.
type DashboardCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Dashboard, bool, error)
	Set(ctx context.Context, userID uuid.UUID, dashboard *domain.Dashboard) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.DashboardTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &redisDashboardCache{client: client, ttl: ttl}, nil
}

// redisOptions prefers a full REDIS_URL and falls back to host/port parts.
func redisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opts, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func dashboardKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", dashboardKeyPrefix, userID)
}

func (c *redisDashboardCache) Get(ctx context.Context, userID uuid.UUID) (*domain.Dashboard, bool, error) {
	payload, err := c.client.Get(ctx, dashboardKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var dashboard domain.Dashboard
	if err := json.Unmarshal(payload, &dashboard); err != nil {
		return nil, false, fmt.Errorf("decode dashboard cache: %w", err)
	}

	return &dashboard, true, nil
}

func (c *redisDashboardCache) Set(ctx context.Context, userID uuid.UUID, dashboard *domain.Dashboard) error {
	payload, err := json.Marshal(dashboard)
	if err != nil {
		return fmt.Errorf("encode dashboard cache: %w", err)
	}

	if err := c.client.Set(ctx, dashboardKey(userID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisDashboardCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, dashboardKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

func (n *noopDashboardCache) Get(ctx context.Context, userID uuid.UUID) (*domain.Dashboard, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) Set(ctx context.Context, userID uuid.UUID, dashboard *domain.Dashboard) error {
	return nil
}

func (n *noopDashboardCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return nil
}
