package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/attendancestats"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix     = "stamp"
	monthlyStatsScope = "stats:monthly"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MinIdleConns: 2,
		MaxRetries:   3,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Key joins non-empty parts under prefix with ':'.
func Key(prefix string, parts ...string) string {
	if prefix == "" {
		prefix = defaultPrefix
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	for _, part := range parts {
		if part != "" {
			sb.WriteString(":")
			sb.WriteString(part)
		}
	}
	return sb.String()
}

// MonthlyStatsKey is the key under which one employee's month is cached.
func MonthlyStatsKey(prefix, employeeID string, year, month int) string {
	return Key(prefix, monthlyStatsScope, employeeID, fmt.Sprintf("%04d-%02d", year, month))
}

type RedisStatsCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStatsCache(client *redis.Client, prefix string, ttl time.Duration) *RedisStatsCache {
	return &RedisStatsCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisStatsCache) Get(ctx context.Context, employeeID string, year, month int) (attendancestats.MonthlyStatsResponse, error) {
	var stats attendancestats.MonthlyStatsResponse

	raw, err := c.client.Get(ctx, MonthlyStatsKey(c.prefix, employeeID, year, month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return stats, attendancestats.ErrCacheMiss
	}
	if err != nil {
		return stats, fmt.Errorf("failed to read monthly stats cache: %w", err)
	}

	if err := json.Unmarshal(raw, &stats); err != nil {
		return stats, fmt.Errorf("failed to decode monthly stats cache: %w", err)
	}
	return stats, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, stats attendancestats.MonthlyStatsResponse) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode monthly stats: %w", err)
	}

	key := MonthlyStatsKey(c.prefix, stats.EmployeeID, stats.Year, stats.Month)
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write monthly stats cache: %w", err)
	}
	return nil
}

func (c *RedisStatsCache) Delete(ctx context.Context, employeeID string, year, month int) error {
	if err := c.client.Del(ctx, MonthlyStatsKey(c.prefix, employeeID, year, month)).Err(); err != nil {
		return fmt.Errorf("failed to delete monthly stats cache: %w", err)
	}
	return nil
}

// NoopStatsCache never stores anything.
type NoopStatsCache struct{}

func (NoopStatsCache) Get(ctx context.Context, employeeID string, year, month int) (attendancestats.MonthlyStatsResponse, error) {
	return attendancestats.MonthlyStatsResponse{}, attendancestats.ErrCacheMiss
}

func (NoopStatsCache) Set(ctx context.Context, stats attendancestats.MonthlyStatsResponse) error {
	return nil
}

func (NoopStatsCache) Delete(ctx context.Context, employeeID string, year, month int) error {
	return nil
}

var (
	_ attendancestats.StatsCache = (*RedisStatsCache)(nil)
	_ attendancestats.StatsCache = NoopStatsCache{}
)
