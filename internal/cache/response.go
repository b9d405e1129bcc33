package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/biznexus-ai/backend/internal/config"
	"github.com/biznexus-ai/backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	responseKeyPrefix  = "assistant:response"
	defaultResponseTTL = 5 * time.Minute
)

// ResponseCache stores assistant answers keyed by raw query text so repeat
// questions don't burn LLM quota.
type ResponseCache interface {
	Get(ctx context.Context, query string) (*domain.QueryResponse, bool, error)
	Set(ctx context.Context, query string, resp *domain.QueryResponse) error
}

type redisResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache picks the backend from config: Redis when enabled and
// reachable, otherwise the process-local TTL cache.
func NewResponseCache(cfg config.CacheConfig) (ResponseCache, error) {
	ttl := time.Duration(cfg.ResponseTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultResponseTTL
	}

	if !cfg.Enabled {
		return NewMemoryResponseCache(ttl), nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisResponseCache{client: client, ttl: ttl}, nil
}

func (c *redisResponseCache) Get(ctx context.Context, query string) (*domain.QueryResponse, bool, error) {
	payload, err := c.client.Get(ctx, buildResponseKey(query)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var resp domain.QueryResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, false, fmt.Errorf("decode cached response: %w", err)
	}
	return &resp, true, nil
}

func (c *redisResponseCache) Set(ctx context.Context, query string, resp *domain.QueryResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode cached response: %w", err)
	}
	if err := c.client.Set(ctx, buildResponseKey(query), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
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

func buildResponseKey(query string) string {
	hash := sha1.Sum([]byte(query))
	return fmt.Sprintf("%s:%s", responseKeyPrefix, hex.EncodeToString(hash[:]))
}
