package l2

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"go-player-tracker/internal/config"
	"go-player-tracker/internal/interfaces"
)

// Ensure RedisKeyDbClient implements interfaces.KeyDbClient
var _ interfaces.KeyDbClient = (*RedisKeyDbClient)(nil)

// RedisKeyDbClient wraps redis.Client to implement KeyDbClient interface
type RedisKeyDbClient struct {
	client *redis.Client
	logger *zap.Logger
}

// ParseKeyDBURL converts a redis:// URL into client options using the configured timeouts
func ParseKeyDBURL(cfg *config.Config, keydbURL string) (*redis.Options, error) {
	parsedURL, err := url.Parse(keydbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse KeyDB URL: %w", err)
	}
	if parsedURL.Hostname() == "" {
		return nil, fmt.Errorf("KeyDB URL %q has no host", keydbURL)
	}

	port := parsedURL.Port()
	if port == "" {
		port = "6379"
	}

	opts := &redis.Options{
		Addr:         fmt.Sprintf("%s:%s", parsedURL.Hostname(), port),
		DialTimeout:  cfg.GetConnectTimeout(),
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetSendTimeout(),
		PoolSize:     cfg.L2.Keepalive.PoolSize,
		IdleTimeout:  cfg.GetMaxIdleTimeout(),
	}

	if parsedURL.User != nil {
		opts.Username = parsedURL.User.Username()
		if password, ok := parsedURL.User.Password(); ok {
			opts.Password = password
		}
	}

	if len(parsedURL.Path) > 1 {
		db, err := strconv.Atoi(parsedURL.Path[1:])
		if err != nil {
			return nil, fmt.Errorf("invalid KeyDB database %q: %w", parsedURL.Path[1:], err)
		}
		opts.DB = db
	}

	return opts, nil
}

// NewRedisKeyDbClient connects to KeyDB and verifies the connection with a ping
func NewRedisKeyDbClient(cfg *config.Config, keydbURL string, logger *zap.Logger) (interfaces.KeyDbClient, error) {
	opts, err := ParseKeyDBURL(cfg, keydbURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.GetConnectTimeout())
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to KeyDB at %s: %w", opts.Addr, err)
	}

	logger.Info("Connected to KeyDB",
		zap.String("address", opts.Addr),
		zap.Int("db", opts.DB),
		zap.Duration("connect_timeout", opts.DialTimeout),
		zap.Int("pool_size", opts.PoolSize))

	return &RedisKeyDbClient{
		client: client,
		logger: logger,
	}, nil
}

// Get retrieves a value by key
func (r *RedisKeyDbClient) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.client.Get(ctx, key)
}

// Set stores a value with expiration
func (r *RedisKeyDbClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return r.client.Set(ctx, key, value, expiration)
}

// Del deletes one or more keys
func (r *RedisKeyDbClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return r.client.Del(ctx, keys...)
}

// Ping tests connectivity
func (r *RedisKeyDbClient) Ping(ctx context.Context) *redis.StatusCmd {
	return r.client.Ping(ctx)
}

// Close closes the client connection
func (r *RedisKeyDbClient) Close() error {
	return r.client.Close()
}
