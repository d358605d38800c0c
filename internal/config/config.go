package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config represents the main configuration structure
type Config struct {
	Timings       TimingsConfig       `yaml:"timings"`
	L1            L1Config            `yaml:"l1"`
	L2            L2Config            `yaml:"l2"`
	SnapshotCache SnapshotCacheConfig `yaml:"snapshot_cache"`
	Storage       StorageConfig       `yaml:"storage"`
	Upstream      UpstreamConfig      `yaml:"upstream"`
	Server        ServerConfig        `yaml:"server"`
}

// TimingsConfig holds refresh intervals in milliseconds
type TimingsConfig struct {
	AutoRefresh   int `yaml:"auto_refresh" validate:"gt=0"`
	ManualRefresh int `yaml:"manual_refresh" validate:"gt=0"`
}

// L1Config configures the in-process BigCache level. L1 entries are not
// invalidated when another instance writes the shared KeyDB, so the life
// window is capped at the auto-refresh TTL.
type L1Config struct {
	Enabled    bool `yaml:"enabled"`
	Size       int  `yaml:"size" validate:"gte=0"`        // MB
	LifeWindow int  `yaml:"life_window" validate:"gte=0"` // seconds
}

// L2Config configures the KeyDB level
type L2Config struct {
	Enabled    bool             `yaml:"enabled"`
	Connection ConnectionConfig `yaml:"connection"`
	Keepalive  KeepaliveConfig  `yaml:"keepalive"`
}

// ConnectionConfig holds KeyDB timeouts in milliseconds
type ConnectionConfig struct {
	ConnectTimeout int `yaml:"connect_timeout" validate:"gte=0"`
	SendTimeout    int `yaml:"send_timeout" validate:"gte=0"`
	ReadTimeout    int `yaml:"read_timeout" validate:"gte=0"`
}

// KeepaliveConfig holds KeyDB pool settings
type KeepaliveConfig struct {
	PoolSize       int `yaml:"pool_size" validate:"gte=0"`
	MaxIdleTimeout int `yaml:"max_idle_timeout" validate:"gte=0"` // ms
}

// SnapshotCacheConfig configures profile serialization
type SnapshotCacheConfig struct {
	Compression bool `yaml:"compression"`
}

// StorageConfig configures the relational snapshot store
type StorageConfig struct {
	SQLitePath string `yaml:"sqlite_path" validate:"required"`
}

// UpstreamConfig configures the RuneMetrics and hiscores clients
type UpstreamConfig struct {
	RuneMetricsURL string `yaml:"runemetrics_url" validate:"required,url"`
	HiscoresURL    string `yaml:"hiscores_url" validate:"required,url"`
	Timeout        int    `yaml:"timeout" validate:"gt=0"` // ms
	Activities     int    `yaml:"activities" validate:"gte=0,lte=20"`
	MaxConcurrency int    `yaml:"max_concurrency" validate:"gte=1"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr" validate:"required"`
}

// LoadConfig loads configuration from file path
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	logger.Info("Loading configuration", zap.String("path", configPath))

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var config Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the configuration struct tags
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Timings.AutoRefresh == 0 {
		c.Timings.AutoRefresh = 60000
	}
	if c.Timings.ManualRefresh == 0 {
		c.Timings.ManualRefresh = 300000
	}

	if c.L1.Size == 0 {
		c.L1.Size = 64
	}
	if c.L1.LifeWindow == 0 {
		c.L1.LifeWindow = 30
	}

	if c.L2.Connection.ConnectTimeout == 0 {
		c.L2.Connection.ConnectTimeout = 1000
	}
	if c.L2.Connection.SendTimeout == 0 {
		c.L2.Connection.SendTimeout = 1000
	}
	if c.L2.Connection.ReadTimeout == 0 {
		c.L2.Connection.ReadTimeout = 1000
	}
	if c.L2.Keepalive.PoolSize == 0 {
		c.L2.Keepalive.PoolSize = 10
	}
	if c.L2.Keepalive.MaxIdleTimeout == 0 {
		c.L2.Keepalive.MaxIdleTimeout = 10000
	}

	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "/app/data/tracker.db"
	}

	if c.Upstream.RuneMetricsURL == "" {
		c.Upstream.RuneMetricsURL = "https://apps.runescape.com/runemetrics"
	}
	if c.Upstream.HiscoresURL == "" {
		c.Upstream.HiscoresURL = "https://secure.runescape.com/m=hiscore"
	}
	if c.Upstream.Timeout == 0 {
		c.Upstream.Timeout = 10000
	}
	if c.Upstream.Activities == 0 {
		c.Upstream.Activities = 20
	}
	if c.Upstream.MaxConcurrency == 0 {
		c.Upstream.MaxConcurrency = 4
	}

	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}
}

// GetAutoRefresh returns the cache TTL for automatic refreshes
func (c *Config) GetAutoRefresh() time.Duration {
	return time.Duration(c.Timings.AutoRefresh) * time.Millisecond
}

// GetManualRefresh returns the manual refresh cooldown
func (c *Config) GetManualRefresh() time.Duration {
	return time.Duration(c.Timings.ManualRefresh) * time.Millisecond
}

// GetConnectTimeout returns connect timeout as time.Duration
func (c *Config) GetConnectTimeout() time.Duration {
	return time.Duration(c.L2.Connection.ConnectTimeout) * time.Millisecond
}

// GetSendTimeout returns send timeout as time.Duration
func (c *Config) GetSendTimeout() time.Duration {
	return time.Duration(c.L2.Connection.SendTimeout) * time.Millisecond
}

// GetReadTimeout returns read timeout as time.Duration
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.L2.Connection.ReadTimeout) * time.Millisecond
}

// GetMaxIdleTimeout returns max idle timeout as time.Duration
func (c *Config) GetMaxIdleTimeout() time.Duration {
	return time.Duration(c.L2.Keepalive.MaxIdleTimeout) * time.Millisecond
}

// GetL1LifeWindow returns how long L1 entries live, never longer than the
// auto-refresh TTL
func (c *Config) GetL1LifeWindow() time.Duration {
	window := time.Duration(c.L1.LifeWindow) * time.Second
	return min(window, c.GetAutoRefresh())
}

// GetUpstreamTimeout returns the upstream call timeout
func (c *Config) GetUpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.Timeout) * time.Millisecond
}
