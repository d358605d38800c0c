package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds runtime overrides read from environment variables
type Env struct {
	ConfigFile   string `env:"TRACKER_CONFIG_FILE" envDefault:"/app/tracker_config.yaml"`
	KeyDBURL     string `env:"KEYDB_URL"`
	KeyDBURLFile string `env:"TRACKER_KEYDB_URL_FILE" envDefault:"/app/.keydb-url"`
	SQLitePath   string `env:"TRACKER_SQLITE_PATH"`
	ListenAddr   string `env:"TRACKER_LISTEN_ADDR"`
}

// LoadEnv parses environment overrides
func LoadEnv() (*Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &e, nil
}

// ApplyEnv overrides file values with non-empty environment values
func (c *Config) ApplyEnv(e *Env) {
	if e == nil {
		return
	}
	if e.SQLitePath != "" {
		c.Storage.SQLitePath = e.SQLitePath
	}
	if e.ListenAddr != "" {
		c.Server.ListenAddr = e.ListenAddr
	}
}
