package config

import (
	"time"

	"github.com/scrimtrack/scrim-stats-service/internal/cache"
	"github.com/scrimtrack/scrim-stats-service/internal/logger"
)

type Config struct {
	Logger  logger.LoggerConfig `mapstructure:"logger"`
	Server  ServerConfig        `mapstructure:"server"`
	Backend BackendConfig       `mapstructure:"backend"`
	Cache   CacheConfig         `mapstructure:"cache"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// BackendConfig points at the scrim backend REST API.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig controls the statistics freshness window.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

func (c *Config) setDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = 30 * time.Second
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = cache.DefaultTTL
	}
}
