package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/ratehub/adminkit/pkg/cache/inmemory"
	"github.com/ratehub/adminkit/pkg/cache/redis"
)

// Cache is the key/value contract shared by all drivers. A missing key is not
// an error: Get returns (nil, nil) so callers can treat misses as "absent".
type Cache interface {
	// Set stores a value under key for the given TTL. A zero TTL falls back
	// to the driver default.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Get retrieves the value stored under key, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) (interface{}, error)

	// Delete removes a key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error

	// Disconnect releases any resources held by the driver.
	Disconnect() error
}

// Supported cache drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config selects and configures a cache driver.
type Config struct {
	Driver   string           `yaml:"driver" mapstructure:"driver"`
	InMemory *inmemory.Config `yaml:"inmemory" mapstructure:"inmemory"`
	Redis    *redis.Config    `yaml:"redis" mapstructure:"redis"`
}

// New builds the cache named by cfg.Driver. An empty driver defaults to the
// in-memory implementation.
func New(cfg *Config) (Cache, error) {
	if cfg == nil {
		cfg = &Config{Driver: DriverMemory}
	}
	switch cfg.Driver {
	case DriverMemory, "":
		return inmemory.NewCache(cfg.InMemory)
	case DriverRedis:
		return redis.NewCache(cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported cache driver: %q", cfg.Driver)
	}
}

// Compile-time interface compliance checks
var (
	_ Cache = (*inmemory.InMemoryCache)(nil)
	_ Cache = (*redis.RedisCache)(nil)
)
