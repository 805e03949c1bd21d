package inmemory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Config holds the knobs for the in-process cache. Durations are expressed in
// seconds to keep config files driver-agnostic.
type Config struct {
	DefaultExpiration int `yaml:"defaultExpiration" mapstructure:"defaultExpiration"`
	CleanupInterval   int `yaml:"cleanupInterval" mapstructure:"cleanupInterval"`
}

// InMemoryCache is a process-local cache backed by go-cache. It is safe for
// concurrent use and needs no external services, which makes it the default
// driver for tests and single-process deployments.
type InMemoryCache struct {
	client *gocache.Cache
}

// NewCache inits an InMemoryCache instance
func NewCache(config *Config) (*InMemoryCache, error) {
	if config == nil {
		config = getDefaultConfig()
	}

	c := gocache.New(
		time.Duration(config.DefaultExpiration)*time.Second,
		time.Duration(config.CleanupInterval)*time.Second,
	)

	return &InMemoryCache{client: c}, nil
}

func getDefaultConfig() *Config {
	return &Config{
		DefaultExpiration: 300,
		CleanupInterval:   600,
	}
}

// Set - sets a key value pair in the cache. A zero ttl uses the configured
// default expiration.
func (c *InMemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	c.client.Set(key, value, ttl)
	return nil
}

// Get - gets a value from the cache, (nil, nil) on a miss
func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, error) {
	val, found := c.client.Get(key)
	if !found {
		return nil, nil
	}
	return val, nil
}

// Delete - deletes a key from the cache
func (c *InMemoryCache) Delete(_ context.Context, key string) error {
	c.client.Delete(key)
	return nil
}

// Disconnect is a no-op for the in-process driver.
func (c *InMemoryCache) Disconnect() error {
	return nil
}
