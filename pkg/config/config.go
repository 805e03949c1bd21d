package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ratehub/adminkit/pkg/cache"
)

// App identifies the running application.
type App struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// Server points at the remote admin API.
type Server struct {
	BaseURL string        `mapstructure:"baseURL"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Session configures credential persistence.
type Session struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// AppConfig is the full application configuration, loaded once at startup
// and treated as immutable.
type AppConfig struct {
	App     App          `mapstructure:"app"`
	Server  Server       `mapstructure:"server"`
	Cache   cache.Config `mapstructure:"cache"`
	Session Session      `mapstructure:"session"`
	Log     Log          `mapstructure:"log"`
}

// Log configures the logger.
type Log struct {
	Level string `mapstructure:"level"`
}

// Load reads the config file at path (yaml), applies ADMINKIT_* environment
// overrides and defaults, and validates required fields. Missing required
// fields are reported together.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("ADMINKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.name", "adminkit")
	v.SetDefault("app.environment", "development")
	v.SetDefault("server.timeout", 10*time.Second)
	v.SetDefault("session.ttl", 168*time.Hour)
	v.SetDefault("cache.driver", cache.DriverMemory)
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var missing []string
	if cfg.Server.BaseURL == "" {
		missing = append(missing, "server.baseURL")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required config keys: %s", strings.Join(missing, ", "))
	}

	return &cfg, nil
}
