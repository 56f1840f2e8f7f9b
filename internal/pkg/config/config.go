// Package config loads gateway settings from the environment (and an
// optional .env file) via viper.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	// ServerAddr is the listen address of the gateway itself.
	ServerAddr string `mapstructure:"SERVER_ADDR"`
	// BackendURL is the base URL of the shop API, including any path
	// prefix (e.g. http://localhost:8000/api).
	BackendURL string `mapstructure:"BACKEND_API_URL"`
	// SessionStore selects the persisted state backend: redis, sqlite
	// or memory.
	SessionStore string `mapstructure:"SESSION_STORE"`
	RedisAddr    string `mapstructure:"REDIS_ADDR"`
	SQLitePath   string `mapstructure:"SQLITE_PATH"`
	// ShopkeeperUsername is the single privileged account the dashboard
	// gate accepts. Client-side convenience only, not a security
	// boundary; the backend enforces the real authorization.
	ShopkeeperUsername string `mapstructure:"SHOPKEEPER_USERNAME"`
	// TracingEnabled toggles the OTLP exporter; logging stays on
	// regardless.
	TracingEnabled bool `mapstructure:"TRACING_ENABLED"`
}

// Load reads the optional .env file at path (ignored when absent) and
// then the process environment, which takes precedence.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_ADDR", ":8080")
	v.SetDefault("BACKEND_API_URL", "http://localhost:8000/api")
	v.SetDefault("SESSION_STORE", "sqlite")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("SQLITE_PATH", "storefront.db")
	v.SetDefault("SHOPKEEPER_USERNAME", "shop_meher")
	v.SetDefault("TRACING_ENABLED", false)

	// A missing .env is fine; a present but unreadable one is not.
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config file %s: %w", path, err)
			}
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
