// Package config loads the server settings from the environment through viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
	DriverRemote   = "remote"
)

// Config holds every setting the server reads at startup.
type Config struct {
	AppPort       string
	AppEnv        string
	LogLevel      string
	StoreDriver   string
	DatabaseDSN   string
	RemoteAPIURL  string
	RemoteTimeout time.Duration
	RabbitMQURL   string // empty disables event publishing
	SeedDemoData  bool
}

// Load reads the configuration from v, falling back to the defaults below.
// Pass viper.New() in tests to avoid the global instance.
func Load(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "fruteria.db")
	v.SetDefault("REMOTE_API_URL", "http://localhost:3001")
	v.SetDefault("REMOTE_API_TIMEOUT", "15s")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("SEED_DEMO_DATA", false)
	v.AutomaticEnv() // Load environment variables

	cfg := &Config{
		AppPort:       v.GetString("APP_PORT"),
		AppEnv:        v.GetString("APP_ENV"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		StoreDriver:   strings.ToLower(v.GetString("STORE_DRIVER")),
		DatabaseDSN:   v.GetString("DATABASE_DSN"),
		RemoteAPIURL:  v.GetString("REMOTE_API_URL"),
		RemoteTimeout: v.GetDuration("REMOTE_API_TIMEOUT"),
		RabbitMQURL:   v.GetString("RABBITMQ_URL"),
		SeedDemoData:  v.GetBool("SEED_DEMO_DATA"),
	}

	if !strings.Contains(cfg.AppPort, ":") {
		cfg.AppPort = ":" + cfg.AppPort
	}

	switch cfg.StoreDriver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	case DriverRemote:
		if cfg.RemoteAPIURL == "" {
			return nil, fmt.Errorf("REMOTE_API_URL is required when STORE_DRIVER=%s", DriverRemote)
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.StoreDriver == DriverPostgres && cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required when STORE_DRIVER=%s", DriverPostgres)
	}
	if cfg.RemoteTimeout <= 0 {
		return nil, fmt.Errorf("REMOTE_API_TIMEOUT must be positive, got %s", cfg.RemoteTimeout)
	}
	return cfg, nil
}
