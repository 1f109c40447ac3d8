package configs

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Market   MarketConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
	Env  string `envconfig:"GO_ENV" default:"development"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string `envconfig:"DATABASE_URL"`
}

// MarketConfig holds simulator configuration
type MarketConfig struct {
	// QuoteRefreshInterval is how often the synthetic feed ticks.
	QuoteRefreshInterval time.Duration `envconfig:"QUOTE_REFRESH_INTERVAL" default:"60s"`

	// DataSource selects LIVE (database-backed dividends/watchlist
	// seeds) or SEEDED (built-in fixtures).
	DataSource string `envconfig:"DATA_SOURCE" default:"SEEDED"`

	// InitialBalance funds every new virtual account.
	InitialBalance float64 `envconfig:"INITIAL_BALANCE" default:"1000000"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	return &cfg, nil
}
