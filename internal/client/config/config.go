package config

import "time"

// Config holds runtime settings for the admin console.
//
// Fields:
//   - BaseURL: origin of the rental backend REST API.
//   - HTTPTimeout: per-request timeout for the shared HTTP client.
//   - StateDBPath: path of the local sqlite state database.
type Config struct {
	BaseURL     string
	HTTPTimeout time.Duration
	StateDBPath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8000"
	c.HTTPTimeout = 15 * time.Second
	c.StateDBPath = "rentadmin.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
