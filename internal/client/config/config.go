package config

import "time"

// Config holds runtime settings for the country explorer CLI.
//
// Units: RequestTimeout is a time.Duration; RequestsPerSecond of zero or
// less disables request pacing.
type Config struct {
	CatalogBaseURL    string
	DatabasePath      string
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	CredentialScheme  string
	LogBackend        string
	LogFormat         string
	LogLevel          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.CatalogBaseURL = "https://restcountries.com/v3.1"
	c.DatabasePath = "countries.db"
	c.RequestTimeout = 10 * time.Second
	c.RequestsPerSecond = 5
	c.CredentialScheme = "plain"
	c.LogBackend = "slog"
	c.LogFormat = "text"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
