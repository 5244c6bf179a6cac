package config

import "time"

// Config holds runtime settings for the Insider terminal client.
//
// Fields:
//   - APIBaseURL: origin of the backend REST API (the /api/v1 prefix is added by the client).
//   - RequestTimeout: upper bound for a single HTTP request.
//   - DatabasePath: SQLite file holding the persisted session.
//   - StorageSecret: when set, persisted tokens are sealed with a key derived from it.
//   - PageSize: list page size used by the event and investment stores.
//   - RateLimit: outbound requests per second, 0 disables pacing.
//   - LogFormat: "text" (slog) or "json" (zap).
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DatabasePath   string
	StorageSecret  string
	PageSize       int
	RateLimit      float64
	LogFormat      string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8001"
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = "insider.db"
	c.PageSize = 20
	c.LogFormat = "text"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
