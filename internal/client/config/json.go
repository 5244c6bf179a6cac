package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/insider/internal/flagx"
	"github.com/dmitrijs2005/insider/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration, so "30s" and integer nanoseconds are both accepted.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DatabasePath   string         `json:"database_path"`
	StorageSecret  string         `json:"storage_secret"`
	PageSize       int            `json:"page_size"`
	RateLimit      float64        `json:"rate_limit"`
	LogFormat      string         `json:"log_format"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c/-config. Fields absent
// from the file keep their current values. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.StorageSecret, jc.StorageSecret)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.PageSize > 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.RateLimit > 0 {
		cfg.RateLimit = jc.RateLimit
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
