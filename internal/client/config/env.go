package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/insider/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAPIURL         = "INSIDER_API_URL"
	EnvRequestTimeout = "INSIDER_REQUEST_TIMEOUT"
	EnvDatabasePath   = "INSIDER_DB_PATH"
	EnvStorageSecret  = "INSIDER_STORAGE_SECRET"
	EnvPageSize       = "INSIDER_PAGE_SIZE"
	EnvLogFormat      = "INSIDER_LOG_FORMAT"
	EnvLogLevel       = "INSIDER_LOG_LEVEL"
)

// parseEnv loads a dotenv file into the process environment and overlays cfg
// with the INSIDER_* variables. The file is the one named by -e/-env, or
// ".env" in the working directory when present. Variables already set in the
// environment win over the file. Panics on an unreadable -e file or a
// malformed numeric value.
func parseEnv(cfg *Config) {
	if file := flagx.EnvFileFlag(); file != "" {
		if err := godotenv.Load(file); err != nil {
			panic(err)
		}
	} else {
		_ = godotenv.Load()
	}

	if v, ok := os.LookupEnv(EnvAPIURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(EnvDatabasePath); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv(EnvStorageSecret); ok {
		cfg.StorageSecret = v
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := os.LookupEnv(EnvPageSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.PageSize = n
	}
}
