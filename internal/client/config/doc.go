// Package config loads runtime configuration for the Insider terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment (see parseEnv): INSIDER_* variables, optionally loaded from
//     a dotenv file given with -e or -env, or from ./.env.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     backend base URL
//	-t duration   request timeout
//	-d string     local database path
//	-p int        list page size
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://127.0.0.1:8001",
//	  "request_timeout": "30s",
//	  "database_path": "insider.db",
//	  "storage_secret": "",
//	  "page_size": 20,
//	  "rate_limit": 0,
//	  "log_format": "text",
//	  "log_level": "warn"
//	}
package config
