// Package config loads runtime configuration for the country explorer CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the country catalog
//	-d string   path of the SQLite registry file
//	-t int      catalog request timeout (seconds)
//	-r float    catalog requests per second, 0 for no limit
//	-s string   credential scheme: plain, argon2 or bcrypt
//	-b string   log backend: slog or zerolog
//	-f string   log format: text or json
//	-l string   log level: debug, info, warn or error
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either a
// string like "10s" or integer nanoseconds. Missing keys keep their earlier
// value:
//
//	{
//	  "catalog_base_url": "https://restcountries.com/v3.1",
//	  "database_path": "countries.db",
//	  "request_timeout": "10s",
//	  "requests_per_second": 5,
//	  "credential_scheme": "plain",
//	  "log_backend": "slog",
//	  "log_format": "text",
//	  "log_level": "warn"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
