// Package config loads runtime configuration for the affiliate CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed with AFFILIATE_, after loading a dotenv
//     file (-e/-env-file, or ./.env when present).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the affiliate API
//	-p string   public base URL used in shareable affiliate links
//	-d string   path of the local SQLite database
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "public_base_url": "http://localhost:5173",
//	  "database_path": "affiliate.db",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "log_backend": "slog"
//	}
package config
