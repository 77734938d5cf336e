// Package config loads runtime configuration for the clinicdesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / -config or $CLINICDESK_CONFIG.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the clinic REST API
//	-s string   path of the local session storage (":memory:" keeps nothing)
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations accept strings like "15s" or integer nanoseconds. The role
// priority list is ordered highest first and replaces the default one:
//
//	{
//	  "api_base_url": "https://localhost:7215/api",
//	  "storage_path": "clinicdesk.db",
//	  "request_timeout": "30s",
//	  "online_check_interval": "10s",
//	  "log_level": "warn",
//	  "role_priority": [
//	    {"role": "Admin", "path": "/admin"},
//	    {"role": "Doctor", "path": "/doctor"}
//	  ]
//	}
package config
