// Package config loads runtime configuration for the eventdesk client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the event-management API
//	-d string   path of the local session database (":memory:" for none)
//	-t int      request timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations accept either "15s" style strings or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://event-management-1-v5pw.onrender.com",
//	  "session_db_path": "session.db",
//	  "request_timeout": "15s",
//	  "log_level": "info"
//	}
//
// Environment variables are not consulted.
package config
