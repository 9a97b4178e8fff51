package config

import "time"

// Config holds runtime settings for the eventdesk client.
//
// Fields:
//   - APIBaseURL: scheme://host[:port] of the event-management API.
//   - SessionDBPath: SQLite file holding the persisted session, or
//     ":memory:" to keep the session for the lifetime of the process only.
//   - RequestTimeout: upper bound for a single gateway request.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	SessionDBPath  string
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://event-management-1-v5pw.onrender.com"
	c.SessionDBPath = "session.db"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, then the JSON file (if any),
// then command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
