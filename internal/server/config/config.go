// Package config handles configuration for the tripkeeper HTTP server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the server.
//
// Fields:
//   - HTTPAddr: bind address for the REST API.
//   - GRPCAddr: bind address for the gRPC health service; empty disables it.
//   - DatabasePath: SQLite database file backing the engine.
//   - SecretKey: HMAC secret for bearer tokens on mutating routes; empty
//     disables auth.
//   - LogLevel: debug|info|warn|error.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
//   - MetricsPath: route serving Prometheus metrics; empty disables it.
//   - AutoSave: checkpoint the WAL after every mutation.
type Config struct {
	HTTPAddr        string
	GRPCAddr        string
	DatabasePath    string
	SecretKey       string
	LogLevel        string
	ShutdownTimeout time.Duration
	MetricsPath     string
	AutoSave        bool
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":3001"
	c.GRPCAddr = ":50051"
	c.DatabasePath = "data/travel.db"
	c.SecretKey = ""
	c.LogLevel = "info"
	c.ShutdownTimeout = 10 * time.Second
	c.MetricsPath = "/metrics"
	c.AutoSave = true
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
