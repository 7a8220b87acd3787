package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tripkeeper/internal/flagx"
	"github.com/dmitrijs2005/tripkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Durations
// accept "10s" or integer nanoseconds.
type JsonConfig struct {
	HTTPAddr        string         `json:"http_addr"`
	GRPCAddr        *string        `json:"grpc_addr"`
	DatabasePath    string         `json:"database_path"`
	SecretKey       string         `json:"secret_key"`
	LogLevel        string         `json:"log_level"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
	MetricsPath     *string        `json:"metrics_path"`
	AutoSave        *bool          `json:"auto_save"`
}

// parseJson overlays values from the file named by -c/-config. Only fields
// present in the file replace current values; pointer fields let a file set
// an address to "" to disable it. Unreadable or invalid files panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.HTTPAddr != "" {
		config.HTTPAddr = c.HTTPAddr
	}
	if c.GRPCAddr != nil {
		config.GRPCAddr = *c.GRPCAddr
	}
	if c.DatabasePath != "" {
		config.DatabasePath = c.DatabasePath
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.MetricsPath != nil {
		config.MetricsPath = *c.MetricsPath
	}
	if c.AutoSave != nil {
		config.AutoSave = *c.AutoSave
	}
}
