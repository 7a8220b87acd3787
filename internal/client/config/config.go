package config

import (
	"time"

	"github.com/dmitrijs2005/tripkeeper/internal/common"
)

// Snapshot store kinds accepted by -k.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreS3     = "s3"
)

// S3 holds the object store settings used when SnapshotStore is "s3".
type S3 struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
	Prefix    string
}

// Config holds runtime settings for the tripkeeper CLI.
//
// Fields:
//   - SnapshotStore: where the serialized engine lives between runs.
//   - SnapshotDir: directory of the file snapshot store.
//   - SnapshotKey: record id of the snapshot.
//   - AutoSave: persist after every mutation instead of on "save".
//   - Encrypt: seal the snapshot with a passphrase read at startup.
//   - TokenSecret / TokenValidity: used by the "token" command.
type Config struct {
	SnapshotStore string
	SnapshotDir   string
	SnapshotKey   string
	AutoSave      bool
	Encrypt       bool
	LogLevel      string
	TokenSecret   string
	TokenValidity time.Duration
	S3            S3
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.SnapshotStore = StoreFile
	c.SnapshotDir = "data"
	c.SnapshotKey = common.DefaultSnapshotKey
	c.AutoSave = true
	c.Encrypt = false
	c.LogLevel = "warn"
	c.TokenSecret = ""
	c.TokenValidity = 24 * time.Hour
	c.S3 = S3{Region: "us-east-1", Prefix: "snapshots/"}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
