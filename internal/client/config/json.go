package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tripkeeper/internal/flagx"
	"github.com/dmitrijs2005/tripkeeper/internal/timex"
)

type jsonS3 struct {
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Bucket    string `json:"bucket"`
	Region    string `json:"region"`
	Endpoint  string `json:"endpoint"`
	Prefix    string `json:"prefix"`
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Booleans are
// pointers so a file can switch them off.
type JsonConfig struct {
	SnapshotStore string         `json:"snapshot_store"`
	SnapshotDir   string         `json:"snapshot_dir"`
	SnapshotKey   string         `json:"snapshot_key"`
	AutoSave      *bool          `json:"auto_save"`
	Encrypt       *bool          `json:"encrypt"`
	LogLevel      string         `json:"log_level"`
	TokenSecret   string         `json:"token_secret"`
	TokenValidity timex.Duration `json:"token_validity"`
	S3            jsonS3         `json:"s3"`
}

func set(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. Only fields present in the file are copied. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set(&cfg.SnapshotStore, jc.SnapshotStore)
	set(&cfg.SnapshotDir, jc.SnapshotDir)
	set(&cfg.SnapshotKey, jc.SnapshotKey)
	if jc.AutoSave != nil {
		cfg.AutoSave = *jc.AutoSave
	}
	if jc.Encrypt != nil {
		cfg.Encrypt = *jc.Encrypt
	}
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.TokenSecret, jc.TokenSecret)
	if jc.TokenValidity.Duration != 0 {
		cfg.TokenValidity = jc.TokenValidity.Duration
	}

	set(&cfg.S3.AccessKey, jc.S3.AccessKey)
	set(&cfg.S3.SecretKey, jc.S3.SecretKey)
	set(&cfg.S3.Bucket, jc.S3.Bucket)
	set(&cfg.S3.Region, jc.S3.Region)
	set(&cfg.S3.Endpoint, jc.S3.Endpoint)
	set(&cfg.S3.Prefix, jc.S3.Prefix)
}
