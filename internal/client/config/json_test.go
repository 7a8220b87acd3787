package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"snapshot_store": "s3",
		"snapshot_key":   "trip_2025",
		"auto_save":      false,
		"encrypt":        true,
		"token_validity": "1h",
		"s3": map[string]any{
			"bucket":   "travel",
			"endpoint": "http://127.0.0.1:9000",
		},
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, StoreS3, cfg.SnapshotStore)
		assert.Equal(t, "trip_2025", cfg.SnapshotKey)
		assert.Equal(t, "data", cfg.SnapshotDir, "absent keys keep defaults")
		assert.False(t, cfg.AutoSave)
		assert.True(t, cfg.Encrypt)
		assert.Equal(t, time.Hour, cfg.TokenValidity)
		assert.Equal(t, "travel", cfg.S3.Bucket)
		assert.Equal(t, "http://127.0.0.1:9000", cfg.S3.Endpoint)
		assert.Equal(t, "us-east-1", cfg.S3.Region)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{SnapshotDir: "defaults", AutoSave: true}
		parseJson(cfg)

		assert.Equal(t, "defaults", cfg.SnapshotDir)
		assert.True(t, cfg.AutoSave)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
