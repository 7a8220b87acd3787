package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "s3 store",
			args: []string{"cmd", "-k", "s3", "-u", "minio", "-p", "minio123", "-b", "travel",
				"-g", "eu-west-1", "-e", "http://localhost:9000", "-r", "trip", "-l", "debug"},
			expected: &Config{
				SnapshotStore: StoreS3,
				SnapshotKey:   "trip",
				LogLevel:      "debug",
				S3: S3{
					AccessKey: "minio",
					SecretKey: "minio123",
					Bucket:    "travel",
					Region:    "eu-west-1",
					Endpoint:  "http://localhost:9000",
				},
			},
		},
		{
			name:     "bool flags before positional noise",
			args:     []string{"cmd", "-k", "file", "-x", "-w", "-d", "/tmp/trips", "-c", "conf.json", "-s", "key"},
			expected: &Config{SnapshotStore: StoreFile, SnapshotDir: "/tmp/trips", Encrypt: true, AutoSave: true, TokenSecret: "key"},
		},
		{
			name:     "memory with autosave off",
			args:     []string{"cmd", "-k", "memory", "-w=false"},
			expected: &Config{SnapshotStore: StoreMemory},
		},
		{
			name:        "unknown store",
			args:        []string{"cmd", "-k", "dropbox"},
			expectPanic: true,
		},
		{
			name:        "missing value",
			args:        []string{"cmd", "-k"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
