package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-g", ":6000", "-d", "travel.db", "-s", "secret",
				"-l", "debug", "-t", "5", "-m", "/m", "-w=false",
			},
			expected: &Config{
				HTTPAddr:        "127.0.0.1:9090",
				GRPCAddr:        ":6000",
				DatabasePath:    "travel.db",
				SecretKey:       "secret",
				LogLevel:        "debug",
				ShutdownTimeout: 5 * time.Second,
				MetricsPath:     "/m",
				AutoSave:        false,
			},
		},
		{
			name: "bool flag does not swallow the next argument",
			args: []string{"cmd", "-w", "-d", "other.db", "-c", "conf.json", "-x", "ignored"},
			expected: &Config{
				DatabasePath: "other.db",
				AutoSave:     true,
			},
		},
		{
			name:        "bad int",
			args:        []string{"cmd", "-t", "soon"},
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
