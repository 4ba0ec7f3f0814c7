package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.BaseURL = "" },
			wantErr: "base URL is required",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Timeout = -1 },
			wantErr: "timeout must not be negative",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Summarizer.Provider = "claude" },
			wantErr: "unknown summarizer provider",
		},
		{
			name:    "gemini without key",
			mutate:  func(c *Config) { c.Summarizer.Provider = "gemini" },
			wantErr: "requires an API key",
		},
		{
			name: "gemini with key",
			mutate: func(c *Config) {
				c.Summarizer.Provider = "gemini"
				c.Summarizer.APIKey = "test-key"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("IPO_TEST_DIR", "/tmp/ipo")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "plain path", path: "/etc/ipo.yaml", want: "/etc/ipo.yaml"},
		{name: "tilde prefix", path: "~/ipo.yaml", want: filepath.Join(home, "ipo.yaml")},
		{name: "bare tilde", path: "~", want: home},
		{name: "env var", path: "$IPO_TEST_DIR/session.json", want: "/tmp/ipo/session.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}
