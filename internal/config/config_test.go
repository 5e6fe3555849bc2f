package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSizeBytes())
}

func TestValidateBounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"file size too small", func(c *Config) { c.MaxFileSizeMB = 0 }},
		{"file size too large", func(c *Config) { c.MaxFileSizeMB = 101 }},
		{"line count too small", func(c *Config) { c.MaxLineCount = 0 }},
		{"line count too large", func(c *Config) { c.MaxLineCount = 1000001 }},
		{"lock timeout too small", func(c *Config) { c.LockTimeoutSec = 0 }},
		{"lock timeout too large", func(c *Config) { c.LockTimeoutSec = 301 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
