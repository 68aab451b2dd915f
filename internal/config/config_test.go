package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err, "explicit config path must exist")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.MaxPages)
	assert.Equal(t, 8, cfg.Workers)
	assert.InDelta(t, 0.1, cfg.RequestDelay, 1e-9)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "domains.txt", cfg.Output)
	assert.True(t, cfg.Counts)
	assert.Equal(t, "host", cfg.DomainPolicy)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
start_url: https://a.test
max_pages: 25
workers: 3
request_delay: 0.5
verbose: true
counts: false
domain_policy: apex
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://a.test", cfg.StartURL)
	assert.Equal(t, 25, cfg.MaxPages)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 500*time.Millisecond, cfg.Delay())
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.Counts)
	assert.Equal(t, "apex", cfg.DomainPolicy)
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("start_url: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			StartURL:     "https://a.test",
			MaxPages:     100,
			Workers:      8,
			RequestDelay: 0.1,
			DomainPolicy: "host",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing start_url", func(c *Config) { c.StartURL = "" }, "start_url is required"},
		{"scheme-less start_url", func(c *Config) { c.StartURL = "a.test/page" }, "include the scheme"},
		{"ftp start_url", func(c *Config) { c.StartURL = "ftp://a.test" }, "unsupported scheme"},
		{"zero max_pages", func(c *Config) { c.MaxPages = 0 }, "max_pages must be positive"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers must be positive"},
		{"negative delay", func(c *Config) { c.RequestDelay = -0.5 }, "request_delay must not be negative"},
		{"bad policy", func(c *Config) { c.DomainPolicy = "tld" }, "domain_policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := &Config{RequestDelay: 0.25, Timeout: 10}
	assert.Equal(t, 250*time.Millisecond, cfg.Delay())
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout())
}
