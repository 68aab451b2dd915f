// Package config loads crawl settings from YAML and the environment.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"domainsift/pkg/crawler"
)

// Config holds all settings for a crawl run.
type Config struct {
	// StartURL is the seed page. Required; must carry an http(s) scheme.
	StartURL string `mapstructure:"start_url"`

	// MaxPages caps how many pages are fetched in total.
	MaxPages int `mapstructure:"max_pages"`

	// Workers is the number of concurrent fetch workers.
	Workers int `mapstructure:"workers"`

	// RequestDelay is the per-worker gap between requests, in seconds.
	// Aggregate load on the target is roughly Workers/RequestDelay req/s.
	RequestDelay float64 `mapstructure:"request_delay"`

	// Timeout is the per-request HTTP timeout, in seconds.
	Timeout float64 `mapstructure:"timeout"`

	// Verbose enables debug-level logging.
	Verbose bool `mapstructure:"verbose"`

	// Output is the output file path. Ignored in config-file mode, where the
	// filename is derived from the crawled domain.
	Output string `mapstructure:"output"`

	// Counts selects the counted output variant (domain plus occurrence
	// count) over the bare domain list.
	Counts bool `mapstructure:"counts"`

	// DomainPolicy is "host" (compare full hosts) or "apex" (compare
	// registrable domains, so subdomains count as internal).
	DomainPolicy string `mapstructure:"domain_policy"`
}

// Load reads configuration from configPath, falling back to ./config.yaml
// when configPath is empty. A missing file is only an error when a path was
// given explicitly; otherwise defaults and DOMAINSIFT_* environment
// variables apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("DOMAINSIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || configPath != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("max_pages", 100)
	v.SetDefault("workers", 8)
	v.SetDefault("request_delay", 0.1)
	v.SetDefault("timeout", 10.0)
	v.SetDefault("verbose", false)
	v.SetDefault("output", "domains.txt")
	v.SetDefault("counts", true)
	v.SetDefault("domain_policy", string(crawler.PolicyHost))
}

// Delay returns the request delay as a duration.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.RequestDelay * float64(time.Second))
}

// HTTPTimeout returns the per-request timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.Timeout * float64(time.Second))
}

// Validate checks the configuration before a crawl starts.
func (c *Config) Validate() error {
	if c.StartURL == "" {
		return fmt.Errorf("start_url is required")
	}
	u, err := url.Parse(c.StartURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("start_url %q is invalid: include the scheme (http:// or https://)", c.StartURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("start_url %q is invalid: unsupported scheme %q", c.StartURL, u.Scheme)
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("max_pages must be positive")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("request_delay must not be negative")
	}
	if !crawler.DomainPolicy(c.DomainPolicy).Valid() {
		return fmt.Errorf("domain_policy must be %q or %q", crawler.PolicyHost, crawler.PolicyApex)
	}
	return nil
}
