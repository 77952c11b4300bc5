// Package config holds settings for the vault CLI client.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the vault CLI.
//
// Token is a bearer token issued by the identity provider. When empty the
// CLI asks for it on start.
type Config struct {
	ServerURL      string
	Token          string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with defaults for a local server.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
}

// Load applies defaults, then the JSON file named by -c/-config, then flags,
// then SECRETSVAULT_TOKEN.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if v := getenv("SECRETSVAULT_TOKEN"); v != "" {
		cfg.Token = v
	}
	return cfg, nil
}

func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.Getenv)
}
