package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/secretsvault/internal/flagx"
	"github.com/dmitrijs2005/secretsvault/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept "10s" strings
// or integer nanoseconds. Empty fields leave the current value unchanged.
type JsonConfig struct {
	EndpointAddrHTTP   string         `json:"endpoint_addr_http"`
	DatabaseDSN        string         `json:"database_dsn"`
	StorageType        string         `json:"storage_type"`
	SecretKey          string         `json:"secret_key"`
	EncryptionKey      string         `json:"encryption_key"`
	EncryptionKeyParam string         `json:"encryption_key_param"`
	AWSRegion          string         `json:"aws_region"`
	ShutdownTimeout    timex.Duration `json:"shutdown_timeout"`
	LogLevel           string         `json:"log_level"`
}

// parseJson overlays values from the file named by -c or -config, if any.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.StorageType, c.StorageType)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.EncryptionKey, c.EncryptionKey)
	setString(&config.EncryptionKeyParam, c.EncryptionKeyParam)
	setString(&config.AWSRegion, c.AWSRegion)
	setString(&config.LogLevel, c.LogLevel)
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
