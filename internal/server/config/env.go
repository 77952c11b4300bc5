package config

const envPrefix = "SECRETSVAULT_"

// parseEnv lets the environment override secrets and connection settings,
// so they need not appear in process listings or config files.
func parseEnv(config *Config, getenv func(string) string) {
	if getenv == nil {
		return
	}

	overrides := []struct {
		name string
		dst  *string
	}{
		{"ADDRESS", &config.EndpointAddrHTTP},
		{"DATABASE_DSN", &config.DatabaseDSN},
		{"STORAGE_TYPE", &config.StorageType},
		{"SECRET_KEY", &config.SecretKey},
		{"ENCRYPTION_KEY", &config.EncryptionKey},
		{"ENCRYPTION_KEY_PARAM", &config.EncryptionKeyParam},
		{"AWS_REGION", &config.AWSRegion},
		{"LOG_LEVEL", &config.LogLevel},
	}
	for _, o := range overrides {
		setString(o.dst, getenv(envPrefix+o.name))
	}
}
