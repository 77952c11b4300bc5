package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/secretsvault/internal/flagx"
)

// parseFlags overlays Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-d string   PostgreSQL DSN
//	-m string   storage type: postgres or memory
//	-s string   JWT HMAC secret key
//	-k string   base64 encryption key
//	-p string   SSM parameter holding the encryption key
//	-g string   AWS region for SSM
//	-t int      shutdown timeout, seconds
//	-l string   log level
//
// Only these flags are parsed; -c/-config and anything unknown is dropped
// by flagx.FilterArgs first.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-m", "-s", "-k", "-p", "-g", "-t", "-l"})

	fs := flag.NewFlagSet("secretsvault", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.StorageType, "m", config.StorageType, "storage type (postgres|memory)")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.EncryptionKey, "k", config.EncryptionKey, "base64 encryption key")
	fs.StringVar(&config.EncryptionKeyParam, "p", config.EncryptionKeyParam, "SSM parameter name of the encryption key")
	fs.StringVar(&config.AWSRegion, "g", config.AWSRegion, "AWS region")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	shutdownTimeout := fs.Int("t", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
	return nil
}
