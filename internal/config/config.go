// Package config handles configuration for trackly, including defaults,
// environment overlay, JSON file overlay, and command-line flags.
package config

import (
	"fmt"
	"time"
)

// Avatar storage backends.
const (
	AvatarBackendLocal = "local"
	AvatarBackendS3    = "s3"
)

// Config holds runtime settings.
//
// Fields:
//   - DatabasePath: SQLite database file.
//   - BusyTimeout: how long SQLite waits on a locked database file.
//   - LogLevel: debug, info, warn or error.
//   - MinPasswordLength: registration rejects shorter passwords.
//   - AvatarBackend: "local" stores avatars under AvatarDir, "s3" uploads them
//     to S3Bucket through a presigned URL.
type Config struct {
	DatabasePath      string
	BusyTimeout       time.Duration
	LogLevel          string
	MinPasswordLength int
	AvatarBackend     string
	AvatarDir         string
	S3AccessKey       string
	S3SecretKey       string
	S3Bucket          string
	S3Region          string
	S3BaseEndpoint    string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "trackly.db"
	c.BusyTimeout = 5 * time.Second
	c.LogLevel = "info"
	c.MinPasswordLength = 6
	c.AvatarBackend = AvatarBackendLocal
	c.AvatarDir = "avatars"
	c.S3Bucket = "avatars"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// Validate reports settings that would make the process fail later.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.MinPasswordLength < 1 {
		return fmt.Errorf("min password length must be > 0, got %d", c.MinPasswordLength)
	}
	switch c.AvatarBackend {
	case AvatarBackendLocal:
		if c.AvatarDir == "" {
			return fmt.Errorf("avatar dir must not be empty")
		}
	case AvatarBackendS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3 bucket must not be empty")
		}
	default:
		return fmt.Errorf("unknown avatar backend %q", c.AvatarBackend)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, an optional JSON file and finally command-line
// flags. Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
