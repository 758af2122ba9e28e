package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors Config with pointer fields so that only variables that
// are actually set override the defaults.
type envConfig struct {
	DatabasePath      *string        `env:"TRACKLY_DATABASE_PATH"`
	BusyTimeout       *time.Duration `env:"TRACKLY_BUSY_TIMEOUT"`
	LogLevel          *string        `env:"TRACKLY_LOG_LEVEL"`
	MinPasswordLength *int           `env:"TRACKLY_MIN_PASSWORD_LENGTH"`
	AvatarBackend     *string        `env:"TRACKLY_AVATAR_BACKEND"`
	AvatarDir         *string        `env:"TRACKLY_AVATAR_DIR"`
	S3AccessKey       *string        `env:"TRACKLY_S3_ACCESS_KEY"`
	S3SecretKey       *string        `env:"TRACKLY_S3_SECRET_KEY"`
	S3Bucket          *string        `env:"TRACKLY_S3_BUCKET"`
	S3Region          *string        `env:"TRACKLY_S3_REGION"`
	S3BaseEndpoint    *string        `env:"TRACKLY_S3_BASE_ENDPOINT"`
}

func parseEnv(cfg *Config) error {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	setString(&cfg.DatabasePath, e.DatabasePath)
	setString(&cfg.LogLevel, e.LogLevel)
	setString(&cfg.AvatarBackend, e.AvatarBackend)
	setString(&cfg.AvatarDir, e.AvatarDir)
	setString(&cfg.S3AccessKey, e.S3AccessKey)
	setString(&cfg.S3SecretKey, e.S3SecretKey)
	setString(&cfg.S3Bucket, e.S3Bucket)
	setString(&cfg.S3Region, e.S3Region)
	setString(&cfg.S3BaseEndpoint, e.S3BaseEndpoint)
	if e.BusyTimeout != nil {
		cfg.BusyTimeout = *e.BusyTimeout
	}
	if e.MinPasswordLength != nil {
		cfg.MinPasswordLength = *e.MinPasswordLength
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
