package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/trackly/internal/flagx"
	"github.com/dmitrijs2005/trackly/internal/timex"
)

// JsonConfig is the on-disk JSON shape. Absent keys leave the current value
// untouched, hence the pointer fields.
type JsonConfig struct {
	DatabasePath      *string         `json:"database_path"`
	BusyTimeout       *timex.Duration `json:"busy_timeout"`
	LogLevel          *string         `json:"log_level"`
	MinPasswordLength *int            `json:"min_password_length"`
	AvatarBackend     *string         `json:"avatar_backend"`
	AvatarDir         *string         `json:"avatar_dir"`
	S3AccessKey       *string         `json:"s3_access_key"`
	S3SecretKey       *string         `json:"s3_secret_key"`
	S3Bucket          *string         `json:"s3_bucket"`
	S3Region          *string         `json:"s3_region"`
	S3BaseEndpoint    *string         `json:"s3_base_endpoint"`
}

// parseJson overlays the file named by -c/-config, if any.
func parseJson(cfg *Config, args []string) error {
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

	setString(&cfg.DatabasePath, c.DatabasePath)
	setString(&cfg.LogLevel, c.LogLevel)
	setString(&cfg.AvatarBackend, c.AvatarBackend)
	setString(&cfg.AvatarDir, c.AvatarDir)
	setString(&cfg.S3AccessKey, c.S3AccessKey)
	setString(&cfg.S3SecretKey, c.S3SecretKey)
	setString(&cfg.S3Bucket, c.S3Bucket)
	setString(&cfg.S3Region, c.S3Region)
	setString(&cfg.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.BusyTimeout != nil {
		cfg.BusyTimeout = c.BusyTimeout.Duration
	}
	if c.MinPasswordLength != nil {
		cfg.MinPasswordLength = *c.MinPasswordLength
	}
	return nil
}
