package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/trackly/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   SQLite database file
//	-t int      busy timeout, seconds
//	-l string   log level
//	-m int      minimum password length
//	-a string   avatar backend (local|s3)
//	-o string   avatar directory for the local backend
//	-u string   S3 access key
//	-p string   S3 secret key
//	-b string   S3 bucket
//	-g string   S3 region
//	-e string   S3 base endpoint
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-t", "-l", "-m", "-a", "-o", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("trackly", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "database file")
	busyTimeout := fs.Int("t", int(cfg.BusyTimeout.Seconds()), "busy timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.IntVar(&cfg.MinPasswordLength, "m", cfg.MinPasswordLength, "minimum password length")
	fs.StringVar(&cfg.AvatarBackend, "a", cfg.AvatarBackend, "avatar backend (local|s3)")
	fs.StringVar(&cfg.AvatarDir, "o", cfg.AvatarDir, "avatar directory")
	fs.StringVar(&cfg.S3AccessKey, "u", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "p", cfg.S3SecretKey, "S3 secret key")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg.BusyTimeout = time.Duration(*busyTimeout) * time.Second
	return nil
}
