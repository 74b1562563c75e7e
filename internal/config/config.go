package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultBinaryPath = "./LakeXpress"
	defaultTimeout    = 3600 * time.Second
	defaultLogDir     = "./logs"
	defaultPreviewTTL = 15 * time.Minute
)

// LoggingConfig controls the server's own log output (not the wrapped
// binary's --log_level/--log_dir flags).
type LoggingConfig struct {
	Level      string
	OutputFile string
	MaxSizeMB  int64
	Console    bool
}

// Config holds everything read from the process environment at startup.
type Config struct {
	BinaryPath     string
	Timeout        time.Duration
	LogDir         string
	FastBCPDirPath string
	PreviewTTL     time.Duration
	Logging        LoggingConfig
}

// Load reads configuration from the environment, after autoloading a .env
// file if one is present in the working directory.
func Load() (*Config, error) {
	// Missing .env is fine; explicit env vars win either way.
	_ = godotenv.Load()

	cfg := &Config{
		BinaryPath:     envOr("LAKEXPRESS_PATH", defaultBinaryPath),
		Timeout:        defaultTimeout,
		LogDir:         envOr("LAKEXPRESS_LOG_DIR", defaultLogDir),
		FastBCPDirPath: os.Getenv("FASTBCP_DIR_PATH"),
		PreviewTTL:     defaultPreviewTTL,
		Logging: LoggingConfig{
			Level:      envOr("LOG_LEVEL", "INFO"),
			OutputFile: os.Getenv("LOG_FILE"),
			MaxSizeMB:  10,
			Console:    true,
		},
	}

	if v := os.Getenv("LAKEXPRESS_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid LAKEXPRESS_TIMEOUT %q: must be a positive number of seconds", v)
		}
		cfg.Timeout = time.Duration(secs) * time.Second
	}

	if v := os.Getenv("LAKEXPRESS_PREVIEW_TTL"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid LAKEXPRESS_PREVIEW_TTL %q: must be a positive number of seconds", v)
		}
		cfg.PreviewTTL = time.Duration(secs) * time.Second
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
