package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LAKEXPRESS_PATH", "LAKEXPRESS_TIMEOUT", "LAKEXPRESS_LOG_DIR",
		"FASTBCP_DIR_PATH", "LAKEXPRESS_PREVIEW_TTL", "LOG_LEVEL", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./LakeXpress", cfg.BinaryPath)
	assert.Equal(t, 3600*time.Second, cfg.Timeout)
	assert.Equal(t, "./logs", cfg.LogDir)
	assert.Empty(t, cfg.FastBCPDirPath)
	assert.Equal(t, 15*time.Minute, cfg.PreviewTTL)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Console)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LAKEXPRESS_PATH", "/opt/lakexpress/LakeXpress")
	t.Setenv("LAKEXPRESS_TIMEOUT", "120")
	t.Setenv("LAKEXPRESS_LOG_DIR", "/var/log/lakexpress")
	t.Setenv("FASTBCP_DIR_PATH", "/opt/fastbcp")
	t.Setenv("LAKEXPRESS_PREVIEW_TTL", "60")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FILE", "/tmp/server.log")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/opt/lakexpress/LakeXpress", cfg.BinaryPath)
	assert.Equal(t, 120*time.Second, cfg.Timeout)
	assert.Equal(t, "/var/log/lakexpress", cfg.LogDir)
	assert.Equal(t, "/opt/fastbcp", cfg.FastBCPDirPath)
	assert.Equal(t, time.Minute, cfg.PreviewTTL)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "/tmp/server.log", cfg.Logging.OutputFile)
}

func TestLoadInvalidTimeout(t *testing.T) {
	tests := []string{"abc", "-5", "0", "12.5"}
	for _, v := range tests {
		t.Run(v, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("LAKEXPRESS_TIMEOUT", v)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "LAKEXPRESS_TIMEOUT")
		})
	}
}

func TestLoadInvalidPreviewTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("LAKEXPRESS_PREVIEW_TTL", "never")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LAKEXPRESS_PREVIEW_TTL")
}
