package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, "media", cfg.S3Bucket)
	assert.Equal(t, 15*time.Minute, cfg.PresignExpiry)
	assert.True(t, cfg.S3UsePathStyle)
	assert.Empty(t, cfg.PublicBaseURL)
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv("ADDRESS", ":9999")
	t.Setenv("S3_BUCKET", "cms-assets")
	t.Setenv("S3_USE_PATH_STYLE", "false")
	t.Setenv("PRESIGN_EXPIRY", "30m")
	t.Setenv("PUBLIC_BASE_URL", "https://cdn.example.com")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddrHTTP)
	assert.Equal(t, "cms-assets", cfg.S3Bucket)
	assert.False(t, cfg.S3UsePathStyle)
	assert.Equal(t, 30*time.Minute, cfg.PresignExpiry)
	assert.Equal(t, "https://cdn.example.com", cfg.PublicBaseURL)
}

func TestParseEnv_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("S3_USE_PATH_STYLE", "maybe")
	t.Setenv("PRESIGN_EXPIRY", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.True(t, cfg.S3UsePathStyle, "invalid bool must keep the default")
	assert.Equal(t, 15*time.Minute, cfg.PresignExpiry, "invalid duration must keep the default")
}
