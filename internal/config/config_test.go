// filepath: internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mediaconform.db", cfg.Jobs.DatabasePath)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 5, cfg.JWT.AccessDurationMin)
	assert.Equal(t, 320, cfg.Resize.PhotoGeneralMinWidth)
	assert.Equal(t, 1080, cfg.Resize.PhotoGeneralMaxWidth)
	assert.Equal(t, 480, cfg.Resize.VideoMinWidth)
	assert.Equal(t, 720, cfg.Resize.VideoMaxWidth)
}

func TestConfigApplyDefaultsDoesNotOverrideExplicitValues(t *testing.T) {
	cfg := Config{Server: ServerConfig{Host: "127.0.0.1", Port: 9090}}
	cfg.ApplyDefaults()

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
}
