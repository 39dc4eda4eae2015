package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_ENV", "nonexistent")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "./web", cfg.StaticPath)
	assert.Equal(t, int64(32768), cfg.ReadLimit)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 32, cfg.SendBuffer)
}
