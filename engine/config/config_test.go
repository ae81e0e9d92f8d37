package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesOriginalScene(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, uint32(1024), cfg.Shadow.MapSize)
	assert.Equal(t, float32(75), cfg.Shadow.Extents)
	assert.Equal(t, float32(650), cfg.Shadow.Far)
	assert.Equal(t, float32(0.001), cfg.Shadow.Bias)
	assert.Equal(t, float32(300), cfg.Camera.Far)
	assert.True(t, cfg.Window.Resizable)
	require.Len(t, cfg.Scene.Objects, 2)
	assert.Equal(t, "statue", cfg.Scene.Objects[0].Name)
	assert.Equal(t, "plane", cfg.Scene.Objects[1].Name)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shadows.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  width: 800\nshadow:\n  bias: 0.005\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 1080, cfg.Window.Height)
	assert.Equal(t, float32(0.005), cfg.Shadow.Bias)
	assert.Equal(t, uint32(1024), cfg.Shadow.MapSize)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: [1, 2"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"OXY_SHADOWS_ASSETS_DIR":      "/srv/assets",
		"OXY_SHADOWS_LOG_LEVEL":       "DEBUG",
		"OXY_SHADOWS_WINDOW_VSYNC":    "false",
		"OXY_SHADOWS_WINDOW_BACKEND":  "Vulkan",
		"OXY_SHADOWS_LOG_DEVELOPMENT": "true",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))

	assert.Equal(t, "/srv/assets", cfg.Assets.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "vulkan", cfg.Window.Backend)
	assert.False(t, cfg.Window.VSync)
	assert.True(t, cfg.Log.Development)
}

func TestApplyEnvRejectsBadBool(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) (string, bool) {
		if k == "OXY_SHADOWS_WINDOW_VSYNC" {
			return "sometimes", true
		}
		return "", false
	})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }},
		{"zero shadow map", func(c *Config) { c.Shadow.MapSize = 0 }},
		{"zero light direction", func(c *Config) { c.Light.Direction = [3]float32{} }},
		{"no objects", func(c *Config) { c.Scene.Objects = nil }},
		{"object without mesh", func(c *Config) { c.Scene.Objects[0].Mesh = "" }},
		{"unknown backend", func(c *Config) { c.Window.Backend = "glide" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
