// Package config holds the tunable settings of the shadow demo. Defaults reproduce the
// original scene; a YAML file and OXY_SHADOWS_* environment variables may override them.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable read by ApplyEnv.
const EnvPrefix = "OXY_SHADOWS_"

// Config is the root configuration document.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Light  LightConfig  `yaml:"light"`
	Shadow ShadowConfig `yaml:"shadow"`
	Scene  SceneConfig  `yaml:"scene"`
	Log    LogConfig    `yaml:"log"`
	Assets AssetsConfig `yaml:"assets"`
}

// WindowConfig describes the initial window.
type WindowConfig struct {
	Title       string `yaml:"title"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	RefreshRate int    `yaml:"refresh_rate"`
	Resizable   bool   `yaml:"resizable"`
	// Backend selects the graphics API ("", "vulkan", "metal", "d3d12", "opengl").
	// Empty lets the adapter pick.
	Backend string `yaml:"backend"`
	// VSync selects Fifo presentation when true and Immediate when false.
	VSync bool `yaml:"vsync"`
}

// CameraConfig holds the fly camera settings.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Rotation    [3]float32 `yaml:"rotation"`
	FOV         float32    `yaml:"fov"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
}

// LightConfig holds the directional light. Direction is normalized on use.
type LightConfig struct {
	Direction [3]float32 `yaml:"direction"`
	Target    [3]float32 `yaml:"target"`
	Color     [3]float32 `yaml:"color"`
}

// ShadowConfig holds the shadow map and light frustum parameters.
type ShadowConfig struct {
	MapSize  uint32  `yaml:"map_size"`
	Extents  float32 `yaml:"extents"`
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	Distance float32 `yaml:"distance"`
	Bias     float32 `yaml:"bias"`
}

// SceneConfig lists the objects drawn by both passes, in draw order.
type SceneConfig struct {
	Objects   []ObjectConfig `yaml:"objects"`
	BaseColor [4]float32     `yaml:"base_color"`
}

// ObjectConfig places one mesh in the world. The model matrix is
// RotateY(RotationY) * Scale(Scale).
type ObjectConfig struct {
	Name      string  `yaml:"name"`
	Mesh      string  `yaml:"mesh"`
	Scale     float32 `yaml:"scale"`
	RotationY float32 `yaml:"rotation_y"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// AssetsConfig points at an on-disk asset directory. Empty uses the embedded assets.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration of the original scene.
//
// Returns:
//   - Config: a fully populated configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:       "Area Light Shadows (c) 2019 Dihara Wijetunga",
			Width:       1920,
			Height:      1080,
			RefreshRate: 60,
			Resizable:   true,
			VSync:       true,
		},
		Camera: CameraConfig{
			Position:    [3]float32{50, 20, 0},
			Rotation:    [3]float32{0, -90, 0},
			FOV:         60,
			Near:        0.1,
			Far:         300,
			Speed:       0.05,
			Sensitivity: 0.05,
		},
		Light: LightConfig{
			Direction: [3]float32{0.5, -0.977, -0.5},
			Target:    [3]float32{0, 0, 0},
			Color:     [3]float32{10000, 10000, 10000},
		},
		Shadow: ShadowConfig{
			MapSize:  1024,
			Extents:  75,
			Near:     1,
			Far:      650,
			Distance: 200,
			Bias:     0.001,
		},
		Scene: SceneConfig{
			Objects: []ObjectConfig{
				{Name: "statue", Mesh: "mesh/statue.obj", Scale: 0.1, RotationY: 45},
				{Name: "plane", Mesh: "mesh/plane.obj", Scale: 0.4},
			},
			BaseColor: [4]float32{0.5, 0.5, 0.5, 1},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML file and overlays it on Default. An empty path returns Default.
//
// Parameters:
//   - path: the YAML file path, or "" for defaults only
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the file cannot be read or parsed
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from OXY_SHADOWS_* environment variables.
// Recognised: ASSETS_DIR, LOG_LEVEL, LOG_DEVELOPMENT, WINDOW_BACKEND, WINDOW_VSYNC.
//
// Parameters:
//   - lookup: the environment lookup, usually os.LookupEnv
//
// Returns:
//   - error: error if a boolean variable cannot be parsed
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "ASSETS_DIR"); ok {
		c.Assets.Dir = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvPrefix + "WINDOW_BACKEND"); ok {
		c.Window.Backend = strings.ToLower(v)
	}
	for name, dst := range map[string]*bool{
		"LOG_DEVELOPMENT": &c.Log.Development,
		"WINDOW_VSYNC":    &c.Window.VSync,
	} {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "%s%s", EnvPrefix, name)
		}
		*dst = b
	}
	return nil
}

// Validate reports the first setting that cannot produce a working scene.
//
// Returns:
//   - error: nil if the configuration is usable
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return errors.Errorf("camera planes near=%g far=%g are invalid", c.Camera.Near, c.Camera.Far)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return errors.Errorf("camera fov %g out of range", c.Camera.FOV)
	case c.Shadow.MapSize == 0:
		return errors.New("shadow map size must be positive")
	case c.Shadow.Extents <= 0:
		return errors.Errorf("shadow extents %g must be positive", c.Shadow.Extents)
	case c.Shadow.Near <= 0 || c.Shadow.Far <= c.Shadow.Near:
		return errors.Errorf("shadow planes near=%g far=%g are invalid", c.Shadow.Near, c.Shadow.Far)
	case c.Light.Direction == [3]float32{}:
		return errors.New("light direction must be non-zero")
	case len(c.Scene.Objects) == 0:
		return errors.New("scene has no objects")
	}
	for i, o := range c.Scene.Objects {
		if o.Mesh == "" {
			return errors.Errorf("scene object %d (%s) has no mesh", i, o.Name)
		}
	}
	switch c.Window.Backend {
	case "", "vulkan", "metal", "d3d12", "opengl":
	default:
		return errors.Errorf("unknown backend %q", c.Window.Backend)
	}
	return nil
}
