// Package config loads the engine and editor configuration from TOML or
// YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gputypes"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files that are neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("config: unsupported file format")

// Config is the complete engine and editor configuration.
type Config struct {
	Engine  EngineConfig  `toml:"engine" yaml:"engine"`
	Camera  CameraConfig  `toml:"camera" yaml:"camera"`
	Shader  ShaderConfig  `toml:"shader" yaml:"shader"`
	Scene   SceneConfig   `toml:"scene" yaml:"scene"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// EngineConfig selects the backend and drives the frame loop.
type EngineConfig struct {
	// Backend is a registry name; empty picks the highest priority.
	Backend   string `toml:"backend" yaml:"backend"`
	Selection bool   `toml:"selection" yaml:"selection"`
	Frames    int    `toml:"frames" yaml:"frames"`

	// TimeStep is the simulated seconds per frame.
	TimeStep float64 `toml:"time_step" yaml:"time_step"`
}

// CameraConfig sets the editor camera target and its initial pose.
type CameraConfig struct {
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`

	// ClearColor is RGBA in 0.0-1.0.
	ClearColor [4]float64 `toml:"clear_color" yaml:"clear_color"`
	Position   [3]float32 `toml:"position" yaml:"position"`

	// Rotation is pitch, yaw, roll in degrees.
	Rotation [3]float32 `toml:"rotation" yaml:"rotation"`
}

// Color returns ClearColor as a gputypes.Color.
func (c CameraConfig) Color() gputypes.Color {
	return gputypes.Color{R: c.ClearColor[0], G: c.ClearColor[1], B: c.ClearColor[2], A: c.ClearColor[3]}
}

// ShaderConfig names the material shader stages. Empty paths use the
// built-in unlit shader. Paths ending in .wgsl are translated to GLSL.
type ShaderConfig struct {
	Vertex     string `toml:"vertex" yaml:"vertex"`
	Fragment   string `toml:"fragment" yaml:"fragment"`
	Geometry   string `toml:"geometry" yaml:"geometry"`
	Reflection bool   `toml:"reflection" yaml:"reflection"`
}

// SceneConfig names the assets placed in the scene.
type SceneConfig struct {
	// Model is an OBJ path; empty uses a unit cube.
	Model   string `toml:"model" yaml:"model"`
	Texture string `toml:"texture" yaml:"texture"`

	// Script is a Lua file attached to the model entity.
	Script string `toml:"script" yaml:"script"`
}

// OutputConfig controls the PNG snapshot written after the last frame.
type OutputConfig struct {
	Snapshot string `toml:"snapshot" yaml:"snapshot"` // PNG path; empty disables
	MaxDim   int    `toml:"max_dim" yaml:"max_dim"`   // downscale the snapshot; 0 keeps full size
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Frames:   1,
			TimeStep: 1.0 / 60.0,
		},
		Camera: CameraConfig{
			Width:      960,
			Height:     540,
			ClearColor: [4]float64{0.1, 0.1, 0.1, 1},
			Position:   [3]float32{0, 0, 5},
		},
		Shader: ShaderConfig{
			Reflection: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults and validates the result. The
// format follows the extension: .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var err error
	if c.Engine.Frames < 0 {
		err = multierr.Append(err, fmt.Errorf("engine.frames %d is negative", c.Engine.Frames))
	}
	if c.Engine.TimeStep <= 0 {
		err = multierr.Append(err, fmt.Errorf("engine.time_step %g must be positive", c.Engine.TimeStep))
	}
	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("camera size %dx%d must be positive", c.Camera.Width, c.Camera.Height))
	}
	for i, v := range c.Camera.ClearColor {
		if v < 0 || v > 1 {
			err = multierr.Append(err, fmt.Errorf("camera.clear_color[%d] %g is outside 0-1", i, v))
		}
	}
	if (c.Shader.Vertex == "") != (c.Shader.Fragment == "") {
		err = multierr.Append(err, errors.New("shader.vertex and shader.fragment must be set together"))
	}
	if c.Shader.Geometry != "" && c.Shader.Vertex == "" {
		err = multierr.Append(err, errors.New("shader.geometry needs shader.vertex and shader.fragment"))
	}
	if c.Output.MaxDim < 0 {
		err = multierr.Append(err, fmt.Errorf("output.max_dim %d is negative", c.Output.MaxDim))
	}
	var level zapcore.Level
	if lerr := level.UnmarshalText([]byte(c.Logging.Level)); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("logging.level: %w", lerr))
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		err = multierr.Append(err, fmt.Errorf("logging.format %q must be console or json", c.Logging.Format))
	}
	return err
}
