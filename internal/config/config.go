// Package config handles projection settings loading and management.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/sureuv/pkg/math"
	"github.com/Faultbox/sureuv/pkg/uv"
)

// Projection modes.
const (
	ModeBox    = "box"
	ModePlanar = "planar"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all tool settings.
type Config struct {
	Input     string          `yaml:"input" toml:"input" env:"INPUT"`
	Output    string          `yaml:"output" toml:"output" env:"OUTPUT"`
	Mode      string          `yaml:"mode" toml:"mode" env:"MODE"`
	Box       BoxConfig       `yaml:"box" toml:"box" envPrefix:"BOX_"`
	Planar    PlanarConfig    `yaml:"planar" toml:"planar" envPrefix:"PLANAR_"`
	Selection SelectionConfig `yaml:"selection" toml:"selection" envPrefix:"SELECTION_"`
	Texture   TextureConfig   `yaml:"texture" toml:"texture" envPrefix:"TEXTURE_"`
	Watch     WatchConfig     `yaml:"watch" toml:"watch" envPrefix:"WATCH_"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging" envPrefix:"LOG_"`
}

// BoxConfig holds box projection parameters. Angles are in degrees.
type BoxConfig struct {
	Size     float32    `yaml:"size" toml:"size" env:"SIZE"`
	Rotation [3]float32 `yaml:"rotation" toml:"rotation"`
	Offset   [3]float32 `yaml:"offset" toml:"offset"`
}

// PlanarConfig holds best planar projection parameters.
type PlanarConfig struct {
	Size      float32    `yaml:"size" toml:"size" env:"SIZE"`
	ZRotation float32    `yaml:"z_rotation" toml:"z_rotation" env:"Z_ROTATION"`
	Offset    [2]float32 `yaml:"offset" toml:"offset"`
}

// SelectionConfig picks the faces that count as selected.
type SelectionConfig struct {
	Groups []string `yaml:"groups" toml:"groups" env:"GROUPS" envSeparator:","` // OBJ group or object names
	Only   bool     `yaml:"only" toml:"only" env:"ONLY"`                         // write UVs for selected faces only
}

// TextureConfig holds the target texture used to correct the aspect ratio.
type TextureConfig struct {
	Image      string  `yaml:"image" toml:"image" env:"IMAGE"`
	AutoAspect bool    `yaml:"auto_aspect" toml:"auto_aspect" env:"AUTO_ASPECT"`
	Aspect     float32 `yaml:"aspect" toml:"aspect" env:"ASPECT"`
}

// WatchConfig controls re-running when inputs change.
type WatchConfig struct {
	Enabled    bool `yaml:"enabled" toml:"enabled" env:"ENABLED"`
	DebounceMs int  `yaml:"debounce_ms" toml:"debounce_ms" env:"DEBOUNCE_MS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level" env:"LEVEL"`
	Format  string `yaml:"format" toml:"format" env:"FORMAT"` // console or json
	LogFile string `yaml:"log_file" toml:"log_file" env:"FILE"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mode: ModeBox,
		Box: BoxConfig{
			Size: 1,
		},
		Planar: PlanarConfig{
			Size: 1,
		},
		Texture: TextureConfig{
			AutoAspect: true,
			Aspect:     1,
		},
		Watch: WatchConfig{
			DebounceMs: 200,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks that the config describes a runnable projection.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: no input mesh", ErrInvalidConfig)
	}
	switch c.Mode {
	case ModeBox, ModePlanar:
	default:
		return fmt.Errorf("%w: unknown mode %q (want %q or %q)", ErrInvalidConfig, c.Mode, ModeBox, ModePlanar)
	}
	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("%w: negative watch debounce", ErrInvalidConfig)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// OutputPath returns the configured output, or "<input>_uv.obj" next to the input.
func (c *Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	ext := filepath.Ext(c.Input)
	return strings.TrimSuffix(c.Input, ext) + "_uv" + ext
}

// Scope returns the projection scope selected by the config.
func (c *Config) Scope() uv.Scope {
	if c.Selection.Only {
		return uv.ScopeSelected
	}
	return uv.ScopeAll
}

// Operation builds the projection for the configured mode with the given texture aspect.
func (c *Config) Operation(aspect float32) uv.Operation {
	if c.Mode == ModePlanar {
		return uv.PlanarProjection{
			Params: uv.PlanarParams{
				Size:      c.Planar.Size,
				Aspect:    aspect,
				ZRotation: c.Planar.ZRotation,
				Offset:    math.Vec2{X: c.Planar.Offset[0], Y: c.Planar.Offset[1]},
			},
			Scope: c.Scope(),
		}
	}
	return uv.BoxProjection{
		Params: uv.BoxParams{
			Size:     c.Box.Size,
			Aspect:   aspect,
			Rotation: math.Vec3{X: c.Box.Rotation[0], Y: c.Box.Rotation[1], Z: c.Box.Rotation[2]},
			Offset:   math.Vec3{X: c.Box.Offset[0], Y: c.Box.Offset[1], Z: c.Box.Offset[2]},
		},
		Scope: c.Scope(),
	}
}
