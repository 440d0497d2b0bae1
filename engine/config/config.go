// Package config loads the sprite demo's TOML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-batch/common"
	"github.com/Carmen-Shannon/oxy-batch/engine/batcher"
	"github.com/Carmen-Shannon/oxy-batch/engine/renderer"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid wraps every validation failure returned by Config.Validate.
var ErrInvalid = errors.New("config: invalid value")

// Config is the root of the configuration file. Sections missing from the file keep the values
// from Default.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Batcher  BatcherConfig  `toml:"batcher"`
	Demo     DemoConfig     `toml:"demo"`
}

// WindowConfig describes the demo window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// RendererConfig describes surface and frame settings.
type RendererConfig struct {
	// PresentMode is "vsync" or "uncapped".
	PresentMode string `toml:"present_mode"`
	// MSAA is the sample count: 1, 4, 8 or 16.
	MSAA int `toml:"msaa"`
	// ClearColor is "#RRGGBB" or "#RRGGBBAA".
	ClearColor    string `toml:"clear_color"`
	ForceSoftware bool   `toml:"force_software"`
}

// BatcherConfig describes the sprite batcher.
type BatcherConfig struct {
	MaxQuads int `toml:"max_quads"`
}

// DemoConfig describes what the demo draws.
type DemoConfig struct {
	Sprites int `toml:"sprites"`
	// Textures are image files to load; procedural textures are used when empty or on load failure.
	Textures []string `toml:"textures"`
	// PixelArt selects nearest-neighbour sampling.
	PixelArt bool   `toml:"pixel_art"`
	LogLevel string `toml:"log_level"`
	Seed     int64  `toml:"seed"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-batch sprites",
			Width:  1280,
			Height: 720,
		},
		Renderer: RendererConfig{
			PresentMode: renderer.PresentModeVSync.String(),
			MSAA:        int(renderer.MSAA4x),
			ClearColor:  "#101018",
		},
		Batcher: BatcherConfig{
			MaxQuads: batcher.DefaultMaxQuads,
		},
		Demo: DemoConfig{
			Sprites:  10000,
			LogLevel: "info",
			Seed:     1,
		},
	}
}

// Parse decodes TOML over the defaults and validates the result. Unknown keys are rejected.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the decoded configuration
//   - error: a decode error or a validation error wrapping ErrInvalid
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("failed to parse config at %d:%d: %w", row, col, err)
		}
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a configuration file.
//
// Parameters:
//   - path: the TOML file path
//
// Returns:
//   - Config: the decoded configuration
//   - error: error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every value against the range its consumer accepts.
//
// Returns:
//   - error: the joined validation failures, each wrapping ErrInvalid, or nil
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if _, err := c.Renderer.Present(); err != nil {
		invalid("renderer.present_mode %q", c.Renderer.PresentMode)
	}
	if !c.Renderer.SampleCount().Valid() {
		invalid("renderer.msaa %d is not one of 1, 4, 8, 16", c.Renderer.MSAA)
	}
	if _, err := ParseColor(c.Renderer.ClearColor); err != nil {
		invalid("renderer.clear_color: %v", err)
	}
	if c.Batcher.MaxQuads < 1 || c.Batcher.MaxQuads > batcher.MaxIndexableQuads {
		invalid("batcher.max_quads %d outside [1, %d]", c.Batcher.MaxQuads, batcher.MaxIndexableQuads)
	}
	if c.Demo.Sprites < 0 {
		invalid("demo.sprites %d is negative", c.Demo.Sprites)
	}
	if _, err := c.Demo.Level(); err != nil {
		invalid("demo.log_level %q", c.Demo.LogLevel)
	}
	return errors.Join(errs...)
}

// Present returns the configured present mode.
//
// Returns:
//   - renderer.PresentMode: the present mode
//   - error: error if the name is unknown
func (r RendererConfig) Present() (renderer.PresentMode, error) {
	switch strings.ToLower(r.PresentMode) {
	case renderer.PresentModeVSync.String():
		return renderer.PresentModeVSync, nil
	case renderer.PresentModeUncapped.String():
		return renderer.PresentModeUncapped, nil
	default:
		return 0, fmt.Errorf("unknown present mode %q", r.PresentMode)
	}
}

// SampleCount returns the MSAA sample count.
func (r RendererConfig) SampleCount() renderer.MSAASampleCount {
	return renderer.MSAASampleCount(r.MSAA)
}

// Clear returns the parsed clear color, opaque black if it does not parse.
func (r RendererConfig) Clear() common.Color {
	c, err := ParseColor(r.ClearColor)
	if err != nil {
		return common.Black
	}
	return c
}

// Level returns the configured slog level.
//
// Returns:
//   - slog.Level: the level
//   - error: error if the name is unknown
func (d DemoConfig) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(d.LogLevel)); err != nil {
		return 0, err
	}
	return level, nil
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA". The leading '#' is optional and alpha defaults to 255.
//
// Parameters:
//   - s: the hex color
//
// Returns:
//   - common.Color: the color
//   - error: error if s is not 6 or 8 hex digits
func ParseColor(s string) (common.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return common.Color{}, fmt.Errorf("color %q must have 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return common.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return common.RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
