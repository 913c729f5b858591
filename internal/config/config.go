// Package config provides configuration management for gfxwrap.
// It supports YAML and TOML configuration files, environment variables,
// named display profiles and sensible defaults.
package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/klauern/gfxwrap/internal/font"
	"github.com/klauern/gfxwrap/internal/logging"
	"github.com/klauern/gfxwrap/internal/util"
)

// Config represents the complete gfxwrap configuration.
type Config struct {
	// Display describes the panel text is measured against
	Display DisplayConfig `yaml:"display" toml:"display"`

	// Font selects the font used for measurement
	Font font.Spec `yaml:"font" toml:"font"`

	// Wrap configures the wrapper limits
	Wrap WrapConfig `yaml:"wrap" toml:"wrap"`

	// Output configures display preferences
	Output OutputConfig `yaml:"output" toml:"output"`

	// maxWidthSet records that the file or environment chose Wrap.MaxWidth.
	maxWidthSet bool
}

// DisplayConfig holds panel geometry.
type DisplayConfig struct {
	// Profile names a display profile to apply over the file's geometry
	Profile string `yaml:"profile,omitempty" toml:"profile,omitempty"`
	// Width and Height are the panel size in pixels
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
	// CursorX and CursorY are where printing starts
	CursorX int `yaml:"cursor_x" toml:"cursor_x"`
	CursorY int `yaml:"cursor_y" toml:"cursor_y"`
	// TextWrap turns on the panel's own character wrapping when printing.
	// Pre-wrapped text should be printed with it off.
	TextWrap bool `yaml:"text_wrap" toml:"text_wrap"`
}

// WrapConfig holds wrapper settings.
type WrapConfig struct {
	// MaxWidth is the right-most pixel column text may reach
	MaxWidth int `yaml:"max_width" toml:"max_width"`
	// Capacity is the output buffer size in bytes, terminator included
	Capacity int `yaml:"capacity" toml:"capacity"`
	// Strict turns truncation into an error
	Strict bool `yaml:"strict" toml:"strict"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Color controls color output (auto, always, never)
	Color string `yaml:"color" toml:"color"`
	// Verbose enables verbose output
	Verbose bool `yaml:"verbose" toml:"verbose"`
}

// Color modes accepted by OutputConfig.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns the default configuration: a 128x64 panel with the classic
// font, wrapping one pixel short of the right edge.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:  128,
			Height: 64,
		},
		Font: font.Spec{
			Name: font.NameClassic,
			Size: 1,
		},
		Wrap: WrapConfig{
			MaxWidth: 127,
			Capacity: 256,
		},
		Output: OutputConfig{
			Color: ColorAuto,
		},
	}
}

// ValidationError describes a configuration value that cannot be used.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Message)
}

// Validate checks the configuration, returning a *ValidationError for the
// first problem found.
func (c *Config) Validate() error {
	switch {
	case c.Display.Width <= 0:
		return &ValidationError{Field: "display.width", Message: "must be positive"}
	case c.Display.Height <= 0:
		return &ValidationError{Field: "display.height", Message: "must be positive"}
	case c.Wrap.MaxWidth <= 0:
		return &ValidationError{Field: "wrap.max_width", Message: "must be positive"}
	case c.Wrap.Capacity <= 0:
		return &ValidationError{Field: "wrap.capacity", Message: "must be positive"}
	}
	if c.Font.Name != "" && !slices.Contains(font.Names(), c.Font.Name) {
		return &ValidationError{
			Field:   "font.name",
			Message: fmt.Sprintf("unknown font %q (want one of %s)", c.Font.Name, strings.Join(font.Names(), ", ")),
		}
	}
	if c.Font.Size < 0 {
		return &ValidationError{Field: "font.size", Message: "must not be negative"}
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return &ValidationError{Field: "output.color", Message: fmt.Sprintf("unknown mode %q", c.Output.Color)}
	}
	return nil
}

// FilePath returns the path to the config file.
func FilePath() string {
	return util.ConfigFilePath()
}

// Load loads the configuration from file, merging with defaults.
// If the config file doesn't exist, returns default configuration.
func Load() (*Config, error) {
	cfg, err := LoadFromPath(FilePath())
	if err != nil {
		if os.IsNotExist(err) {
			// No config file, use defaults with environment overrides
			cfg = Default()
			cfg.applyEnvironment()
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path. Files ending in
// .toml are decoded as TOML, anything else as YAML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is provided by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	var keys struct {
		Wrap struct {
			MaxWidth *int `yaml:"max_width" toml:"max_width"`
		} `yaml:"wrap" toml:"wrap"`
	}
	if err := decode(path, data, &keys); err == nil && keys.Wrap.MaxWidth != nil {
		cfg.maxWidthSet = true
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	return c.SaveToPath(FilePath())
}

// SaveToPath writes the configuration to a specific path, as TOML when the
// path ends in .toml and YAML otherwise.
func (c *Config) SaveToPath(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := encode(path, c)
	if err != nil {
		return err
	}

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(path, data, 0o644)
}

// YAML returns the configuration as YAML.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// TOML returns the configuration as TOML.
func (c *Config) TOML() ([]byte, error) {
	return encode("config.toml", c)
}

// Exists returns true if a config file exists.
func Exists() bool {
	_, err := os.Stat(FilePath())
	return err == nil
}

// Resolve applies the named profile, or the one named by the config when
// name is empty. With neither it does nothing. A max width set in the file
// or environment survives a profile named by the config; a profile passed
// as name replaces it with a warning.
func (c *Config) Resolve(name string) error {
	fromConfig := name == ""
	if fromConfig {
		name = c.Display.Profile
	}
	if name == "" {
		return nil
	}
	p, err := LookupProfile(name)
	if err != nil {
		return err
	}

	explicit := c.Wrap.MaxWidth
	c.ApplyProfile(p)
	switch {
	case !c.maxWidthSet:
	case fromConfig:
		c.Wrap.MaxWidth = explicit
	case explicit != c.Wrap.MaxWidth:
		logging.Warn("profile replaces the configured max width",
			logging.Profile(p.Name),
			slog.Int("configured", explicit),
			logging.Width(c.Wrap.MaxWidth),
		)
	}
	return nil
}

// ApplyProfile replaces the display geometry and font with the profile's
// and wraps one pixel short of the right edge.
func (c *Config) ApplyProfile(p Profile) {
	c.Display.Profile = p.Name
	c.Display.Width = p.Width
	c.Display.Height = p.Height
	c.Font = p.Font
	c.Wrap.MaxWidth = p.Width - 1
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func decode(path string, data []byte, v any) error {
	if isTOML(path) {
		return toml.Unmarshal(data, v)
	}
	return yaml.Unmarshal(data, v)
}

func encode(path string, v any) ([]byte, error) {
	if !isTOML(path) {
		return yaml.Marshal(v)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern GFXWRAP_<SECTION>_<KEY>.
func (c *Config) applyEnvironment() {
	// Display settings
	if v := os.Getenv("GFXWRAP_DISPLAY_PROFILE"); v != "" {
		c.Display.Profile = v
	}
	setInt(&c.Display.Width, "GFXWRAP_DISPLAY_WIDTH")
	setInt(&c.Display.Height, "GFXWRAP_DISPLAY_HEIGHT")
	setInt(&c.Display.CursorX, "GFXWRAP_DISPLAY_CURSOR_X")
	setInt(&c.Display.CursorY, "GFXWRAP_DISPLAY_CURSOR_Y")

	// Font settings
	if v := os.Getenv("GFXWRAP_FONT_NAME"); v != "" {
		c.Font.Name = v
	}
	if v := os.Getenv("GFXWRAP_FONT_SIZE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.Font.Size = f
		}
	}
	if v := os.Getenv("GFXWRAP_FONT_PATH"); v != "" {
		c.Font.Path = util.ExpandPath(v)
	}

	// Wrap settings
	if setInt(&c.Wrap.MaxWidth, "GFXWRAP_WRAP_MAX_WIDTH") {
		c.maxWidthSet = true
	}
	setInt(&c.Wrap.Capacity, "GFXWRAP_WRAP_CAPACITY")
	if v := os.Getenv("GFXWRAP_WRAP_STRICT"); v != "" {
		c.Wrap.Strict = parseBool(v)
	}

	// Output settings
	if v := os.Getenv("GFXWRAP_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}
	if v := os.Getenv("GFXWRAP_OUTPUT_VERBOSE"); v != "" {
		c.Output.Verbose = parseBool(v)
	}
}

// setInt overwrites *dst with the integer in the named variable and reports
// whether it did. Unparseable values are ignored.
func setInt(dst *int, env string) bool {
	v := os.Getenv(env)
	if v == "" {
		return false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return false
	}
	*dst = n
	return true
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
