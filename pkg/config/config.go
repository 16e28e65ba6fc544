// Package config loads guidecard settings from a TOML file with environment
// overrides.
//
// Lookup order, later wins:
//
//  1. built-in defaults
//  2. $XDG_CONFIG_HOME/guidecard/config.toml (or the path given explicitly)
//  3. GUIDECARD_OUTPUT_DIR, GUIDECARD_ADDR, GUIDECARD_EMOJI_FONT
//
// A missing default file is not an error; a missing explicit file is.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/guidecard/pkg/errors"
	"github.com/matzehuels/guidecard/pkg/fonts"
	"github.com/matzehuels/guidecard/pkg/layout"
)

const (
	appName  = "guidecard"
	fileName = "config.toml"
)

// Environment overrides.
const (
	EnvOutputDir = "GUIDECARD_OUTPUT_DIR"
	EnvAddr      = "GUIDECARD_ADDR"
	EnvEmojiFont = "GUIDECARD_EMOJI_FONT"
)

// Config is the full settings tree.
type Config struct {
	Canvas CanvasConfig `toml:"canvas"`
	Font   FontConfig   `toml:"font"`
	Style  StyleConfig  `toml:"style"`
	Export ExportConfig `toml:"export"`
	Server ServerConfig `toml:"server"`
}

// CanvasConfig is the card geometry in display px.
type CanvasConfig struct {
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
	Padding float64 `toml:"padding"`
}

// FontConfig selects the main text font and optional TTF files.
type FontConfig struct {
	Family    string            `toml:"family"`
	Size      int               `toml:"size"`
	Emoji     string            `toml:"emoji"`     // TTF with emoji glyphs
	Overrides map[string]string `toml:"overrides"` // family -> TTF path
}

// StyleConfig holds the styles enabled when a request names none.
type StyleConfig struct {
	Default []string `toml:"default"`
}

// ExportConfig controls where CLI downloads land.
type ExportConfig struct {
	OutputDir string `toml:"output_dir"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in settings.
func Default() Config {
	c := layout.DefaultCanvas
	return Config{
		Canvas: CanvasConfig{Width: c.Width, Height: c.Height, Padding: c.Padding},
		Font:   FontConfig{Family: fonts.DefaultFamily, Size: layout.DefaultFontSize},
		Style:  StyleConfig{Default: layout.NewState().Styles.Names()},
		Export: ExportConfig{OutputDir: "."},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns the XDG location of the config file.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads path, or the default location when path is empty, applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve config path")
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case err == nil:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	case os.IsNotExist(err) && !explicit:
		// defaults only
	default:
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Export.OutputDir = envOr(EnvOutputDir, c.Export.OutputDir)
	c.Server.Addr = envOr(EnvAddr, c.Server.Addr)
	c.Font.Emoji = envOr(EnvEmojiFont, c.Font.Emoji)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Validate checks every section. The font size is clamped rather than
// rejected.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas size must be positive, got %gx%g", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.Padding < 0 || 2*c.Canvas.Padding >= min(c.Canvas.Width, c.Canvas.Height) {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas padding %g does not fit a %gx%g card", c.Canvas.Padding, c.Canvas.Width, c.Canvas.Height)
	}
	if err := fonts.Validate(c.Font.Family); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "font.family")
	}
	for family := range c.Font.Overrides {
		if err := fonts.Validate(family); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "font.overrides")
		}
	}
	c.Font.Size = layout.ClampFontSize(c.Font.Size)
	if _, err := layout.ParseStyleList(c.Style.Default); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "style.default")
	}
	if c.Export.OutputDir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "export.output_dir cannot be empty")
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr cannot be empty")
	}
	return nil
}

// CanvasGeometry returns the canvas as a layout value.
func (c Config) CanvasGeometry() layout.Canvas {
	return layout.Canvas{Width: c.Canvas.Width, Height: c.Canvas.Height, Padding: c.Canvas.Padding}
}

// DefaultStyles returns the configured default selection.
func (c Config) DefaultStyles() layout.StyleSelection {
	sel, err := layout.ParseStyleList(c.Style.Default)
	if err != nil {
		return layout.NewState().Styles
	}
	return sel
}

// FontSet loads the configured TTF overrides and emoji font.
func (c Config) FontSet() (*fonts.Set, error) {
	set := fonts.NewSet()
	for family, path := range c.Font.Overrides {
		if err := set.Override(family, path); err != nil {
			return nil, err
		}
	}
	if c.Font.Emoji != "" {
		if err := set.SetEmoji(c.Font.Emoji); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// String renders the config as TOML.
func (c Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
