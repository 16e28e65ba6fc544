// Package cli implements the guidecard command-line interface.
//
// # Commands
//
//   - generate: compose a card and save it as PNG, or as GIF with the dynamic style
//   - preview: print the composed visual tree as JSON
//   - fonts: list the selectable font families
//   - serve: run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/guidecard/pkg/config"
	"github.com/matzehuels/guidecard/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "guidecard"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the file named by --config, or the default location.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath, "canvas", cfg.CanvasGeometry(), "styles", cfg.DefaultStyles().String())
	return cfg, nil
}

// newRunner creates a pipeline runner with the configured fonts.
func (c *CLI) newRunner(cfg config.Config) (*pipeline.Runner, error) {
	set, err := cfg.FontSet()
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(set, c.Logger), nil
}
