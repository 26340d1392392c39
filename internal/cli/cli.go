// Package cli implements the branchplot command-line interface.
//
// This package provides commands for generating the git workflow
// diagrams as PNG files, exporting them as Graphviz node-link views,
// previewing them over HTTP, and managing the render cache. The CLI
// is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Render all three workflow scenes to PNG files
//   - scenes: List the scenes and their output files
//   - export: Export a scene as DOT, SVG, or PNG via Graphviz
//   - serve: Preview the rendered scenes in a browser
//   - cache: Manage the render cache
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/branchplot/branchplot/pkg/buildinfo"
	"github.com/branchplot/branchplot/pkg/cache"
	"github.com/branchplot/branchplot/pkg/scene"
)

// appName is the application name used for directories and display.
const appName = "branchplot"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Branchplot renders git branch workflow diagrams",
		Long:         `Branchplot renders a fixed three-step story of git branch states (initial state, after a pull, after a merge) as deterministic PNG diagrams: circles for commits, lines for branches, arrows for merges.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.scenesCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadStory decodes the embedded narrative. Every command starts here.
func loadStory() (*scene.Story, error) {
	return scene.Load()
}

// newCache returns the render cache, or a null cache when caching is
// disabled or the cache directory cannot be resolved.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/branchplot/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
