// Package cli implements the daygrid command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/travelboss/daygrid/pkg/buildinfo"
	"github.com/travelboss/daygrid/pkg/cache"
	"github.com/travelboss/daygrid/pkg/httputil"
	"github.com/travelboss/daygrid/pkg/ics"
	"github.com/travelboss/daygrid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "daygrid"

	// feedCacheTTL bounds how long raw ICS responses are reused.
	feedCacheTTL = time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config
}

// New creates a new CLI instance with a default logger and the user's
// config file (defaults if none exists).
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: LoadConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "daygrid",
		Short:        "Daygrid lays out overlapping calendar events in a day column",
		Long:         `Daygrid computes absolute positions (top, height, width, x-offset) for the events of one calendar day, resolving overlaps into side-by-side columns, and renders the result as JSON, SVG, or PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Results are cached in
// the user cache directory (or Redis if configured) unless noCache is set.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	resultCache, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(resultCache, nil, c.newFeedClient(noCache), c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Config != nil && c.Config.RedisURL != "" {
		return cache.NewRedisCache(ctx, c.Config.RedisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newFeedClient builds the ICS fetcher, with an on-disk HTTP cache unless
// noCache is set.
func (c *CLI) newFeedClient(noCache bool) *ics.Client {
	if noCache {
		return ics.NewClient(nil)
	}
	dir, err := cacheDir()
	if err != nil {
		return ics.NewClient(nil)
	}
	httpCache, err := httputil.NewCache(filepath.Join(dir, "feeds"), feedCacheTTL)
	if err != nil {
		return ics.NewClient(nil)
	}
	return ics.NewClient(httpCache)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/daygrid/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions builds pipeline options from the config file; command flags
// override these afterwards.
func (c *CLI) baseOptions() pipeline.Options {
	opts := pipeline.Options{}
	if c.Config != nil {
		c.Config.Apply(&opts)
	}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	opts.Logger = c.Logger
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
