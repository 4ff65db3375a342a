package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/buildinfo"
	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tagcloud"

	// envRedis names the environment variable that supplies a default for
	// --redis.
	envRedis = "TAGCLOUD_REDIS"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands. The persistent flags of the root
// command are bound to its fields.
type CLI struct {
	Logger *log.Logger

	verbose    bool
	configPath string
	noCache    bool
	redisAddr  string
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
		Use:   appName,
		Short: "Tagcloud lays out word frequencies as circular tag clouds",
		Long: `Tagcloud counts the words of a document and places them on an Archimedean
spiral around the canvas center, largest first, so that no two words overlap.
Words are then pulled toward the center to make the cloud compact.

The cloud can be written as SVG, PNG, JPEG, GIF, BMP, TIFF, or as a JSON
layout for other renderers.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&c.configPath, "config", "", "options file (.toml, .yaml, .yml); flags override its values")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable caching")
	pf.StringVar(&c.redisAddr, "redis", os.Getenv(envRedis), "redis address or URL for a shared cache (env "+envRedis+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.wordsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the cache selected with
// --no-cache and --redis.
func (c *CLI) newRunner(ctx context.Context, opts ...pipeline.RunnerOption) (*pipeline.Runner, error) {
	cc, keyer, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, keyer, c.Logger, opts...), nil
}

// newCache picks the cache backend. Redis keys are prefixed so the instance
// can be shared with other applications.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	if c.noCache {
		return cache.NewNullCache(), nil, nil
	}
	if c.redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.redisAddr})
		if err != nil {
			return nil, nil, err
		}
		c.Logger.Debug("using redis cache", "addr", c.redisAddr)
		return rc, cache.NewKeyer(appName + ":"), nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, nil, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tagcloud/).
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

// parseList splits a comma-separated flag value, dropping blanks.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
