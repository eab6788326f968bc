package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hassetower/pkg/buildinfo"
	"github.com/matzehuels/hassetower/pkg/cache"
	errs "github.com/matzehuels/hassetower/pkg/errors"
	"github.com/matzehuels/hassetower/pkg/observability"
	"github.com/matzehuels/hassetower/pkg/pipeline"
	"github.com/matzehuels/hassetower/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "hasse"
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

	// Config holds defaults loaded from config files and the environment.
	// Commands read it after PersistentPreRunE has run.
	Config Config

	// configPath overrides the project config file (--config).
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "hasse",
		Short: "Hasse draws the dominance order of ranked entities",
		Long: `Hasse reads a table of rankings, counts how often each entity appears in
each column, and draws the Hasse diagram of the prefix-sum dominance order
between the resulting vectors. Output is Graphviz DOT, SVG, PNG or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = *cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			registerHooks(c.Logger)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "project config file (default .hasse.yaml)")

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.tiersCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// registerHooks routes pipeline and cache events to the debug log.
func registerHooks(logger *log.Logger) {
	h := &logHooks{logger: logger}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags are the cache selection flags shared by commands that render.
type cacheFlags struct {
	noCache  bool
	redisURL string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.redisURL, "redis-url", "", "cache rendered artifacts in redis (redis://host:port/db)")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, flags cacheFlags) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, flags)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version)
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

// newCache picks the cache backend. Flags win over config values.
func (c *CLI) newCache(ctx context.Context, flags cacheFlags) (cache.Cache, error) {
	if flags.noCache || c.Config.NoCache {
		return cache.NewNullCache(), nil
	}

	redisURL := flags.redisURL
	if redisURL == "" {
		redisURL = c.Config.RedisURL
	}
	if redisURL != "" {
		if err := errs.ValidateRedisURL(redisURL); err != nil {
			return nil, err
		}
		rc, err := cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeCacheFailed, err, "connect to redis")
		}
		return rc, nil
	}

	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, falling back to the XDG
// location.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.CacheDir != "" {
		return c.Config.CacheDir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/hasse/).
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

// parseFormats parses a comma-separated format string. An empty string
// yields nil so that config defaults apply.
func parseFormats(s string) ([]render.Format, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	formats, err := render.ParseFormats(strings.Split(s, ","))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "invalid --format")
	}
	return formats, nil
}
