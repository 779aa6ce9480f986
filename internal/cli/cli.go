package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/teasort/pkg/bench"
	"github.com/matzehuels/teasort/pkg/buildinfo"
	"github.com/matzehuels/teasort/pkg/cache"
	"github.com/matzehuels/teasort/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "teasort"

// An unreachable Redis falls back to the file cache within this budget.
const (
	redisConnectTimeout = 2 * time.Second
	redisRetryDelay     = 200 * time.Millisecond
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

	stderr     io.Writer
	configPath string
	logFile    string
	closers    []io.Closer
}

// New creates a new CLI instance with a default logger and configuration.
// The configuration is replaced by the config file when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
		stderr: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Close releases the log file, if one was opened.
func (c *CLI) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "teasort sorts by linearizing a random hint graph",
		Long: `teasort sorts a sequence by sampling a random digraph of "larger before smaller"
hints, linearizing it with a depth-first traversal and repairing what is left
with an insertion pass. It reports the cost of every sort and benchmarks how
that cost grows with the input size.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/teasort/config.toml)")
	root.PersistentFlags().StringVar(&c.logFile, "log-file", "", "also write logs to this file, rotated by size")

	root.AddCommand(c.sortCommand())
	root.AddCommand(c.benchCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file, opens the log file and attaches the logger
// to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	if c.logFile != "" {
		c.Config.Log.File = c.logFile
	}
	if c.Config.Log.File != "" {
		w := newRotatingWriter(c.Config.Log)
		c.closers = append(c.closers, w)
		c.Logger.SetOutput(io.MultiWriter(c.stderr, w))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Backend Factories
// =============================================================================

// newRunner creates a benchmark runner for CLI use. Reports are persisted
// only when save is true.
func (c *CLI) newRunner(ctx context.Context, noCache, save bool) (*bench.Runner, func(), error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = ch.Close() }

	var saver bench.Saver
	if save {
		st, err := c.newStore(ctx)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		if st != nil {
			saver = st
			cleanup = func() {
				_ = ch.Close()
				_ = st.Close()
			}
		}
	}
	return bench.NewRunner(ch, saver, c.Logger), cleanup, nil
}

// newCache builds the configured cache backend wrapped with observability
// hooks. An unreachable Redis falls back to the file cache with a warning.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Backend == backendNone {
		return cache.NewInstrumented(cache.NewNullCache()), nil
	}

	if c.Config.Cache.Backend == backendRedis {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:           c.Config.Cache.RedisAddr,
			Password:       c.Config.Cache.RedisPassword,
			DB:             c.Config.Cache.RedisDB,
			DefaultTTL:     c.Config.Cache.TTL,
			ConnectTimeout: redisConnectTimeout,
			RetryDelay:     redisRetryDelay,
		})
		if err == nil {
			return cache.NewInstrumented(rc), nil
		}
		c.Logger.Warn("redis cache unavailable, using file cache", "addr", c.Config.Cache.RedisAddr, "err", err)
	}

	dir, err := cacheDir()
	if err != nil {
		return cache.NewInstrumented(cache.NewNullCache()), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.NewInstrumented(fc), nil
}

// newStore builds the configured report store. It returns nil, nil when
// the store backend is "none".
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	switch c.Config.Store.Backend {
	case backendNone:
		return nil, nil
	case backendMongo:
		return store.NewMongoStore(ctx, store.MongoOptions{
			URI:      c.Config.Store.MongoURI,
			Database: c.Config.Store.Database,
		})
	default:
		dir, err := store.DefaultDir()
		if err != nil {
			return nil, err
		}
		return store.NewFileStore(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/teasort/).
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
