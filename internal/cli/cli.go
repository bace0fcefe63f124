// Package cli implements the followgraph command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/followgraph/internal/config"
	"github.com/matzehuels/followgraph/pkg/buildinfo"
	"github.com/matzehuels/followgraph/pkg/cache"
	"github.com/matzehuels/followgraph/pkg/errors"
	"github.com/matzehuels/followgraph/pkg/integrations/twitter"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "followgraph"

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

	configPath string
	out        io.Writer
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Followgraph crawls the follower graph around a set of accounts",
		Long: `Followgraph discovers the community around a few seed accounts and the
follow relationships inside it, appending every edge to a CSV file as it goes.
Interrupted crawls keep every edge written so far; later runs against the same
file only explore nodes it does not contain yet.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/followgraph/config.toml)")

	root.AddCommand(c.crawlCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())

	return root
}

// loadConfig reads the config selected by --config.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	return cfg, nil
}

// =============================================================================
// Factories
// =============================================================================

// newCache opens the response cache selected by cfg.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, "")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open redis cache")
		}
		return rc, nil
	default:
		fc, err := cache.NewFileCache(cfg.Cache.Dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable, continuing without cache", "err", err)
			return cache.NewNullCache(), nil
		}
		return fc, nil
	}
}

// newProvider builds the Twitter client from cfg.
func (c *CLI) newProvider(cfg *config.Config, store cache.Cache, refresh bool) (*twitter.Client, error) {
	if !cfg.HasCredentials() {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"no Twitter credentials: set %s, or consumer_key and consumer_secret in %s",
			config.EnvBearerToken, displayConfigPath(cfg))
	}
	return twitter.NewClient(twitter.Config{
		BaseURL:           cfg.Twitter.BaseURL,
		BearerToken:       cfg.Twitter.BearerToken,
		ConsumerKey:       cfg.Twitter.ConsumerKey,
		ConsumerSecret:    cfg.Twitter.ConsumerSecret,
		RequestsPerWindow: cfg.Twitter.RequestsPerWindow,
		Window:            cfg.Twitter.Window.Duration,
		CacheTTL:          cfg.Cache.TTL.Duration,
		Refresh:           refresh,
		MaxListSize:       cfg.Twitter.MaxListSize,
		Logger:            c.Logger,
	}, store)
}

// displayConfigPath names the config file in messages.
func displayConfigPath(cfg *config.Config) string {
	if cfg.Path != "" {
		return cfg.Path
	}
	if p, err := config.DefaultPath(); err == nil {
		return p
	}
	return "the config file"
}

// parseHandles splits arguments on commas and whitespace so that both
// "a b" and "a,b" name two seeds.
func parseHandles(args []string) []string {
	var out []string
	for _, arg := range args {
		for _, h := range strings.FieldsFunc(arg, func(r rune) bool { return r == ',' || r == ' ' }) {
			out = append(out, h)
		}
	}
	return out
}
