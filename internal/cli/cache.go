package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/followgraph/internal/config"
	"github.com/matzehuels/followgraph/pkg/cache"
	"github.com/matzehuels/followgraph/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the API response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached API responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == config.CacheNone {
				printInfo("Cache is disabled")
				return nil
			}

			store, err := c.newCache(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			defer store.Close()

			spinner := newSpinnerWithContext(cmd.Context(), "Clearing cache...")
			spinner.Start()
			err = clearCache(cmd.Context(), store)
			if err != nil {
				spinner.StopWithError("Could not clear cache")
				return err
			}
			spinner.StopWithSuccess("Cache cleared")
			printDetail("Location: %s", cacheLocation(cfg))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached responses are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, cacheLocation(cfg))
			return nil
		},
	}
}

// clearCache empties store if its backend supports it.
func clearCache(ctx context.Context, store cache.Cache) error {
	cl, ok := store.(cache.Clearer)
	if !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "cache backend %T cannot be cleared", store)
	}
	return cl.Clear(ctx)
}

// cacheLocation describes the configured cache backend: a directory for the
// file backend, a URL with the password masked for redis.
func cacheLocation(cfg *config.Config) string {
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return "(disabled)"
	case config.CacheRedis:
		return cfg.Redacted().Cache.RedisURL
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return "(unavailable)"
	}
	return dir
}
