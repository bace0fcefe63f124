package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/followgraph/internal/config"
	"github.com/matzehuels/followgraph/pkg/community"
	"github.com/matzehuels/followgraph/pkg/errors"
	"github.com/matzehuels/followgraph/pkg/explore"
)

// crawlOpts holds the flags of the crawl command.
type crawlOpts struct {
	output   string
	location string
	workers  int
	sync     bool
	seed     uint64
	noCache  bool
	refresh  bool
	maxList  int
}

// crawlCommand creates the crawl command.
func (c *CLI) crawlCommand() *cobra.Command {
	var opts crawlOpts

	cmd := &cobra.Command{
		Use:   "crawl <handle>...",
		Short: "Discover the community around seed accounts",
		Long: `Crawl discovers every account that follows or is followed by the seed
accounts, optionally keeps only those whose profile location matches --location,
and then records the follow relationships inside that community.

Edges are appended to the output CSV as they are found. Running the same
command again after an interruption skips accounts already in the file.`,
		Example: `  followgraph crawl jack
  followgraph crawl jack,biz --location berlin -o berlin.csv
  followgraph crawl jack --workers 4 --sync`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("output") {
				opts.output = cfg.Crawl.Output
			}
			if !flags.Changed("location") {
				opts.location = cfg.Crawl.Location
			}
			if !flags.Changed("workers") {
				opts.workers = cfg.Crawl.Workers
			}
			if !flags.Changed("sync") {
				opts.sync = cfg.Crawl.Sync
			}
			if flags.Changed("max-list") {
				cfg.Twitter.MaxListSize = opts.maxList
			}
			if opts.workers < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--workers must be at least 1")
			}
			return c.runCrawl(cmd.Context(), cfg, parseHandles(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "edge log to create or extend (default from config: community.csv)")
	cmd.Flags().StringVar(&opts.location, "location", "", "keep only accounts whose location contains this text")
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "concurrent account fetches")
	cmd.Flags().BoolVar(&opts.sync, "sync", false, "fsync the edge log after every write")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "shuffle seed for the edge pass (0: random)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the response cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached responses but store fresh ones")
	cmd.Flags().IntVar(&opts.maxList, "max-list", 0, "truncate follower and friend lists to this size (0: no limit)")

	return cmd
}

func (c *CLI) runCrawl(ctx context.Context, cfg *config.Config, handles []string, opts crawlOpts) error {
	prog := newProgress(c.Logger)
	stats, restore := installRunStats(c.Logger)
	defer restore()

	store, err := c.newCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	provider, err := c.newProvider(cfg, store, opts.refresh)
	if err != nil {
		return err
	}

	crawlOptions := community.Options{
		Explore: explore.Options{Workers: opts.workers, Logger: c.Logger},
		Sync:    opts.sync,
		Logger:  c.Logger,
		OnTransition: func(from, to community.State) {
			c.Logger.Debug("state", "from", from, "to", to)
		},
	}
	if opts.seed != 0 {
		crawlOptions.Rand = rand.New(rand.NewPCG(opts.seed, opts.seed))
	}

	report, err := community.New(provider, crawlOptions).Run(ctx, community.Request{
		SeedHandles:    handles,
		OutputPath:     opts.output,
		LocationFilter: opts.location,
	})
	if err != nil {
		return err
	}

	if report.Outcome == explore.Partial {
		prog.done("Crawl interrupted", "edges", report.Edges, "appended", report.Appended)
	} else {
		prog.done("Crawl finished", "edges", report.Edges, "appended", report.Appended)
	}
	printCrawlReport(report, stats, opts.output)
	return nil
}

// printCrawlReport prints the end-of-run summary.
func printCrawlReport(r *community.Report, s *runStats, output string) {
	fmt.Fprintln(uiOut)
	printTitle("Community crawl")
	printKeyValue("Run", r.RunID)
	printKeyValue("Seeds", fmt.Sprintf("%d", len(r.Seeds)))
	printKeyValue("Candidates", fmt.Sprintf("%d", r.Candidates))
	if r.Filtered != r.Candidates {
		printKeyValue("Filtered", fmt.Sprintf("%d", r.Filtered))
	}
	printKeyValue("Appended", fmt.Sprintf("%d", r.Appended))
	printKeyValue("Duration", r.Duration.Round(time.Second).String())
	printKeyValue("API", fmt.Sprintf("%d requests, %d cache hits, %d rate-limit waits",
		s.requests.Load(), s.cacheHits.Load(), s.rateLimited.Load()))
	if n := s.errors.Load(); n > 0 {
		printKeyValue("API errors", fmt.Sprintf("%d", n))
	}
	printStats(r.Community, r.Edges, r.Outcome.String())
	printFile(output)
	fmt.Fprintln(uiOut)
	if r.Outcome == explore.Partial {
		if r.EdgesPass == nil {
			printWarning("Crawl stopped before edge discovery started; rerun with a new output file to cover the whole community")
		} else {
			printWarning("Edge discovery stopped early; nodes already in %s are skipped by later runs against it", output)
		}
		return
	}
	printNextStep("Inspect", "followgraph stats "+output)
}
