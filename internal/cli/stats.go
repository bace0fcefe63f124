package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/followgraph/pkg/edgestore"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Summarize an edge log",
		Long: `Stats reads an edge log without modifying it and reports how many
accounts and distinct follow relationships it holds.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner := newSpinnerWithContext(cmd.Context(), "Reading "+args[0]+"...")
			spinner.Start()
			snap, err := edgestore.Read(args[0])
			spinner.Stop()
			if err != nil {
				return err
			}
			printSnapshot(snap)
			return nil
		},
	}
}

// printSnapshot prints the summary of an edge log.
func printSnapshot(s *edgestore.Snapshot) {
	printTitle(s.Path)
	printStats(s.Nodes.Len(), len(s.Edges), "")
	if s.Duplicates > 0 {
		printWarning("%d duplicate lines", s.Duplicates)
	}
	if len(s.Edges) == 0 {
		printInfo("No edges yet")
	}
}
