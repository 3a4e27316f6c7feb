package main

import (
	"fmt"
	"text/tabwriter"

	"pizzagraph/pkg/utils"

	"github.com/spf13/cobra"
)

func newStatsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print triple, subject and predicate counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger()
			defer func() { _ = logger.Sync() }()

			store, _, err := opts.load(logger)
			if err != nil {
				return err
			}

			stats := store.Stats()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "source\t%s\n", stats.Source)
			fmt.Fprintf(tw, "triples\t%d\n", stats.Triples)
			fmt.Fprintf(tw, "subjects\t%d\n", stats.Subjects)
			fmt.Fprintf(tw, "predicates\t%d\n", stats.Predicates)
			fmt.Fprintf(tw, "loaded\t%s\n", utils.FormatRFC3339(stats.LoadedAt))
			return tw.Flush()
		},
	}
}
