package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"manualdesk/internal/search"
)

func newSearchCmd(opts *cliOptions) *cobra.Command {
	var machineID, manualID, query string
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Full-text search across the manuals of a machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadCatalog(opts)
			if err != nil {
				return err
			}
			results, err := c.search.Search(context.Background(), machineID, manualID, query)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), results)
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No results found.")
				return nil
			}
			for _, r := range results {
				fmt.Fprintf(out, "%s > %s [%s]\n    %s\n", r.ManualTitle, r.TocItemTitle, r.PageID, search.PlainText(r.Snippet))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&machineID, "machine", "m", "", "machine id")
	cmd.Flags().StringVarP(&query, "query", "q", "", "text to search for")
	cmd.Flags().StringVar(&manualID, "manual", "", "restrict to one manual")
	_ = cmd.MarkFlagRequired("machine")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}
