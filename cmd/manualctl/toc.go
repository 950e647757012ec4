package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"manualdesk/internal/models"
	"manualdesk/internal/toc"
)

func newTocCmd(opts *cliOptions) *cobra.Command {
	var manualID, filter string
	cmd := &cobra.Command{
		Use:   "toc",
		Short: "Print the table of contents of a manual",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadCatalog(opts)
			if err != nil {
				return err
			}
			nodes, err := c.catalog.ManualTOC(context.Background(), manualID, filter)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), nodes)
			}
			printTree(cmd.OutOrStdout(), nodes)
			return nil
		},
	}
	cmd.Flags().StringVar(&manualID, "manual", "", "manual id")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "keep nodes whose title (or a descendant's) matches")
	_ = cmd.MarkFlagRequired("manual")
	return cmd
}

func printTree(w io.Writer, nodes []models.TocNode) {
	toc.Walk(nodes, func(n *models.TocNode, depth int) bool {
		fmt.Fprintf(w, "%s%s  (%s)\n", strings.Repeat("  ", depth), n.Title, n.PageID)
		return true
	})
}
