package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newMachinesCmd(opts *cliOptions) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "machines",
		Short: "List machines and their manuals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadCatalog(opts)
			if err != nil {
				return err
			}
			machines := c.catalog.Machines(context.Background(), filter)
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), machines)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tMODEL CODE\tMANUALS")
			for _, m := range machines {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", m.ID, m.Name, m.ModelCode, len(m.Manuals))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "filter by name, code, manufacturer, category or tag")
	return cmd
}
