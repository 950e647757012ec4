package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"manualdesk/internal/fixtures"
	"manualdesk/internal/models"
	"manualdesk/internal/repository"
	"manualdesk/internal/services"
)

type cliOptions struct {
	fixturesPath string
	jsonOutput   bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:   "manualctl",
		Short: "Inspect the equipment manual catalog from the command line",
		Long: `manualctl reads the same catalog the server serves (the embedded seed or a
FIXTURES_PATH file) and lets you list machines, search manuals and filter
tables of contents without starting the HTTP server.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.fixturesPath, "fixtures", "", "fixtures YAML file (default: embedded seed)")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output as JSON")

	root.AddCommand(newMachinesCmd(opts), newSearchCmd(opts), newTocCmd(opts))
	return root
}

type catalog struct {
	catalog *services.CatalogService
	search  *services.SearchService
}

// CLI только читает каталог: события и аудит никуда не пишутся.
type cliEvents struct{}

func (cliEvents) Track(context.Context, models.EventName, any) {}

type cliAudit struct{}

func (cliAudit) Record(context.Context, string, string, bool) {}

func loadCatalog(opts *cliOptions) (*catalog, error) {
	ds, err := fixtures.Load(opts.fixturesPath)
	if err != nil {
		return nil, err
	}
	repo := repository.NewCatalogRepo(ds.Models, ds.Manuals, ds.Pages)
	return &catalog{
		catalog: services.NewCatalogService(repo, cliEvents{}, cliAudit{}),
		search:  services.NewSearchService(repo),
	}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
