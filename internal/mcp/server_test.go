package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manualdesk/internal/fixtures"
	"manualdesk/internal/models"
	"manualdesk/internal/navigation"
	"manualdesk/internal/repository"
	"manualdesk/internal/services"
)

type nopTracker struct{}

func (nopTracker) Track(context.Context, models.EventName, any) {}

type nopAudit struct{}

func (nopAudit) Record(context.Context, string, string, bool) {}

func seededServices(t *testing.T) (*services.CatalogService, *services.SearchService) {
	t.Helper()
	ds, err := fixtures.Seed()
	require.NoError(t, err)
	repo := repository.NewCatalogRepo(ds.Models, ds.Manuals, ds.Pages)
	return services.NewCatalogService(repo, nopTracker{}, nopAudit{}), services.NewSearchService(repo)
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func TestNewServer(t *testing.T) {
	catalog, search := seededServices(t)
	require.NotNil(t, NewServer(catalog, search))
}

func TestSearchManuals(t *testing.T) {
	_, search := seededServices(t)
	h := searchManualsHandler(search)

	res, err := h(context.Background(), mcp.CallToolRequest{}, SearchManualsRequest{MachineID: "exc-5000", Query: "hydraulic fluid"})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var results []models.SearchResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &results))
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Contains(t, r.Snippet, "<mark")
	}

	res, err = h(context.Background(), mcp.CallToolRequest{}, SearchManualsRequest{MachineID: "exc-5000"})
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h(context.Background(), mcp.CallToolRequest{}, SearchManualsRequest{MachineID: "ghost", Query: "x"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestGetPage(t *testing.T) {
	catalog, _ := seededServices(t)
	h := getPageHandler(catalog)

	res, err := h(context.Background(), mcp.CallToolRequest{}, GetPageRequest{PageID: "page-isuzu-fluid-supply-proc"})
	require.NoError(t, err)
	var page navigation.ResolvedPage
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &page))
	assert.Equal(t, models.PageKindProcedure, page.Kind)

	res, err = h(context.Background(), mcp.CallToolRequest{}, GetPageRequest{PageID: "nope"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestFilterToc(t *testing.T) {
	catalog, _ := seededServices(t)
	h := filterTocHandler(catalog)

	res, err := h(context.Background(), mcp.CallToolRequest{}, FilterTocRequest{ManualID: "sm-5000", Query: "air bleeding"})
	require.NoError(t, err)
	var nodes []models.TocNode
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &nodes))
	require.Len(t, nodes, 1)
	assert.Equal(t, "toc-isuzu-on-vehicle", nodes[0].ID)
	require.Len(t, nodes[0].Children, 1)
	assert.Equal(t, "toc-isuzu-air-bleed", nodes[0].Children[0].ID)

	res, err = h(context.Background(), mcp.CallToolRequest{}, FilterTocRequest{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
