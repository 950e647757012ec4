package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manualdesk/internal/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMachinesTable(t *testing.T) {
	out, err := run(t, "machines", "--filter", "loader")
	require.NoError(t, err)
	assert.Contains(t, out, "Loader 250-Pro")
	assert.NotContains(t, out, "Excavator 5000X")
}

func TestMachinesJSON(t *testing.T) {
	out, err := run(t, "--json", "machines")
	require.NoError(t, err)

	var got []models.ModelWithManuals
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got)
	assert.Equal(t, "exc-5000", got[0].ID)
}

func TestSearch(t *testing.T) {
	out, err := run(t, "--json", "search", "--machine", "exc-5000", "--query", "hydraulic fluid")
	require.NoError(t, err)

	var got []models.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got)
	for _, r := range got {
		assert.Contains(t, r.Snippet, "<mark>")
	}
}

func TestSearchPlainStripsMarkup(t *testing.T) {
	out, err := run(t, "search", "-m", "exc-5000", "-q", "hydraulic fluid")
	require.NoError(t, err)
	assert.NotContains(t, out, "<mark>")
}

func TestSearchNoResults(t *testing.T) {
	out, err := run(t, "search", "-m", "exc-5000", "-q", "zzzz-nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchUnknownMachine(t *testing.T) {
	_, err := run(t, "search", "-m", "nope", "-q", "fluid")
	assert.Error(t, err)
}

func TestSearchRequiresQuery(t *testing.T) {
	_, err := run(t, "search", "-m", "exc-5000")
	assert.Error(t, err)
}

func TestTocFilter(t *testing.T) {
	out, err := run(t, "toc", "--manual", "sm-5000", "--filter", "air bleeding")
	require.NoError(t, err)
	assert.Contains(t, out, "toc-isuzu-air-bleed")
	assert.NotContains(t, out, "page-isuzu-fluid-supply-proc")
}
