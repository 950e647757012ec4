package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manualdesk/internal/models"
)

func fixtureManuals() ([]models.Manual, PageMap) {
	manuals := []models.Manual{
		{
			ID:    "m1",
			Title: "Service Manual",
			TOC: []models.TocNode{
				{ID: "t1", Title: "Hydraulics", PageID: "p1", Children: []models.TocNode{
					{ID: "t2", Title: "Hydraulic Pump", PageID: "p2"},
				}},
				{ID: "t3", Title: "Hydraulics again", PageID: "p1"},
				{ID: "t4", Title: "Missing", PageID: "nope"},
			},
		},
		{
			ID:    "m2",
			Title: "Operator Manual",
			TOC: []models.TocNode{
				{ID: "o1", Title: "Daily checks", PageID: "p3"},
			},
		},
	}
	pages := PageMap{
		"p1": {Title: "Hydraulics", HTML: "<p>The hydraulic system overview.</p>"},
		"p2": {Title: "Hydraulic Pump", HTML: "<p>Remove the pump. Hydraulic fluid will drain.</p>"},
		"p3": {Title: "Daily checks", HTML: "<p>Check hydraulic oil level before start.</p>"},
	}
	return manuals, pages
}

func TestSearch_SingleManualPreOrder(t *testing.T) {
	manuals, pages := fixtureManuals()
	got := Search(manuals[:1], pages, "hydraulic")

	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].PageID)
	assert.Equal(t, "Hydraulics", got[0].TocItemTitle)
	assert.Equal(t, "p2", got[1].PageID)
	assert.Equal(t, "Hydraulic Pump", got[1].TocItemTitle)
	for _, r := range got {
		assert.Equal(t, "m1", r.ManualID)
		assert.Equal(t, "Service Manual", r.ManualTitle)
		assert.Contains(t, r.Snippet, MarkOpen)
	}
}

func TestSearch_AllManualsKeepsManualOrder(t *testing.T) {
	manuals, pages := fixtureManuals()
	got := Search(manuals, pages, "HYDRAULIC")

	require.Len(t, got, 3)
	assert.Equal(t, "m1", got[0].ManualID)
	assert.Equal(t, "m1", got[1].ManualID)
	assert.Equal(t, "m2", got[2].ManualID)
	assert.Equal(t, "Operator Manual", got[2].ManualTitle)
}

func TestSearch_EmptyQueryAndNoMatches(t *testing.T) {
	manuals, pages := fixtureManuals()
	assert.Empty(t, Search(manuals, pages, ""))
	assert.Empty(t, Search(manuals, pages, "transmission"))
	assert.Empty(t, Search(manuals, nil, "hydraulic"))
}

func TestSearch_MatchesTextNotMarkup(t *testing.T) {
	manuals := []models.Manual{{ID: "m", Title: "M", TOC: []models.TocNode{{ID: "t", Title: "T", PageID: "p"}}}}
	pages := PageMap{"p": {HTML: `<p class="warning">Text</p>`}}
	assert.Empty(t, Search(manuals, pages, "warning"))
}

type textOnlyStore struct{ PageMap }

func (s textOnlyStore) PageText(id string) (string, bool) {
	if _, ok := s.PageMap[id]; !ok {
		return "", false
	}
	return "cached torque values", true
}

func TestSearch_UsesTextStoreWhenAvailable(t *testing.T) {
	manuals := []models.Manual{{ID: "m", Title: "M", TOC: []models.TocNode{{ID: "t", Title: "T", PageID: "p"}}}}
	store := textOnlyStore{PageMap{"p": {HTML: "<p>nothing here</p>"}}}
	got := Search(manuals, store, "torque")
	require.Len(t, got, 1)
	assert.Equal(t, "cached "+MarkOpen+"torque"+MarkClose+" values", got[0].Snippet)
}
