package navigation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"manualdesk/internal/models"
	"manualdesk/internal/search"
)

type recordedEvent struct {
	name    models.EventName
	payload any
}

type recordingSink struct{ events []recordedEvent }

func (s *recordingSink) Track(name models.EventName, payload any) {
	s.events = append(s.events, recordedEvent{name, payload})
}

func (s *recordingSink) names() []models.EventName {
	out := make([]models.EventName, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.name)
	}
	return out
}

func (s *recordingSink) last() recordedEvent { return s.events[len(s.events)-1] }

func fixtureMachine() (models.ModelWithManuals, search.PageMap) {
	service := models.Manual{
		ID:    "sm",
		Title: "Service Manual",
		TOC: []models.TocNode{
			{ID: "s1", Title: "Introduction", PageID: "sm-intro"},
			{ID: "s2", Title: "Hydraulics", PageID: "sm-hyd", Children: []models.TocNode{
				{ID: "s3", Title: "Pump removal", PageID: "sm-pump"},
				{ID: "s4", Title: "Valve block", PageID: "sm-valve"},
			}},
		},
	}
	operator := models.Manual{
		ID:    "om",
		Title: "Operator Manual",
		TOC: []models.TocNode{
			{ID: "o1", Title: "Daily checks", PageID: "om-daily"},
		},
	}
	empty := models.Manual{ID: "empty", Title: "Empty"}
	pages := search.PageMap{
		"sm-intro": {Title: "Introduction", HTML: "<p>Welcome to the service manual.</p>", Kind: models.PageKindContent},
		"sm-hyd":   {Title: "Hydraulics", HTML: `<p>Hydraulic pump and <a data-link-page-id="sm-pump">pump removal</a>.</p>`, Kind: models.PageKindContent},
		"sm-pump":  {Title: "Pump removal", HTML: "<p>Drain hydraulic fluid, then remove the pump.</p>", Kind: models.PageKindProcedure},
		"om-daily": {Title: "Daily checks", HTML: "<p>Check hydraulic oil level.</p>", Kind: models.PageKindContent},
	}
	machine := models.ModelWithManuals{
		Model:   models.Model{ID: "exc", Name: "Excavator"},
		Manuals: []models.Manual{service, operator, empty},
	}
	return machine, pages
}

func newController(t *testing.T, opts Options) (*Controller, *recordingSink) {
	t.Helper()
	machine, pages := fixtureMachine()
	sink := &recordingSink{}
	c, err := New(machine, "", pages, sink, opts)
	require.NoError(t, err)
	return c, sink
}

func TestNew_OpensFirstManualOnFirstNode(t *testing.T) {
	c, sink := newController(t, Options{})

	v := c.View()
	assert.Equal(t, "sm", v.ManualID)
	require.NotNil(t, v.Node)
	assert.Equal(t, "s1", v.Node.ID)
	require.NotNil(t, v.Page)
	assert.Equal(t, "Introduction", v.Page.Title)
	assert.Equal(t, ModeBrowsing, v.Mode)
	assert.Equal(t, models.ScopePage, v.Scope)
	assert.True(t, v.SidebarOpen)

	require.Len(t, sink.events, 1)
	assert.Equal(t, models.ManualOpenPayload{MachineID: "exc", ManualID: "sm", ManualTitle: "Service Manual"}, sink.events[0].payload)
}

func TestNew_UnknownManual(t *testing.T) {
	machine, pages := fixtureMachine()
	_, err := New(machine, "nope", pages, nil, Options{})
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestSelectManual_EmptyTOCSelectsNothing(t *testing.T) {
	c, _ := newController(t, Options{})
	require.NoError(t, c.SelectManual("empty"))

	v := c.View()
	assert.Equal(t, "empty", v.ManualID)
	assert.Nil(t, v.Node)
	assert.Nil(t, v.Page)
	_, ok := c.CurrentPage()
	assert.False(t, ok)
}

func TestSelectTocNode_EmitsPageViewAfterStateUpdate(t *testing.T) {
	c, sink := newController(t, Options{})
	require.NoError(t, c.SelectTocNode("s3"))

	page, ok := c.CurrentPage()
	require.True(t, ok)
	assert.Equal(t, "sm-pump", page.ID)
	assert.Equal(t, models.PageKindProcedure, page.Kind)

	assert.Equal(t, models.EventPageView, sink.last().name)
	assert.Equal(t, models.PageViewPayload{
		MachineID: "exc", ManualID: "sm", PageID: "sm-pump", ChapterTitle: "Pump removal",
	}, sink.last().payload)

	v := c.View()
	require.NotNil(t, v.Hints)
	assert.True(t, v.Hints.Procedure)
	assert.True(t, v.SidebarOpen)
}

func TestSelectTocNode_NarrowViewportCollapsesSidebar(t *testing.T) {
	c, _ := newController(t, Options{NarrowViewport: true})
	assert.True(t, c.View().SidebarOpen)
	require.NoError(t, c.SelectTocNode("s2"))
	assert.False(t, c.View().SidebarOpen)
}

func TestSelectTocNode_MissingPageGetsPlaceholder(t *testing.T) {
	c, _ := newController(t, Options{})
	require.NoError(t, c.SelectTocNode("s4"))

	page, _ := c.CurrentPage()
	assert.True(t, page.Placeholder)
	assert.Equal(t, "Valve block", page.Title)
	assert.Equal(t, models.PageKindContent, page.Kind)
	assert.Equal(t, `<h1 class="text-2xl font-bold">Valve block</h1><p>Content for this section is not yet available.</p>`, page.HTML)
}

func TestNavigateToPage_MissingTargetLeavesStateUnchanged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c, sink := newController(t, Options{Logger: zap.New(core)})
	require.NoError(t, c.SelectTocNode("s2"))
	before := c.View()
	eventsBefore := len(sink.events)

	err := c.NavigateToPage("missing-id")

	assert.True(t, errors.Is(err, ErrTargetNotFound))
	assert.Equal(t, before, c.View())
	assert.Len(t, sink.events, eventsBefore)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "missing-id", logs.All()[0].ContextMap()["page_id"])
}

func TestNavigateToPage_OnlySearchesCurrentManual(t *testing.T) {
	c, _ := newController(t, Options{Logger: zap.NewNop()})
	assert.ErrorIs(t, c.NavigateToPage("om-daily"), ErrTargetNotFound)
}

func TestNavigateToPage_RoundTrip(t *testing.T) {
	c, _ := newController(t, Options{})
	require.NoError(t, c.SelectTocNode("s3"))
	viaNode, _ := c.CurrentPage()

	require.NoError(t, c.SelectTocNode("s1"))
	require.NoError(t, c.NavigateToPage("sm-pump"))
	viaPage, _ := c.CurrentPage()

	assert.Equal(t, viaNode, viaPage)
}

func TestNavigateToPage_FirstPreOrderNodeWins(t *testing.T) {
	machine := models.ModelWithManuals{
		Model: models.Model{ID: "m"},
		Manuals: []models.Manual{{ID: "x", TOC: []models.TocNode{
			{ID: "a", Title: "A", PageID: "root", Children: []models.TocNode{
				{ID: "b", Title: "Alias", PageID: "shared"},
			}},
			{ID: "c", Title: "Shared", PageID: "shared"},
		}}},
	}
	c, err := New(machine, "", search.PageMap{}, nil, Options{})
	require.NoError(t, err)
	require.NoError(t, c.NavigateToPage("shared"))
	assert.Equal(t, "b", c.View().Node.ID)
}

func TestNavigateToSearchResult_SwitchesManualAndResetsSearch(t *testing.T) {
	c, sink := newController(t, Options{})
	c.SetScope(models.ScopeAllManuals)
	c.Search("hydraulic")
	require.Equal(t, ModeSearchingScoped, c.Mode())

	results := c.View().Results
	require.NotEmpty(t, results)
	var target models.SearchResult
	for _, r := range results {
		if r.ManualID == "om" {
			target = r
		}
	}
	require.Equal(t, "om-daily", target.PageID)

	require.NoError(t, c.NavigateToSearchResult(target))

	v := c.View()
	assert.Equal(t, "om", v.ManualID)
	assert.Equal(t, "o1", v.Node.ID)
	assert.Equal(t, "", v.Query)
	assert.Equal(t, models.ScopePage, v.Scope)
	assert.Equal(t, ModeBrowsing, v.Mode)

	assert.Equal(t, models.EventSearchResultClick, sink.last().name)
	assert.Equal(t, models.SearchResultClickPayload{
		QueryText: "hydraulic", ClickedPageID: "om-daily", ClickedTocTitle: "Daily checks",
	}, sink.last().payload)
}

func TestNavigateToSearchResult_UnresolvableIsDropped(t *testing.T) {
	c, _ := newController(t, Options{Logger: zap.NewNop()})
	c.SetScope(models.ScopeManual)
	c.Search("pump")
	before := c.View()

	err := c.NavigateToSearchResult(models.SearchResult{ManualID: "ghost", PageID: "sm-pump"})
	assert.ErrorIs(t, err, ErrTargetNotFound)
	err = c.NavigateToSearchResult(models.SearchResult{ManualID: "sm", PageID: "ghost"})
	assert.ErrorIs(t, err, ErrTargetNotFound)

	assert.Equal(t, before, c.View())
}

func TestSearch_EmitsQueryEventOnlyForNonBlank(t *testing.T) {
	c, sink := newController(t, Options{})
	n := len(sink.events)

	c.Search("   ")
	assert.Len(t, sink.events, n)

	c.SetSearchAllManuals(true)
	c.Search("  pump ")
	require.Len(t, sink.events, n+1)
	assert.Equal(t, models.SearchQueryPayload{
		QueryText: "pump", SearchScope: models.ScopePage, IsSearchingAllManuals: true, MachineID: "exc",
	}, sink.last().payload)
}

func TestModeTransitions(t *testing.T) {
	c, _ := newController(t, Options{})

	c.Search("pump")
	assert.Equal(t, ModeBrowsing, c.Mode(), "охват page только подсвечивает страницу")

	c.SetScope(models.ScopeManual)
	assert.Equal(t, ModeSearchingScoped, c.Mode())

	c.SetScope(models.ScopeIndex)
	assert.Equal(t, ModeBrowsing, c.Mode())

	c.SetSearchAllManuals(true)
	assert.Equal(t, ModeBrowsing, c.Mode(), "флаг всех руководств не действует на охват index")

	c.SetScope(models.ScopePage)
	assert.Equal(t, ModeSearchingScoped, c.Mode())

	c.ClearQuery()
	assert.Equal(t, ModeBrowsing, c.Mode())
}

func TestView_ScopeDerivedData(t *testing.T) {
	c, _ := newController(t, Options{})
	require.NoError(t, c.SelectTocNode("s2"))

	c.Search("pump")
	v := c.View()
	assert.Contains(t, v.PageHTML, search.MarkOpen+"pump"+search.MarkClose)
	assert.Contains(t, v.PageHTML, `data-link-page-id="sm-pump"`)
	assert.Nil(t, v.Results)
	assert.False(t, v.TocExpanded)

	c.SetScope(models.ScopeIndex)
	v = c.View()
	assert.True(t, v.TocExpanded)
	require.Len(t, v.TOC, 1)
	assert.Equal(t, "Hydraulics", v.TOC[0].Title)
	require.Len(t, v.TOC[0].Children, 1)
	assert.Equal(t, "Pump removal", v.TOC[0].Children[0].Title)
	assert.NotContains(t, v.PageHTML, search.MarkOpen)

	c.SetScope(models.ScopeManual)
	v = c.View()
	require.Len(t, v.Results, 2)
	for _, r := range v.Results {
		assert.Equal(t, "sm", r.ManualID)
	}
}

func TestNew_MachineWithoutManuals(t *testing.T) {
	c, err := New(models.ModelWithManuals{Model: models.Model{ID: "bare"}}, "", search.PageMap{}, nil, Options{Logger: zap.NewNop()})
	require.NoError(t, err)
	_, ok := c.CurrentManual()
	assert.False(t, ok)
	assert.ErrorIs(t, c.NavigateToPage("x"), ErrTargetNotFound)
	assert.Equal(t, ModeBrowsing, c.View().Mode)
}
