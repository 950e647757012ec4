package toc

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manualdesk/internal/models"
)

func sampleTree() []models.TocNode {
	return []models.TocNode{
		{ID: "t1", Title: "Intro", PageID: "p1"},
		{ID: "t2", Title: "Engine", PageID: "p2", Children: []models.TocNode{
			{ID: "t3", Title: "Oil Change", PageID: "p3"},
			{ID: "t4", Title: "Belts", PageID: "p4"},
		}},
	}
}

func TestFilter_KeepsAncestorsOfMatches(t *testing.T) {
	got := Filter(sampleTree(), "oil")
	want := []models.TocNode{
		{ID: "t2", Title: "Engine", PageID: "p2", Children: []models.TocNode{
			{ID: "t3", Title: "Oil Change", PageID: "p3"},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Filter mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_MatchingParentLosesUnmatchedChildren(t *testing.T) {
	got := Filter(sampleTree(), "ENGINE")
	require.Len(t, got, 1)
	assert.Equal(t, "Engine", got[0].Title)
	assert.Empty(t, got[0].Children)
}

func TestFilter_NoMatches(t *testing.T) {
	got := Filter(sampleTree(), "hydraulic")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_EmptyQueryReturnsInput(t *testing.T) {
	tree := sampleTree()
	got := Filter(tree, "")
	if diff := cmp.Diff(tree, got); diff != "" {
		t.Fatalf("пустой запрос изменил дерево:\n%s", diff)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	tree := sampleTree()
	_ = Filter(tree, "oil")
	if diff := cmp.Diff(sampleTree(), tree); diff != "" {
		t.Fatalf("входное дерево изменилось:\n%s", diff)
	}
}

// Узел присутствует в результате тогда и только тогда, когда совпал сам
// или у него остался потомок.
func TestFilter_StructuralInvariant(t *testing.T) {
	tree := []models.TocNode{
		{ID: "a", Title: "Hydraulic system", PageID: "pa", Children: []models.TocNode{
			{ID: "b", Title: "Pump", PageID: "pb", Children: []models.TocNode{
				{ID: "c", Title: "Hydraulic pump seals", PageID: "pc"},
			}},
			{ID: "d", Title: "Valves", PageID: "pd"},
		}},
		{ID: "e", Title: "Cab", PageID: "pe"},
	}
	for _, q := range []string{"hydraulic", "pump", "seal", "cab", "zzz", "a"} {
		var check func(nodes []models.TocNode)
		check = func(nodes []models.TocNode) {
			for _, n := range nodes {
				matches := strings.Contains(strings.ToLower(n.Title), strings.ToLower(q))
				assert.Truef(t, matches || len(n.Children) > 0, "узел %s не должен был остаться для %q", n.ID, q)
				check(n.Children)
			}
		}
		check(Filter(tree, q))
	}
}

func TestFindByPageID_PreOrder(t *testing.T) {
	tree := []models.TocNode{
		{ID: "x", Title: "Parent", PageID: "shared", Children: []models.TocNode{
			{ID: "y", Title: "Child", PageID: "leaf"},
		}},
		{ID: "z", Title: "Alias", PageID: "shared"},
	}
	n, ok := FindByPageID(tree, "shared")
	require.True(t, ok)
	assert.Equal(t, "x", n.ID)

	n, ok = FindByPageID(tree, "leaf")
	require.True(t, ok)
	assert.Equal(t, "y", n.ID)

	_, ok = FindByPageID(tree, "missing-id")
	assert.False(t, ok)
}

func TestPageTitles_FirstSeenWins(t *testing.T) {
	tree := []models.TocNode{
		{ID: "1", Title: "Overview", PageID: "p1", Children: []models.TocNode{
			{ID: "2", Title: "Details", PageID: "p2"},
		}},
		{ID: "3", Title: "Overview again", PageID: "p1"},
		{ID: "4", Title: "Specs", PageID: "p3"},
	}
	got := PageTitles(tree)
	want := []PageRef{{"p1", "Overview"}, {"p2", "Details"}, {"p3", "Specs"}}
	assert.Equal(t, want, got)
}

func TestFirstAndCount(t *testing.T) {
	n, ok := First(sampleTree())
	require.True(t, ok)
	assert.Equal(t, "t1", n.ID)

	_, ok = First(nil)
	assert.False(t, ok)

	assert.Equal(t, 4, Count(sampleTree()))
}
