package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manualdesk/internal/models"
)

func newTestCatalog() CatalogRepo {
	ms := []models.Model{
		{ID: "exc", Name: "Excavator"},
		{ID: "ldr", Name: "Loader"},
	}
	manuals := []models.Manual{
		{ID: "sm", Title: "Service", MappedMachineIDs: []string{"exc"}},
		{ID: "pm", Title: "Parts", MappedMachineIDs: []string{"exc", "ldr"}},
	}
	pages := map[string]models.PageContent{
		"p1": {Title: "One", HTML: "<h1>One</h1><p>Torque &amp; tension</p>"},
	}
	return NewCatalogRepo(ms, manuals, pages)
}

func TestCatalog_DerivedManuals(t *testing.T) {
	snap := newTestCatalog().Snapshot()

	all := snap.ModelsWithManuals()
	require.Len(t, all, 2)
	assert.Len(t, all[0].Manuals, 2)
	require.Len(t, all[1].Manuals, 1)
	assert.Equal(t, "pm", all[1].Manuals[0].ID)

	_, err := snap.ModelWithManuals("ghost")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCatalog_MutationsReturnNewVersion(t *testing.T) {
	repo := newTestCatalog()
	ctx := context.Background()
	before := repo.Snapshot()

	snap, err := repo.AddManual(ctx, models.Manual{ID: "om", Title: "Operator", MappedMachineIDs: []string{"ldr"}})
	require.NoError(t, err)
	assert.Equal(t, before.Version+1, snap.Version)
	assert.Equal(t, "om", snap.Manuals[0].ID, "новое руководство идёт первым")

	ldr, err := snap.ModelWithManuals("ldr")
	require.NoError(t, err)
	assert.Len(t, ldr.Manuals, 2)

	// старый снимок не изменился
	assert.Len(t, before.Manuals, 2)
	assert.Same(t, snap, repo.Snapshot())
}

func TestCatalog_AddModel(t *testing.T) {
	repo := newTestCatalog()
	ctx := context.Background()

	snap, err := repo.AddModel(ctx, models.Model{ID: "drl", Name: "Drill"})
	require.NoError(t, err)
	assert.Equal(t, "drl", snap.Models[0].ID)

	_, err = repo.AddModel(ctx, models.Model{ID: "drl", Name: "Drill again"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCatalog_UpdateModelKeepsDerivedManuals(t *testing.T) {
	repo := newTestCatalog()
	ctx := context.Background()

	snap, err := repo.UpdateModel(ctx, models.Model{ID: "exc", Name: "Excavator 2"})
	require.NoError(t, err)
	m, err := snap.ModelWithManuals("exc")
	require.NoError(t, err)
	assert.Equal(t, "Excavator 2", m.Name)
	assert.Len(t, m.Manuals, 2)
	assert.Equal(t, 0, indexOfModel(snap, "exc"), "позиция сохраняется")

	_, err = repo.UpdateModel(ctx, models.Model{ID: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func indexOfModel(s *CatalogSnapshot, id string) int {
	for i, m := range s.Models {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func TestCatalog_AddManualValidatesMachines(t *testing.T) {
	repo := newTestCatalog()
	_, err := repo.AddManual(context.Background(), models.Manual{ID: "x", MappedMachineIDs: []string{"ghost"}})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.AddManual(context.Background(), models.Manual{ID: "sm"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, uint64(1), repo.Snapshot().Version)
}

func TestCatalog_PagesAndText(t *testing.T) {
	repo := newTestCatalog()
	p, ok := repo.Page("p1")
	require.True(t, ok)
	assert.Equal(t, "One", p.Title)

	text, ok := repo.PageText("p1")
	require.True(t, ok)
	assert.Equal(t, "One Torque & tension", text)

	_, ok = repo.Page("missing")
	assert.False(t, ok)
}
