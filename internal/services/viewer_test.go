package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"manualdesk/internal/models"
	"manualdesk/internal/navigation"
	"manualdesk/internal/repository"
)

func newViewerService(t *testing.T) (*ViewerService, *fakeTracker) {
	t.Helper()
	tr := &fakeTracker{}
	return NewViewerService(testCatalogRepo(), tr, time.Minute), tr
}

func TestViewer_OpenAndNavigate(t *testing.T) {
	svc, tr := newViewerService(t)

	st, err := svc.Open(context.Background(), OpenViewerRequest{MachineID: "exc-200"})
	require.NoError(t, err)
	require.NotEmpty(t, st.SessionID)
	assert.Equal(t, "sm", st.ManualID)
	require.NotNil(t, st.Page)
	assert.Equal(t, "sm-intro", st.Page.ID)
	assert.Equal(t, 1, svc.Len())

	st, err = svc.Apply(st.SessionID, func(c *navigation.Controller) error { return c.SelectTocNode("s3") })
	require.NoError(t, err)
	assert.Equal(t, "sm-pump", st.Page.ID)
	require.NotNil(t, st.Hints)
	assert.True(t, st.Hints.Procedure)

	st, err = svc.Apply(st.SessionID, func(c *navigation.Controller) error { return c.NavigateToPage("nowhere") })
	assert.ErrorIs(t, err, navigation.ErrTargetNotFound)
	assert.Equal(t, "sm-pump", st.Page.ID)

	assert.Equal(t, []models.EventName{models.EventManualOpen, models.EventPageView}, tr.names())
}

func TestViewer_OpenErrors(t *testing.T) {
	svc, _ := newViewerService(t)

	_, err := svc.Open(context.Background(), OpenViewerRequest{MachineID: "ghost"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Open(context.Background(), OpenViewerRequest{MachineID: "exc-200", ManualID: "ghost"})
	assert.ErrorIs(t, err, navigation.ErrTargetNotFound)
	assert.Zero(t, svc.Len())
}

func TestViewer_Search(t *testing.T) {
	svc, _ := newViewerService(t)
	st, err := svc.Open(context.Background(), OpenViewerRequest{MachineID: "exc-200"})
	require.NoError(t, err)

	st, err = svc.Search(st.SessionID, SearchRequest{Query: "hydraulic", Scope: models.ScopeManual, AllManuals: true})
	require.NoError(t, err)
	assert.Equal(t, navigation.ModeSearchingScoped, st.Mode)
	assert.Len(t, st.Results, 2)

	_, err = svc.Search(st.SessionID, SearchRequest{Query: "x", Scope: "galaxy"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Search("missing", SearchRequest{Query: "x", Scope: models.ScopePage})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestViewer_CloseAndEvict(t *testing.T) {
	svc, _ := newViewerService(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	a, err := svc.Open(context.Background(), OpenViewerRequest{MachineID: "exc-200"})
	require.NoError(t, err)
	b, err := svc.Open(context.Background(), OpenViewerRequest{MachineID: "ldr-5"})
	require.NoError(t, err)

	now = now.Add(50 * time.Second)
	_, err = svc.State(b.SessionID)
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	assert.Equal(t, 1, svc.Evict())
	_, err = svc.State(a.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, svc.Close(b.SessionID))
	assert.ErrorIs(t, svc.Close(b.SessionID), ErrSessionNotFound)
	assert.Zero(t, svc.Len())
}

func TestViewer_RunCleanerStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc, _ := newViewerService(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.RunCleaner(ctx, time.Millisecond) }()

	time.Sleep(5 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("cleaner did not stop")
	}
}
