package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manualdesk/internal/repository"
)

func TestSearchService(t *testing.T) {
	svc := NewSearchService(testCatalogRepo())
	ctx := context.Background()

	all, err := svc.Search(ctx, "exc-200", "", "hydraulic")
	require.NoError(t, err)
	var pages []string
	for _, r := range all {
		pages = append(pages, r.PageID)
	}
	assert.Equal(t, []string{"sm-pump", "om-daily"}, pages)

	scoped, err := svc.Search(ctx, "exc-200", "om", "hydraulic")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "om", scoped[0].ManualID)

	empty, err := svc.Search(ctx, "exc-200", "", "   ")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.Search(ctx, "ghost", "", "x")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Search(ctx, "ldr-5", "sm", "x")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
