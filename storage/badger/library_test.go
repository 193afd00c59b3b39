package badger

import (
	"context"
	"testing"

	"github.com/poiesic/rightsdesk/core"
	"github.com/poiesic/rightsdesk/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryRepository_SaveAndList(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()

	added, err := repos.Library.SaveItem(ctx, &core.SavedItem{Kind: core.KindRights, EntryId: 30, Title: "Thirty"})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repos.Library.SaveItem(ctx, &core.SavedItem{Kind: core.KindRights, EntryId: 4, Title: "Four"})
	require.NoError(t, err)
	assert.True(t, added)

	items, err := repos.Library.ListSaved(ctx, core.KindRights)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Save order, not ID order
	assert.Equal(t, core.ID(30), items[0].EntryId)
	assert.Equal(t, core.ID(4), items[1].EntryId)
	assert.False(t, items[0].SavedAt.IsZero())
}

func TestLibraryRepository_DuplicateIsNoop(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()

	item := &core.SavedItem{Kind: core.KindTemplate, EntryId: 7, Title: "Seven"}
	added, err := repos.Library.SaveItem(ctx, item)
	require.NoError(t, err)
	require.True(t, added)

	added, err = repos.Library.SaveItem(ctx, &core.SavedItem{Kind: core.KindTemplate, EntryId: 7, Title: "Renamed"})
	require.NoError(t, err)
	assert.False(t, added)

	items, err := repos.Library.ListSaved(ctx, core.KindTemplate)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Seven", items[0].Title)
}

func TestLibraryRepository_KindsAreSeparate(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()

	_, err := repos.Library.SaveItem(ctx, &core.SavedItem{Kind: core.KindRights, EntryId: 1})
	require.NoError(t, err)
	added, err := repos.Library.SaveItem(ctx, &core.SavedItem{Kind: core.KindTemplate, EntryId: 1})
	require.NoError(t, err)
	assert.True(t, added)

	saved, err := repos.Library.IsSaved(ctx, core.KindTemplate, 1)
	require.NoError(t, err)
	assert.True(t, saved)

	rights, err := repos.Library.ListSaved(ctx, core.KindRights)
	require.NoError(t, err)
	assert.Len(t, rights, 1)
}

func TestLibraryRepository_Remove(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()

	_, err := repos.Library.SaveItem(ctx, &core.SavedItem{Kind: core.KindRights, EntryId: 1})
	require.NoError(t, err)

	require.NoError(t, repos.Library.RemoveItem(ctx, core.KindRights, 1))

	saved, err := repos.Library.IsSaved(ctx, core.KindRights, 1)
	require.NoError(t, err)
	assert.False(t, saved)

	items, err := repos.Library.ListSaved(ctx, core.KindRights)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.ErrorIs(t, repos.Library.RemoveItem(ctx, core.KindRights, 1), storage.ErrNotFound)

	// Can be saved again after removal
	added, err := repos.Library.SaveItem(ctx, &core.SavedItem{Kind: core.KindRights, EntryId: 1})
	require.NoError(t, err)
	assert.True(t, added)
}
