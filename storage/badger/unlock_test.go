package badger

import (
	"context"
	"testing"

	"github.com/poiesic/rightsdesk/core"
	"github.com/poiesic/rightsdesk/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnlockRepository_RecordAndGet(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()

	_, err := repos.Unlocks.GetUnlock(ctx, 3)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	unlock := &core.Unlock{Id: 99, TemplateId: 3, Reference: "tx-1", Amount: 4.99}
	require.NoError(t, repos.Unlocks.RecordUnlock(ctx, unlock))
	assert.False(t, unlock.UnlockedAt.IsZero())

	got, err := repos.Unlocks.GetUnlock(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "tx-1", got.Reference)
	assert.InDelta(t, 4.99, got.Amount, 1e-9)
}

func TestUnlockRepository_ReplaceAndList(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()

	require.NoError(t, repos.Unlocks.RecordUnlock(ctx, &core.Unlock{TemplateId: 8, Reference: "a"}))
	require.NoError(t, repos.Unlocks.RecordUnlock(ctx, &core.Unlock{TemplateId: 2, Reference: "b"}))
	require.NoError(t, repos.Unlocks.RecordUnlock(ctx, &core.Unlock{TemplateId: 8, Reference: "c"}))

	unlocks, err := repos.Unlocks.ListUnlocks(ctx)
	require.NoError(t, err)
	require.Len(t, unlocks, 2)
	assert.Equal(t, core.ID(2), unlocks[0].TemplateId)
	assert.Equal(t, "c", unlocks[1].Reference)
}
