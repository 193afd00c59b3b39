package scenario

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/rightsdesk/storage/badger"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	tracker, err := NewTracker(repos.Progress, WithLogger(nil))
	require.NoError(t, err)
	return tracker
}

func TestNewTrackerRequiresRepository(t *testing.T) {
	_, err := NewTracker(nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)
}

func TestTrackerPersists(t *testing.T) {
	ctx := context.Background()
	tracker := newTestTracker(t)

	fresh, err := tracker.Load(ctx, WorkplaceIssue)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.OverallProgress().Completed)

	_, err = tracker.Toggle(ctx, WorkplaceIssue, "document-incident")
	require.NoError(t, err)
	_, err = tracker.SetPhase(ctx, WorkplaceIssue, 1)
	require.NoError(t, err)

	loaded, err := tracker.Load(ctx, WorkplaceIssue)
	require.NoError(t, err)
	assert.True(t, loaded.IsCompleted("document-incident"))
	assert.Equal(t, 1, loaded.CurrentPhase())

	// Other guides are untouched.
	tenant, err := tracker.Load(ctx, TenantDispute)
	require.NoError(t, err)
	assert.Equal(t, 0, tenant.OverallProgress().Completed)
}

func TestTrackerUnknownNameUsesFallback(t *testing.T) {
	ctx := context.Background()
	tracker := newTestTracker(t)

	_, err := tracker.Toggle(ctx, "nope", "photo-evidence")
	require.NoError(t, err)

	loaded, err := tracker.Load(ctx, TenantDispute)
	require.NoError(t, err)
	assert.True(t, loaded.IsCompleted("photo-evidence"))
}

func TestTrackerRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	tracker := newTestTracker(t)

	_, err := tracker.Toggle(ctx, TenantDispute, "missing")
	assert.ErrorIs(t, err, ErrUnknownStep)

	_, err = tracker.SetPhase(ctx, TenantDispute, 7)
	assert.ErrorIs(t, err, ErrPhaseOutOfRange)

	loaded, err := tracker.Load(ctx, TenantDispute)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.CurrentPhase())
}

func TestTrackerConcurrentToggles(t *testing.T) {
	ctx := context.Background()
	tracker := newTestTracker(t)

	var steps []string
	for _, phase := range Lookup(TenantDispute).Phases {
		for _, step := range phase.Steps {
			steps = append(steps, step.Id)
		}
	}
	require.Greater(t, len(steps), 1)

	var wg sync.WaitGroup
	errs := make(chan error, len(steps)+1)
	for _, id := range steps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := tracker.Toggle(ctx, TenantDispute, id)
			errs <- err
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := tracker.SetPhase(ctx, TenantDispute, 1)
		errs <- err
	}()
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	loaded, err := tracker.Load(ctx, TenantDispute)
	require.NoError(t, err)
	for _, id := range steps {
		assert.True(t, loaded.IsCompleted(id), id)
	}
	assert.Equal(t, len(steps), loaded.OverallProgress().Completed)
	assert.Equal(t, 1, loaded.CurrentPhase())
}
