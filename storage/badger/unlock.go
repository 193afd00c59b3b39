package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/rightsdesk/core"
	"github.com/poiesic/rightsdesk/storage"
)

// UnlockRepository implements storage.UnlockRepository for BadgerDB.
type UnlockRepository struct {
	backend *Backend
}

var _ storage.UnlockRepository = (*UnlockRepository)(nil)

// NewUnlockRepository creates a new UnlockRepository.
func NewUnlockRepository(backend *Backend) *UnlockRepository {
	return &UnlockRepository{
		backend: backend,
	}
}

// Close releases resources. UnlockRepository has no resources to release.
func (r *UnlockRepository) Close() error {
	return nil
}

// RecordUnlock persists an unlock keyed by its template.
func (r *UnlockRepository) RecordUnlock(ctx context.Context, unlock *core.Unlock) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if unlock.UnlockedAt.IsZero() {
			unlock.UnlockedAt = time.Now().UTC()
		}
		if err := writeValue(tx, core.UnlockMUS, makeUnlockKey(unlock.TemplateId), unlock); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetUnlock retrieves the unlock for a template.
func (r *UnlockRepository) GetUnlock(ctx context.Context, templateID core.ID) (*core.Unlock, error) {
	var result *core.Unlock
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readValue(tx, core.UnlockMUS, makeUnlockKey(templateID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListUnlocks returns all unlocks ordered by template ID.
func (r *UnlockRepository) ListUnlocks(ctx context.Context) ([]*core.Unlock, error) {
	var results []*core.Unlock
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		results, err = scanPrefix(tx, core.UnlockMUS, []byte(unlockPrefix))
		return err
	}, false)
	return results, err
}
