package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/rightsdesk/core"
	"github.com/poiesic/rightsdesk/storage"
)

// LibraryRepository implements storage.LibraryRepository for BadgerDB.
type LibraryRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.LibraryRepository = (*LibraryRepository)(nil)

// NewLibraryRepository creates a new LibraryRepository.
func NewLibraryRepository(backend *Backend) (*LibraryRepository, error) {
	seq, err := backend.GetSequence(savedItemSeq)
	if err != nil {
		return nil, err
	}

	return &LibraryRepository{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the save-order sequence.
func (r *LibraryRepository) Close() error {
	return r.seq.Release()
}

// SaveItem bookmarks an entry unless it is already saved.
func (r *LibraryRepository) SaveItem(ctx context.Context, item *core.SavedItem) (bool, error) {
	added := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		indexKey := makeSavedIndexKey(item.Kind, item.EntryId)
		if _, err := tx.Get(indexKey); err == nil {
			return nil
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		next, err := r.seq.Next()
		if err != nil {
			return err
		}
		if item.SavedAt.IsZero() {
			item.SavedAt = time.Now().UTC()
		}

		if err := writeValue(tx, core.SavedItemMUS, makeSavedKey(item.Kind, next), item); err != nil {
			return err
		}
		if err := tx.Set(indexKey, storage.MarshalID(core.ID(next))); err != nil {
			return err
		}
		added = true
		return tx.Commit()
	}, true)

	return added, err
}

// RemoveItem deletes a bookmark and its index entry.
func (r *LibraryRepository) RemoveItem(ctx context.Context, kind core.Kind, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		indexKey := makeSavedIndexKey(kind, id)
		item, err := tx.Get(indexKey)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var seq core.ID
		err = item.Value(func(val []byte) error {
			seq, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		if err := tx.Delete(makeSavedKey(kind, uint64(seq))); err != nil {
			return err
		}
		if err := tx.Delete(indexKey); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// IsSaved reports whether an entry is bookmarked.
func (r *LibraryRepository) IsSaved(ctx context.Context, kind core.Kind, id core.ID) (bool, error) {
	saved := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeSavedIndexKey(kind, id))
		if err == nil {
			saved = true
			return nil
		}
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	}, false)
	return saved, err
}

// ListSaved returns bookmarks of a kind in save order.
func (r *LibraryRepository) ListSaved(ctx context.Context, kind core.Kind) ([]*core.SavedItem, error) {
	var results []*core.SavedItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		results, err = scanPrefix(tx, core.SavedItemMUS, makePartialSavedKey(kind))
		return err
	}, false)
	return results, err
}
