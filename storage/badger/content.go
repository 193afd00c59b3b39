package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/rightsdesk/core"
	"github.com/poiesic/rightsdesk/storage"
)

// ContentRepository implements storage.ContentRepository for BadgerDB.
type ContentRepository struct {
	backend *Backend
}

var _ storage.ContentRepository = (*ContentRepository)(nil)

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(backend *Backend) (*ContentRepository, error) {
	return &ContentRepository{
		backend: backend,
	}, nil
}

// Close releases resources. ContentRepository has no resources to release.
func (r *ContentRepository) Close() error {
	return nil
}

// AddRights stores rights entries, replacing existing entries with the same ID.
func (r *ContentRepository) AddRights(ctx context.Context, entries ...*core.RightsEntry) ([]*core.RightsEntry, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if entry.Id == 0 {
				entry.Id = core.ContentID(core.KindRights, entry.Title)
			}
			if err := writeValue(tx, core.RightsEntryMUS, makeRightsKey(entry.Id), entry); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return entries, err
}

// AddTemplates stores template entries, replacing existing entries with the same ID.
func (r *ContentRepository) AddTemplates(ctx context.Context, entries ...*core.TemplateEntry) ([]*core.TemplateEntry, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if entry.Id == 0 {
				entry.Id = core.ContentID(core.KindTemplate, entry.Title)
			}
			if err := writeValue(tx, core.TemplateEntryMUS, makeTemplateKey(entry.Id), entry); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return entries, err
}

// GetRights retrieves a single rights entry by ID.
func (r *ContentRepository) GetRights(ctx context.Context, id core.ID) (*core.RightsEntry, error) {
	var result *core.RightsEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readValue(tx, core.RightsEntryMUS, makeRightsKey(id))
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

// GetTemplate retrieves a single template entry by ID.
func (r *ContentRepository) GetTemplate(ctx context.Context, id core.ID) (*core.TemplateEntry, error) {
	var result *core.TemplateEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readValue(tx, core.TemplateEntryMUS, makeTemplateKey(id))
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

// DeleteRights removes rights entries by their IDs.
func (r *ContentRepository) DeleteRights(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			if err := deleteExisting(tx, makeRightsKey(id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// DeleteTemplates removes template entries by their IDs.
func (r *ContentRepository) DeleteTemplates(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			if err := deleteExisting(tx, makeTemplateKey(id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// RightsEntries returns all rights entries ordered by ID.
func (r *ContentRepository) RightsEntries(ctx context.Context) ([]*core.RightsEntry, error) {
	var results []*core.RightsEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		results, err = scanPrefix(tx, core.RightsEntryMUS, []byte(rightsPrefix))
		return err
	}, false)
	return results, err
}

// TemplateEntries returns all template entries ordered by ID.
func (r *ContentRepository) TemplateEntries(ctx context.Context) ([]*core.TemplateEntry, error) {
	var results []*core.TemplateEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		results, err = scanPrefix(tx, core.TemplateEntryMUS, []byte(templatePrefix))
		return err
	}, false)
	return results, err
}

// deleteExisting removes key, returning storage.ErrNotFound if it is absent.
func deleteExisting(tx *badger.Txn, key []byte) error {
	if _, err := tx.Get(key); err != nil {
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
		}
		return err
	}
	return tx.Delete(key)
}
