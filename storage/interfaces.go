package storage

import (
	"context"

	"github.com/poiesic/rightsdesk/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Close releases resources held by the repository.
	// It does not close the shared backend.
	Close() error
}

// ContentProvider supplies the complete rights and template collections.
// Both collections are returned whole, in stable order; there is no pagination.
type ContentProvider interface {
	// RightsEntries returns every rights entry, ordered by ID ascending.
	RightsEntries(ctx context.Context) ([]*core.RightsEntry, error)

	// TemplateEntries returns every template entry, ordered by ID ascending.
	TemplateEntries(ctx context.Context) ([]*core.TemplateEntry, error)
}

// ContentRepository provides operations for managing the content catalog.
type ContentRepository interface {
	Repository
	ContentProvider

	// AddRights stores rights entries, replacing any entry with the same ID.
	// Entries with ID=0 receive a content-based ID derived from their title.
	// Returns the entries with IDs populated.
	AddRights(ctx context.Context, entries ...*core.RightsEntry) ([]*core.RightsEntry, error)

	// AddTemplates stores template entries, replacing any entry with the same ID.
	// Entries with ID=0 receive a content-based ID derived from their title.
	AddTemplates(ctx context.Context, entries ...*core.TemplateEntry) ([]*core.TemplateEntry, error)

	// GetRights retrieves a single rights entry.
	// Returns ErrNotFound if the entry doesn't exist.
	GetRights(ctx context.Context, id core.ID) (*core.RightsEntry, error)

	// GetTemplate retrieves a single template entry.
	// Returns ErrNotFound if the entry doesn't exist.
	GetTemplate(ctx context.Context, id core.ID) (*core.TemplateEntry, error)

	// DeleteRights removes rights entries by ID.
	// Returns ErrNotFound if any entry doesn't exist.
	DeleteRights(ctx context.Context, ids ...core.ID) error

	// DeleteTemplates removes template entries by ID.
	// Returns ErrNotFound if any entry doesn't exist.
	DeleteTemplates(ctx context.Context, ids ...core.ID) error
}

// LibraryRepository stores the user's saved items.
type LibraryRepository interface {
	Repository

	// SaveItem bookmarks an entry. Saving an already saved (Kind, EntryId)
	// pair is a no-op and returns false.
	SaveItem(ctx context.Context, item *core.SavedItem) (bool, error)

	// RemoveItem deletes a bookmark.
	// Returns ErrNotFound if the item isn't saved.
	RemoveItem(ctx context.Context, kind core.Kind, id core.ID) error

	// IsSaved reports whether an entry is bookmarked.
	IsSaved(ctx context.Context, kind core.Kind, id core.ID) (bool, error)

	// ListSaved returns the bookmarks of a kind in the order they were saved.
	ListSaved(ctx context.Context, kind core.Kind) ([]*core.SavedItem, error)
}

// UnlockRepository stores payment receipts for premium templates.
type UnlockRepository interface {
	Repository

	// RecordUnlock persists an unlock. A later unlock for the same template
	// replaces the earlier receipt.
	RecordUnlock(ctx context.Context, unlock *core.Unlock) error

	// GetUnlock retrieves the unlock for a template.
	// Returns ErrNotFound if the template was never unlocked.
	GetUnlock(ctx context.Context, templateID core.ID) (*core.Unlock, error)

	// ListUnlocks returns every unlock ordered by template ID.
	ListUnlocks(ctx context.Context) ([]*core.Unlock, error)
}

// ProgressRepository persists scenario checklist state.
type ProgressRepository interface {
	Repository

	// SaveProgress persists the checklist state for its scenario.
	SaveProgress(ctx context.Context, progress *core.ChecklistProgress) error

	// LoadProgress retrieves the state for a scenario.
	// Returns nil, nil if no progress was saved.
	LoadProgress(ctx context.Context, scenario string) (*core.ChecklistProgress, error)
}
