package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/rightsdesk/core"
	"github.com/poiesic/rightsdesk/storage"
)

// Library manages the user's saved items and premium template unlocks.
type Library struct {
	content storage.ContentRepository
	saved   storage.LibraryRepository
	unlocks storage.UnlockRepository
	gateway PaymentGateway
	logger  *slog.Logger
}

// SavedItems are the saved entries resolved against the catalog, in save order.
type SavedItems struct {
	Rights    []*core.RightsEntry   `json:"rights"`
	Templates []*core.TemplateEntry `json:"templates"`
}

// Download is an exported template ready to be written to disk.
type Download struct {
	Filename string
	Content  string
}

// Option configures a Library.
type Option func(*Library) error

// WithGateway sets the payment gateway.
// Default is ManualGateway.
func WithGateway(gateway PaymentGateway) Option {
	return func(l *Library) error {
		if gateway == nil {
			gateway = ManualGateway{}
		}
		l.gateway = gateway
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger.With("component", "library")
		return nil
	}
}

// NewLibrary creates a new library.
func NewLibrary(
	content storage.ContentRepository,
	saved storage.LibraryRepository,
	unlocks storage.UnlockRepository,
	opts ...Option,
) (*Library, error) {
	if content == nil || saved == nil || unlocks == nil {
		return nil, ErrRepositoryRequired
	}

	l := &Library{
		content: content,
		saved:   saved,
		unlocks: unlocks,
		gateway: ManualGateway{},
		logger:  slog.Default().With("component", "library"),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// SaveRights bookmarks a rights entry. Returns false if it was already saved.
func (l *Library) SaveRights(ctx context.Context, id core.ID) (bool, error) {
	entry, err := l.content.GetRights(ctx, id)
	if err != nil {
		return false, fmt.Errorf("rights entry %d: %w", id, err)
	}
	return l.saved.SaveItem(ctx, &core.SavedItem{Kind: core.KindRights, EntryId: id, Title: entry.Title})
}

// SaveTemplate bookmarks a template. Returns false if it was already saved.
func (l *Library) SaveTemplate(ctx context.Context, id core.ID) (bool, error) {
	entry, err := l.content.GetTemplate(ctx, id)
	if err != nil {
		return false, fmt.Errorf("template %d: %w", id, err)
	}
	return l.saved.SaveItem(ctx, &core.SavedItem{Kind: core.KindTemplate, EntryId: id, Title: entry.Title})
}

// Remove deletes a bookmark.
func (l *Library) Remove(ctx context.Context, kind core.Kind, id core.ID) error {
	if err := core.ValidateKind(kind); err != nil {
		return err
	}
	return l.saved.RemoveItem(ctx, kind, id)
}

// Saved returns the saved entries. Bookmarks whose entry has since been
// removed from the catalog are skipped.
func (l *Library) Saved(ctx context.Context) (*SavedItems, error) {
	result := &SavedItems{
		Rights:    []*core.RightsEntry{},
		Templates: []*core.TemplateEntry{},
	}

	rights, err := l.saved.ListSaved(ctx, core.KindRights)
	if err != nil {
		return nil, err
	}
	for _, item := range rights {
		entry, err := l.content.GetRights(ctx, item.EntryId)
		if errors.Is(err, storage.ErrNotFound) {
			l.logger.Warn("saved rights entry no longer in catalog", "id", item.EntryId, "title", item.Title)
			continue
		}
		if err != nil {
			return nil, err
		}
		result.Rights = append(result.Rights, entry)
	}

	templates, err := l.saved.ListSaved(ctx, core.KindTemplate)
	if err != nil {
		return nil, err
	}
	for _, item := range templates {
		entry, err := l.content.GetTemplate(ctx, item.EntryId)
		if errors.Is(err, storage.ErrNotFound) {
			l.logger.Warn("saved template no longer in catalog", "id", item.EntryId, "title", item.Title)
			continue
		}
		if err != nil {
			return nil, err
		}
		result.Templates = append(result.Templates, entry)
	}

	return result, nil
}

// IsUnlocked reports whether a template's body may be exported.
// Templates that are not gated are always unlocked.
func (l *Library) IsUnlocked(ctx context.Context, templateID core.ID) (bool, error) {
	tmpl, err := l.content.GetTemplate(ctx, templateID)
	if err != nil {
		return false, fmt.Errorf("template %d: %w", templateID, err)
	}
	return l.IsTemplateUnlocked(ctx, tmpl)
}

// IsTemplateUnlocked is IsUnlocked for a template already loaded from the
// content repository. Only the unlock store is consulted.
func (l *Library) IsTemplateUnlocked(ctx context.Context, tmpl *core.TemplateEntry) (bool, error) {
	if tmpl == nil {
		return false, storage.ErrNotFound
	}
	if !tmpl.Gated() {
		return true, nil
	}
	_, err := l.unlocks.GetUnlock(ctx, tmpl.Id)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Unlock pays for a premium template, records the receipt and saves the
// template. Unlocking an already unlocked template returns the existing
// receipt without charging again.
func (l *Library) Unlock(ctx context.Context, templateID core.ID, reference string) (*core.Unlock, error) {
	tmpl, err := l.content.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("template %d: %w", templateID, err)
	}
	if !tmpl.Gated() {
		return nil, ErrNotPremium
	}

	existing, err := l.unlocks.GetUnlock(ctx, templateID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	receipt, err := l.gateway.CreateSession(ctx, PaymentRequest{
		TemplateId: tmpl.Id,
		Title:      tmpl.Title,
		Amount:     tmpl.Price,
		Reference:  reference,
	})
	if err != nil {
		l.logger.Warn("payment failed", "template", tmpl.Id, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}

	unlock := &core.Unlock{
		Id:         core.IDFromContent(strconv.FormatUint(uint64(tmpl.Id), 10) + ":" + receipt.Reference),
		TemplateId: tmpl.Id,
		Reference:  receipt.Reference,
		Amount:     receipt.Amount,
		UnlockedAt: time.Now().UTC(),
	}
	if err := l.unlocks.RecordUnlock(ctx, unlock); err != nil {
		return nil, err
	}

	if _, err := l.saved.SaveItem(ctx, &core.SavedItem{Kind: core.KindTemplate, EntryId: tmpl.Id, Title: tmpl.Title}); err != nil {
		return nil, err
	}

	l.logger.Info("template unlocked", "template", tmpl.Id, "reference", unlock.Reference)
	return unlock, nil
}

var unsafeRun = regexp.MustCompile(`[\s/\\]+`)

// Filename returns the download name for a template title.
// The name never contains a path separator or starts with a dot.
func Filename(title string) string {
	name := filepath.Base(unsafeRun.ReplaceAllString(title, "_"))
	name = strings.TrimLeft(name, ".")
	if name == "" {
		name = "template"
	}
	return name + ".txt"
}

// Export returns a template's body as a download.
// Gated templates must be unlocked first.
func (l *Library) Export(ctx context.Context, templateID core.ID) (*Download, error) {
	tmpl, err := l.content.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("template %d: %w", templateID, err)
	}

	unlocked, err := l.IsTemplateUnlocked(ctx, tmpl)
	if err != nil {
		return nil, err
	}
	if !unlocked {
		return nil, ErrTemplateLocked
	}

	return &Download{
		Filename: Filename(tmpl.Title),
		Content:  tmpl.Body,
	}, nil
}
