// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rightsdesk wires storage, search, the saved-item library and
// scenario checklists into one handle.
package rightsdesk

import (
	"context"
	"log/slog"

	"github.com/poiesic/rightsdesk/ai"
	"github.com/poiesic/rightsdesk/ai/openai"
	"github.com/poiesic/rightsdesk/catalog"
	"github.com/poiesic/rightsdesk/library"
	"github.com/poiesic/rightsdesk/scenario"
	"github.com/poiesic/rightsdesk/search"
	"github.com/poiesic/rightsdesk/storage"
	"github.com/poiesic/rightsdesk/storage/badger"
)

// Desk owns the database and the optional AI provider, and creates the
// components that use them.
type Desk struct {
	repos    *badger.Repositories
	provider ai.AIProvider
	logger   *slog.Logger
}

// DeskOption configures a Desk.
type DeskOption func(*deskOptions)

type deskOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	advisor  bool
	inMemory bool
	logger   *slog.Logger
}

// WithAIConfig sets the configuration of the OpenAI-compatible advisor.
func WithAIConfig(cfg *ai.Config) DeskOption {
	return func(o *deskOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider uses an existing AI provider instead of creating one.
// The desk takes ownership and closes it.
func WithProvider(provider ai.AIProvider) DeskOption {
	return func(o *deskOptions) {
		o.provider = provider
	}
}

// WithoutAdvisor disables the AI advisory. Searches still rank results.
func WithoutAdvisor() DeskOption {
	return func(o *deskOptions) {
		o.advisor = false
	}
}

// InMemory keeps all data in memory. The path passed to NewDesk is ignored.
func InMemory() DeskOption {
	return func(o *deskOptions) {
		o.inMemory = true
	}
}

// WithLogger sets the logger handed to every component the desk creates.
func WithLogger(logger *slog.Logger) DeskOption {
	return func(o *deskOptions) {
		o.logger = logger
	}
}

// NewDesk opens the database at filePath.
func NewDesk(filePath string, opts ...DeskOption) (*Desk, error) {
	options := &deskOptions{
		aiConfig: ai.DefaultConfig(),
		advisor:  true,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	repos, err := badger.OpenRepositories(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	switch {
	case !options.advisor:
		if provider != nil {
			provider.Close()
			provider = nil
		}
	case provider == nil:
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repos.Close()
			return nil, err
		}
	}

	return &Desk{
		repos:    repos,
		provider: provider,
		logger:   options.logger,
	}, nil
}

// Close shuts down the AI provider and then the storage.
// Components created by the desk must not be used afterwards.
func (d *Desk) Close() error {
	// Close AI provider first
	if d.provider != nil {
		if err := d.provider.Close(); err != nil {
			d.logger.Error("error closing AI provider", "err", err)
		}
	}

	if err := d.repos.Close(); err != nil {
		d.logger.Error("error closing storage", "err", err)
		return err
	}
	return nil
}

// HasAdvisor reports whether searches request an AI advisory.
func (d *Desk) HasAdvisor() bool {
	return d.provider != nil
}

// ContentRepository returns the rights and template store.
func (d *Desk) ContentRepository() storage.ContentRepository {
	return d.repos.Content
}

// LibraryRepository returns the saved-items store.
func (d *Desk) LibraryRepository() storage.LibraryRepository {
	return d.repos.Library
}

// UnlockRepository returns the premium unlock store.
func (d *Desk) UnlockRepository() storage.UnlockRepository {
	return d.repos.Unlocks
}

// ProgressRepository returns the checklist progress store.
func (d *Desk) ProgressRepository() storage.ProgressRepository {
	return d.repos.Progress
}

// NewSearcher creates a searcher over the stored catalog. Caller options are
// applied after the desk's defaults.
func (d *Desk) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	base := []search.Option{
		search.WithLogger(d.logger),
		search.WithContentProvider(d.repos.Content),
	}
	if d.provider != nil {
		base = append(base, search.WithGenerator(d.provider.TextGenerator()))
	}
	return search.NewSearcher(append(base, opts...)...)
}

// NewSession creates an interactive search session. A nil searcher uses
// d.NewSearcher(). Caller must Release the session.
func (d *Desk) NewSession(searcher *search.Searcher, opts ...search.SessionOption) (*search.Session, error) {
	if searcher == nil {
		var err error
		searcher, err = d.NewSearcher()
		if err != nil {
			return nil, err
		}
	}
	base := []search.SessionOption{search.WithSessionLogger(d.logger)}
	return search.NewSession(searcher, d.repos.Content, append(base, opts...)...)
}

// NewLibrary creates a library over the desk's repositories.
func (d *Desk) NewLibrary(opts ...library.Option) (*library.Library, error) {
	base := []library.Option{library.WithLogger(d.logger)}
	return library.NewLibrary(d.repos.Content, d.repos.Library, d.repos.Unlocks, append(base, opts...)...)
}

// NewTracker creates a checklist tracker over the progress store.
func (d *Desk) NewTracker(opts ...scenario.Option) (*scenario.Tracker, error) {
	base := []scenario.Option{scenario.WithLogger(d.logger)}
	return scenario.NewTracker(d.repos.Progress, append(base, opts...)...)
}

// NewImporter creates a catalog importer writing to the content store.
func (d *Desk) NewImporter(opts ...catalog.Option) (*catalog.Importer, error) {
	base := []catalog.Option{catalog.WithLogger(d.logger)}
	return catalog.NewImporter(d.repos.Content, append(base, opts...)...)
}

// IsEmpty reports whether no rights or templates are stored.
func (d *Desk) IsEmpty(ctx context.Context) (bool, error) {
	rights, err := d.repos.Content.RightsEntries(ctx)
	if err != nil {
		return false, err
	}
	if len(rights) > 0 {
		return false, nil
	}
	templates, err := d.repos.Content.TemplateEntries(ctx)
	if err != nil {
		return false, err
	}
	return len(templates) == 0, nil
}

// EnsureSeeded imports the built-in catalog when the store is empty.
// Returns nil stats when nothing was imported.
func (d *Desk) EnsureSeeded(ctx context.Context) (*catalog.Stats, error) {
	empty, err := d.IsEmpty(ctx)
	if err != nil || !empty {
		return nil, err
	}
	importer, err := d.NewImporter()
	if err != nil {
		return nil, err
	}
	d.logger.Info("seeding built-in catalog")
	return importer.Import(ctx, catalog.Default())
}
