package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/rightsdesk/ai"
	"github.com/poiesic/rightsdesk/core"
	"github.com/poiesic/rightsdesk/storage"
)

// Outcome is the product of one search.
type Outcome struct {
	Query    string               `json:"query"`
	Results  []*core.SearchResult `json:"results"`
	Advisory string               `json:"advisory,omitempty"` // Empty when unavailable
}

// Searcher ranks catalog entries and optionally requests an advisory.
type Searcher struct {
	provider  storage.ContentProvider
	generator ai.TextGenerator
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "searcher")
		return nil
	}
}

// WithGenerator enables advisories. Without one, searches never produce an advisory.
func WithGenerator(generator ai.TextGenerator) Option {
	return func(s *Searcher) error {
		s.generator = generator
		return nil
	}
}

// WithContentProvider sets the source used by SearchCatalog.
func WithContentProvider(provider storage.ContentProvider) Option {
	return func(s *Searcher) error {
		s.provider = provider
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(opts ...Option) (*Searcher, error) {
	s := &Searcher{
		logger: slog.Default().With("component", "searcher"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// HasAdvisor reports whether searches will request an advisory.
func (s *Searcher) HasAdvisor() bool {
	return s.generator != nil
}

// Search ranks both collections for query and then requests an advisory.
// It never fails: an advisory error leaves Outcome.Advisory empty.
func (s *Searcher) Search(ctx context.Context, query string, rights []*core.RightsEntry, templates []*core.TemplateEntry) *Outcome {
	return s.SearchWithMonitor(ctx, query, rights, templates, nil)
}

// SearchWithMonitor is Search with callbacks at each stage.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, rights []*core.RightsEntry, templates []*core.TemplateEntry, monitor SearchMonitor) *Outcome {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	outcome := &Outcome{
		Query:   query,
		Results: Rank(query, rights, templates),
	}
	for _, result := range outcome.Results {
		monitor.Matched(result)
	}
	monitor.AfterRanking(outcome.Results)

	if normalizeQuery(query) != "" {
		outcome.Advisory = s.advise(ctx, query, monitor)
	}

	monitor.Finish(outcome)
	return outcome
}

// SearchCatalog loads both collections from the content provider and searches them.
// Only a provider failure is returned as an error.
func (s *Searcher) SearchCatalog(ctx context.Context, query string) (*Outcome, error) {
	if s.provider == nil {
		return nil, ErrContentProviderRequired
	}

	rights, err := s.provider.RightsEntries(ctx)
	if err != nil {
		s.logger.Error("error loading rights entries", "err", err)
		return nil, err
	}
	templates, err := s.provider.TemplateEntries(ctx)
	if err != nil {
		s.logger.Error("error loading template entries", "err", err)
		return nil, err
	}

	return s.Search(ctx, query, rights, templates), nil
}

// Advise requests the advisory for query.
// Returns the empty string when no generator is configured, the query is
// blank or the request fails.
func (s *Searcher) Advise(ctx context.Context, query string) string {
	if normalizeQuery(query) == "" {
		return ""
	}
	return s.advise(ctx, query, &noopMonitor{})
}

func (s *Searcher) advise(ctx context.Context, query string, monitor SearchMonitor) string {
	if s.generator == nil {
		return ""
	}

	prompt := BuildAdvisoryPrompt(query)
	monitor.AdvisoryRequested(prompt)

	advisory, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("advisory unavailable", "query", query, "err", err)
		monitor.AdvisoryFailed(err)
		return ""
	}
	return advisory
}
