package search

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/rightsdesk/core"
	"github.com/poiesic/rightsdesk/storage"
)

// Snapshot is the visible state of a Session.
type Snapshot struct {
	Query    string
	Results  []*core.SearchResult
	Advisory string
}

// Session holds the results and advisory of the most recent search, the way
// an interactive view does. Ranking happens synchronously in Submit; the
// advisory is fetched on a worker pool and written when it arrives.
//
// There is no request sequencing. An advisory that resolves after a newer
// Submit overwrites whatever advisory the session holds at that moment.
type Session struct {
	searcher *Searcher
	provider storage.ContentProvider
	pool     *ants.Pool
	wg       sync.WaitGroup
	logger   *slog.Logger

	mu    sync.Mutex
	state Snapshot
}

// SessionOption configures a Session.
type SessionOption func(*Session) error

// WithSessionPoolSize sets the advisory worker pool size. Default is 1.
func WithSessionPoolSize(size int) SessionOption {
	return func(s *Session) error {
		if size < 1 {
			size = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithSessionLogger sets a custom logger.
// Default is slog.Default().
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "search-session")
		return nil
	}
}

// NewSession creates a session searching the provider's collections.
func NewSession(searcher *Searcher, provider storage.ContentProvider, opts ...SessionOption) (*Session, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if provider == nil {
		return nil, ErrContentProviderRequired
	}

	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	s := &Session{
		searcher: searcher,
		provider: provider,
		pool:     pool,
		logger:   slog.Default().With("component", "search-session"),
	}

	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}

	return s, nil
}

// Submit ranks the current collections for query, replaces the session's
// results, clears the advisory and schedules the advisory request.
// Returns the new results. A blank query clears the results and schedules nothing.
func (s *Session) Submit(ctx context.Context, query string) ([]*core.SearchResult, error) {
	rights, err := s.provider.RightsEntries(ctx)
	if err != nil {
		return nil, err
	}
	templates, err := s.provider.TemplateEntries(ctx)
	if err != nil {
		return nil, err
	}

	results := Rank(query, rights, templates)

	s.mu.Lock()
	s.state = Snapshot{Query: query, Results: results}
	s.mu.Unlock()

	if normalizeQuery(query) == "" || !s.searcher.HasAdvisor() {
		return results, nil
	}

	s.wg.Add(1)
	err = s.pool.Submit(func() {
		defer s.wg.Done()
		advisory := s.searcher.Advise(ctx, query)
		s.mu.Lock()
		s.state.Advisory = advisory
		s.mu.Unlock()
	})
	if err != nil {
		s.wg.Done()
		s.logger.Error("error scheduling advisory", "query", query, "err", err)
	}

	return results, nil
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Query:    s.state.Query,
		Results:  slices.Clone(s.state.Results),
		Advisory: s.state.Advisory,
	}
}

// Wait blocks until every scheduled advisory request has completed.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Release releases the worker pool.
// The session should not be used after calling Release.
func (s *Session) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}
