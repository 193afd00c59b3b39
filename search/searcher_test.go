package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/poiesic/rightsdesk/ai/mock"
	"github.com/poiesic/rightsdesk/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureProvider serves fixed collections with optional failures.
type fixtureProvider struct {
	rights       []*core.RightsEntry
	templates    []*core.TemplateEntry
	rightsErr    error
	templatesErr error
}

func (p *fixtureProvider) RightsEntries(ctx context.Context) ([]*core.RightsEntry, error) {
	return p.rights, p.rightsErr
}

func (p *fixtureProvider) TemplateEntries(ctx context.Context) ([]*core.TemplateEntry, error) {
	return p.templates, p.templatesErr
}

// recordingMonitor records the order of monitor callbacks.
type recordingMonitor struct {
	mu     sync.Mutex
	events []string
	failed error
}

func (m *recordingMonitor) add(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *recordingMonitor) Start(_ string)                      { m.add("start") }
func (m *recordingMonitor) Matched(_ *core.SearchResult)        { m.add("matched") }
func (m *recordingMonitor) AfterRanking(_ []*core.SearchResult) { m.add("ranked") }
func (m *recordingMonitor) AdvisoryRequested(_ string)          { m.add("advisory") }
func (m *recordingMonitor) AdvisoryFailed(err error)            { m.failed = err; m.add("failed") }
func (m *recordingMonitor) Finish(_ *Outcome)                   { m.add("finish") }

func TestNewSearcher_Defaults(t *testing.T) {
	searcher, err := NewSearcher()
	require.NoError(t, err)
	assert.False(t, searcher.HasAdvisor())

	searcher, err = NewSearcher(WithLogger(nil), WithGenerator(mock.NewMockGenerator()))
	require.NoError(t, err)
	assert.True(t, searcher.HasAdvisor())
}

func TestSearch_WithAdvisory(t *testing.T) {
	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "Deposits are usually returned within 30 days. This is not legal advice.", nil
	}
	searcher, err := NewSearcher(WithGenerator(generator))
	require.NoError(t, err)

	outcome := searcher.Search(context.Background(), "security deposit", fixtureRights(), fixtureTemplates())

	require.Len(t, outcome.Results, 2)
	assert.Equal(t, "security deposit", outcome.Query)
	assert.Contains(t, outcome.Advisory, "not legal advice")
	assert.Equal(t, 1, generator.CallCount())
	assert.Equal(t, BuildAdvisoryPrompt("security deposit"), generator.Prompts()[0])
}

func TestSearch_EmptyQueryNoAdvisoryRequest(t *testing.T) {
	generator := mock.NewMockGenerator()
	searcher, err := NewSearcher(WithGenerator(generator))
	require.NoError(t, err)

	for _, query := range []string{"", "   "} {
		outcome := searcher.Search(context.Background(), query, fixtureRights(), fixtureTemplates())
		assert.Empty(t, outcome.Results)
		assert.Empty(t, outcome.Advisory)
	}
	assert.Equal(t, 0, generator.CallCount())
}

func TestSearch_AdvisoryRequestedWithoutMatches(t *testing.T) {
	generator := mock.NewMockGenerator()
	searcher, err := NewSearcher(WithGenerator(generator))
	require.NoError(t, err)

	outcome := searcher.Search(context.Background(), "maritime salvage", fixtureRights(), fixtureTemplates())
	assert.Empty(t, outcome.Results)
	assert.NotEmpty(t, outcome.Advisory)
	assert.Equal(t, 1, generator.CallCount())
}

func TestSearch_AdvisoryFailure(t *testing.T) {
	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("upstream unavailable")
	}
	searcher, err := NewSearcher(WithGenerator(generator), WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)

	outcome := searcher.Search(context.Background(), "security deposit", fixtureRights(), fixtureTemplates())

	require.Len(t, outcome.Results, 2)
	assert.Empty(t, outcome.Advisory)
	// Never retried
	assert.Equal(t, 1, generator.CallCount())
}

func TestSearch_WithoutGenerator(t *testing.T) {
	searcher, err := NewSearcher()
	require.NoError(t, err)

	outcome := searcher.Search(context.Background(), "housing", fixtureRights(), fixtureTemplates())
	assert.NotEmpty(t, outcome.Results)
	assert.Empty(t, outcome.Advisory)
}

func TestSearchWithMonitor(t *testing.T) {
	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("boom")
	}
	searcher, err := NewSearcher(WithGenerator(generator), WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	searcher.SearchWithMonitor(context.Background(), "security deposit", fixtureRights(), fixtureTemplates(), monitor)

	assert.Equal(t, []string{"start", "matched", "matched", "ranked", "advisory", "failed", "finish"}, monitor.events)
	assert.EqualError(t, monitor.failed, "boom")
}

func TestSearchCatalog(t *testing.T) {
	provider := &fixtureProvider{rights: fixtureRights(), templates: fixtureTemplates()}
	searcher, err := NewSearcher(WithContentProvider(provider))
	require.NoError(t, err)

	outcome, err := searcher.SearchCatalog(context.Background(), "heating")
	require.NoError(t, err)
	require.Len(t, outcome.Results, 1)
	assert.Equal(t, "Repair Request", outcome.Results[0].Title)
}

func TestSearchCatalog_Errors(t *testing.T) {
	searcher, err := NewSearcher()
	require.NoError(t, err)
	_, err = searcher.SearchCatalog(context.Background(), "x")
	assert.ErrorIs(t, err, ErrContentProviderRequired)

	providerErr := errors.New("db down")
	searcher, err = NewSearcher(
		WithContentProvider(&fixtureProvider{templatesErr: providerErr}),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
	require.NoError(t, err)
	_, err = searcher.SearchCatalog(context.Background(), "x")
	assert.ErrorIs(t, err, providerErr)
}

func TestAdvise(t *testing.T) {
	generator := mock.NewMockGenerator()
	searcher, err := NewSearcher(WithGenerator(generator))
	require.NoError(t, err)

	assert.Empty(t, searcher.Advise(context.Background(), " "))
	assert.Equal(t, 0, generator.CallCount())

	assert.NotEmpty(t, searcher.Advise(context.Background(), "eviction"))
	assert.Equal(t, 1, generator.CallCount())
}
