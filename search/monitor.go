package search

import (
	"github.com/poiesic/rightsdesk/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	Matched(result *core.SearchResult)
	AfterRanking(results []*core.SearchResult)
	AdvisoryRequested(prompt string)
	AdvisoryFailed(err error)
	Finish(outcome *Outcome)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                      {}
func (n *noopMonitor) Matched(_ *core.SearchResult)        {}
func (n *noopMonitor) AfterRanking(_ []*core.SearchResult) {}
func (n *noopMonitor) AdvisoryRequested(_ string)          {}
func (n *noopMonitor) AdvisoryFailed(_ error)              {}
func (n *noopMonitor) Finish(_ *Outcome)                   {}
