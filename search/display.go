package search

import (
	"math"

	"github.com/poiesic/rightsdesk/core"
)

// Highest attainable score per kind.
const (
	MaxRightsScore   = TitleScore + TagScore + CategoryScore + SummaryScore + BodyScore
	MaxTemplateScore = TitleScore + CategoryScore + BodyScore
)

// Suggestions are example queries offered before the user types anything.
var Suggestions = []string{
	"My landlord won't fix the heating",
	"Workplace harassment by supervisor",
	"Denied overtime pay at work",
	"Security deposit not returned",
	"Discrimination in hiring process",
	"Unsafe working conditions",
	"Eviction notice received",
	"Consumer fraud complaint",
}

// MatchPercentage expresses a result's score as a percentage of the best
// score its kind can reach, rounded and capped at 100.
func MatchPercentage(result *core.SearchResult) int {
	if result == nil || result.RelevanceScore <= 0 {
		return 0
	}

	best := MaxRightsScore
	if result.Kind == core.KindTemplate {
		best = MaxTemplateScore
	}

	pct := int(math.Round(float64(result.RelevanceScore) * 100 / float64(best)))
	return min(pct, 100)
}
