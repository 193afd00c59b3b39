package search

import (
	"slices"
	"strings"

	"github.com/poiesic/rightsdesk/core"
)

// Field weights.
const (
	TitleScore    = 10
	TagScore      = 7
	CategoryScore = 6
	SummaryScore  = 5
	BodyScore     = 2
)

// MaxResults is the number of results kept after ranking.
const MaxResults = 6

// normalizeQuery trims and lowercases a query. The empty string means "no search".
func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func contains(field, needle string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), needle)
}

func anyTagContains(tags []string, needle string) bool {
	return slices.ContainsFunc(tags, func(tag string) bool {
		return contains(tag, needle)
	})
}

// ScoreRights returns the relevance of a rights entry for query.
// Category adds to the score of an entry that already matched, but a category
// match alone does not include it.
func ScoreRights(query string, entry *core.RightsEntry) int {
	needle := normalizeQuery(query)
	if needle == "" || entry == nil {
		return 0
	}
	return scoreRights(needle, entry)
}

// ScoreTemplate returns the relevance of a template entry for query.
// Templates have no summary or tags to score.
func ScoreTemplate(query string, entry *core.TemplateEntry) int {
	needle := normalizeQuery(query)
	if needle == "" || entry == nil {
		return 0
	}
	return scoreTemplate(needle, entry)
}

func scoreRights(needle string, entry *core.RightsEntry) int {
	score := 0
	if contains(entry.Title, needle) {
		score += TitleScore
	}
	if anyTagContains(entry.Tags, needle) {
		score += TagScore
	}
	if contains(entry.Summary, needle) {
		score += SummaryScore
	}
	if contains(entry.DetailedContent, needle) {
		score += BodyScore
	}
	if score > 0 && contains(entry.Category, needle) {
		score += CategoryScore
	}
	return score
}

func scoreTemplate(needle string, entry *core.TemplateEntry) int {
	score := 0
	if contains(entry.Title, needle) {
		score += TitleScore
	}
	if contains(entry.Category, needle) {
		score += CategoryScore
	}
	if contains(entry.Body, needle) {
		score += BodyScore
	}
	return score
}

// Rank matches query against both collections and returns at most MaxResults
// results ordered by descending score. Rights entries precede templates among
// equal scores, and each collection keeps its own order.
// Returns nil for an empty or whitespace-only query.
func Rank(query string, rights []*core.RightsEntry, templates []*core.TemplateEntry) []*core.SearchResult {
	needle := normalizeQuery(query)
	if needle == "" {
		return nil
	}

	var results []*core.SearchResult
	for _, entry := range rights {
		if entry == nil {
			continue
		}
		if score := scoreRights(needle, entry); score > 0 {
			results = append(results, rightsResult(entry, score))
		}
	}
	for _, entry := range templates {
		if entry == nil {
			continue
		}
		if score := scoreTemplate(needle, entry); score > 0 {
			results = append(results, templateResult(entry, score))
		}
	}

	slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
		return b.RelevanceScore - a.RelevanceScore
	})

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

func rightsResult(entry *core.RightsEntry, score int) *core.SearchResult {
	return &core.SearchResult{
		Kind:           core.KindRights,
		Id:             entry.Id,
		Title:          entry.Title,
		Summary:        entry.Summary,
		Tags:           slices.Clone(entry.Tags),
		Body:           entry.DetailedContent,
		RelevanceScore: score,
		Rights:         entry,
	}
}

func templateResult(entry *core.TemplateEntry, score int) *core.SearchResult {
	return &core.SearchResult{
		Kind:           core.KindTemplate,
		Id:             entry.Id,
		Title:          entry.Title,
		Category:       entry.Category,
		Body:           entry.Body,
		RelevanceScore: score,
		Template:       entry,
	}
}
