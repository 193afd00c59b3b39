package catalog

import (
	"slices"
	"strings"

	"github.com/poiesic/rightsdesk/core"
)

// AllCategories selects every category in Browse.
const AllCategories = "all"

// Categories lists the rights categories offered for browsing.
var Categories = []string{"housing", "employment", "consumer", "family", "criminal"}

// Browse filters rights entries for the explorer view. An entry is kept when
// its category equals category (or category is empty or AllCategories) and
// text is a case-insensitive substring of its title, summary or any tag.
// Blank text matches everything. The input order is preserved.
func Browse(entries []*core.RightsEntry, category, text string) []*core.RightsEntry {
	needle := strings.ToLower(strings.TrimSpace(text))
	category = strings.ToLower(strings.TrimSpace(category))

	var out []*core.RightsEntry
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		if category != "" && category != AllCategories && !strings.EqualFold(entry.Category, category) {
			continue
		}
		if needle != "" && !browseMatch(entry, needle) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func browseMatch(entry *core.RightsEntry, needle string) bool {
	if strings.Contains(strings.ToLower(entry.Title), needle) ||
		strings.Contains(strings.ToLower(entry.Summary), needle) {
		return true
	}
	return slices.ContainsFunc(entry.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), needle)
	})
}
