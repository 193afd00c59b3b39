package search

import (
	"fmt"
	"strings"
)

const advisoryPromptFormat = `A user is searching for legal rights information with the query: "%s". Based on this query, provide:
1. A brief explanation of the legal area this relates to
2. Key rights the user should know about
3. Immediate steps they should consider taking
4. Important disclaimers about seeking professional legal advice

Keep the response concise (under 200 words) and educational. Always include a disclaimer that this is not legal advice.`

// BuildAdvisoryPrompt builds the advisory request for a query.
// The query is used as entered apart from trimming surrounding whitespace.
func BuildAdvisoryPrompt(query string) string {
	return fmt.Sprintf(advisoryPromptFormat, strings.TrimSpace(query))
}
