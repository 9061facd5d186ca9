// Package render turns search outcomes into the Markdown returned to MCP clients.
package render

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/searchmcp/internal/domain/search/mode"
	"github.com/kailas-cloud/searchmcp/internal/domain/search/result"
)

// Headings for agent-produced answers.
const (
	IndexSearchHeading = "Azure AI Search Results"
	WebSearchHeading   = "Bing Web Search Results"
)

// Records renders ranked records as numbered sections separated by rules.
// An empty list yields a single sentence naming the mode.
func Records(m mode.Mode, results []result.Result) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for your query using %s.", m.Title())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s Results\n\n", m.Title())
	for i, r := range results {
		fmt.Fprintf(&b, "### %d. %s\n", i+1, r.Title())
		fmt.Fprintf(&b, "Score: %.2f\n\n", r.Score())
		b.WriteString(r.Content())
		b.WriteString("\n\n---\n\n")
	}
	return b.String()
}

// Agent places an agent answer, already Markdown, under a single heading.
func Agent(heading, body string) string {
	return fmt.Sprintf("## %s\n\n%s", heading, body)
}
