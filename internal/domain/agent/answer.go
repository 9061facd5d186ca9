package agent

import (
	"fmt"
	"strings"
)

// Citation is a titled source URL attached to an answer.
type Citation struct {
	Title string
	URL   string
}

// Markdown renders the message: every text segment on its own line, then
// one "Citation: [title](url)" line per citation. A nil message renders empty.
func (m *Message) Markdown() string {
	if m == nil {
		return ""
	}
	var b strings.Builder
	for _, text := range m.Texts {
		b.WriteString(text)
		b.WriteString("\n")
	}
	for _, c := range m.Citations {
		fmt.Fprintf(&b, "\nCitation: [%s](%s)\n", c.Title, c.URL)
	}
	return b.String()
}
