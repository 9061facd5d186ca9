package result

// MaxContentLength is the rune limit applied to every result excerpt.
const MaxContentLength = 1000

// UnknownTitle is used when a document has no title.
const UnknownTitle = "Unknown"

// Result is a single search hit.
type Result struct {
	title   string
	content string
	score   float64
}

// New creates a search result. Content is truncated to MaxContentLength
// runes and an empty title becomes UnknownTitle.
func New(title, content string, score float64) Result {
	if title == "" {
		title = UnknownTitle
	}
	return Result{title: title, content: Truncate(content, MaxContentLength), score: score}
}

// Truncate cuts s to at most limit runes.
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

// Title returns the document title.
func (r *Result) Title() string { return r.title }

// Content returns the truncated document excerpt.
func (r *Result) Content() string { return r.content }

// Score returns the relevance score assigned by the remote ranker.
func (r *Result) Score() float64 { return r.score }
