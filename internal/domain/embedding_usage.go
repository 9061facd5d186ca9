package domain

import "context"

type embeddingUsageKey struct{}

// EmbeddingUsage counts the query embeddings one tool call paid for.
// A tool call runs on a single goroutine, so no locking.
type EmbeddingUsage struct {
	Requests    int
	TotalTokens int
}

// NewContextWithUsage returns a context carrying an empty collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *EmbeddingUsage) {
	u := &EmbeddingUsage{}
	return context.WithValue(ctx, embeddingUsageKey{}, u), u
}

// UsageFromContext returns the collector, or nil outside a tool call.
func UsageFromContext(ctx context.Context) *EmbeddingUsage {
	u, _ := ctx.Value(embeddingUsageKey{}).(*EmbeddingUsage)
	return u
}

// Record counts one embedding request. No-op on a nil collector.
func (u *EmbeddingUsage) Record(res EmbeddingResult) {
	if u == nil {
		return
	}
	u.Requests++
	u.TotalTokens += res.TotalTokens
}
