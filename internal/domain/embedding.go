package domain

import (
	"context"
	"fmt"
	"strings"
)

// Embedder turns query text into a vector for vector and hybrid search.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingResult carries the embedding vector and token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// InstructionEmbedder prefixes every query with the instruction the index
// documents were embedded with (instruction-tuned models).
type InstructionEmbedder struct {
	inner  Embedder
	prefix string
}

// NewInstructionEmbedder wraps inner. A blank instruction returns inner as is.
// The instruction and the query are joined by exactly one space.
func NewInstructionEmbedder(inner Embedder, instruction string) Embedder {
	instruction = strings.TrimRight(instruction, " \t\n")
	if strings.TrimSpace(instruction) == "" {
		return inner
	}
	return &InstructionEmbedder{inner: inner, prefix: instruction + " "}
}

// Embed embeds the prefixed query.
func (e *InstructionEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	result, err := e.inner.Embed(ctx, e.prefix+text)
	if err != nil {
		return EmbeddingResult{}, fmt.Errorf("instruction embed: %w", err)
	}
	return result, nil
}
