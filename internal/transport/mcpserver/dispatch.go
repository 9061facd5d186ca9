// Package mcpserver exposes the search and agent services as MCP tools.
package mcpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchmcp/internal/domain"
	"github.com/kailas-cloud/searchmcp/internal/logger"
	"github.com/kailas-cloud/searchmcp/internal/metrics"
)

// Tool call statuses reported to metrics and logs.
const (
	statusOK            = "ok"
	statusError         = "error"
	statusNotConfigured = "not_configured"
)

// Messages returned when a server started without its remote client.
const (
	SearchNotInitialized = "Error: Azure Search client is not initialized. Check server logs for details."
	AgentNotInitialized  = "Error: Azure AI Agent client is not initialized. Check server logs for details."
)

// QueryInput is the argument set of a tool taking only a query.
type QueryInput struct {
	Query string `json:"query" jsonschema:"The search query text"`
}

// TopQueryInput is the argument set of a tool taking a query and a result limit.
type TopQueryInput struct {
	Query string `json:"query" jsonschema:"The search query text"`
	Top   int    `json:"top,omitempty" jsonschema:"Maximum number of results to return (default: 5)"`
}

// dispatcher runs tool bodies and collapses every outcome into text content.
type dispatcher struct {
	logger *zap.Logger
}

// call runs fn unless the backing service is missing. Errors and panics become
// "Error performing <op>: <err>"; the result is never a protocol error.
func (d *dispatcher) call(
	ctx context.Context,
	tool, op string,
	configured bool,
	notConfigured string,
	fn func(ctx context.Context) (string, error),
) *mcp.CallToolResult {
	start := time.Now()
	ctx, log := logger.With(logger.ContextWithLogger(ctx, d.logger),
		zap.String("tool", tool), zap.String("call_id", uuid.NewString()))
	ctx, usage := domain.NewContextWithUsage(ctx)

	var text, status string
	if !configured {
		text, status = notConfigured, statusNotConfigured
	} else {
		out, err := safeRun(ctx, fn)
		if err != nil {
			log.Error("tool failed", zap.Error(err))
			text, status = fmt.Sprintf("Error performing %s: %v", op, err), statusError
		} else {
			text, status = out, statusOK
		}
	}

	metrics.ObserveToolCall(tool, status, start)
	fields := []zap.Field{
		zap.String("status", status),
		zap.Duration("latency", time.Since(start)),
		zap.Int("result_bytes", len(text)),
	}
	if usage.Requests > 0 {
		fields = append(fields,
			zap.Int("embedding_requests", usage.Requests),
			zap.Int("embedding_tokens", usage.TotalTokens),
		)
	}
	log.Info("tool_call", fields...)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func safeRun(ctx context.Context, fn func(ctx context.Context) (string, error)) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}
