package searchmcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/searchmcp/internal/domain"
)

type fakeCredential struct{}

func (fakeCredential) GetToken(context.Context, policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "tok"}, nil
}

type mockEmbedder struct {
	got string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (EmbeddingResult, error) {
	m.got = text
	return EmbeddingResult{Embedding: []float32{0.1, 0.2}, TotalTokens: 2}, nil
}

// fakeIndex serves three hits and records the last search body.
func fakeIndex(t *testing.T, body *map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/docs/search"):
			if body != nil {
				_ = json.NewDecoder(r.Body).Decode(body)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"value":[
				{"@search.score":3.1,"title":"A","chunk":"alpha"},
				{"@search.score":2.2,"title":"B","chunk":"beta"},
				{"@search.score":1.3,"title":"C","chunk":"gamma"}
			]}`))
		case strings.HasSuffix(r.URL.Path, "/docs/$count"):
			_, _ = w.Write([]byte(`3`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNew_NothingConfigured(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error when neither search nor agent is configured")
	}
}

func TestNew_AgentValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"no credential", WithAgentProject("h;s;rg;p", "gpt-4o", nil)},
		{"no model", WithAgentProject("h;s;rg;p", "", fakeCredential{})},
		{"bad connection string", WithAgentProject("h;s", "gpt-4o", fakeCredential{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opt, WithAgentTools("search-conn", "bing-conn", "docs")); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNew_AgentRequiresTools(t *testing.T) {
	project := WithAgentProject("h.example.com;s;rg;p", "gpt-4o", fakeCredential{})
	tests := []struct {
		name string
		opts []Option
	}{
		{"no tools", []Option{project}},
		{"no search connection", []Option{project, WithAgentTools("", "bing-conn", "docs")}},
		{"no bing connection", []Option{project, WithAgentTools("search-conn", "", "docs")}},
		{"no index", []Option{project, WithAgentTools("search-conn", "bing-conn", "")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts...); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := New(project, WithAgentTools("search-conn", "bing-conn", "docs")); err != nil {
		t.Fatalf("complete agent config: %v", err)
	}
}

func TestSearch_Query(t *testing.T) {
	var body map[string]any
	server := fakeIndex(t, &body)

	c, err := New(WithAzureSearch(server.URL, "key", "docs"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	results, err := c.Search().Query(context.Background(), "laptop", &SearchOptions{Mode: ModeKeyword, Top: 2})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 2 || results[0].Title != "A" || results[1].Score != 2.2 {
		t.Errorf("unexpected results: %+v", results)
	}
	if body["search"] != "laptop" {
		t.Errorf("search text = %v", body["search"])
	}
	if _, ok := body["vectorQueries"]; ok {
		t.Error("keyword query must not carry vector queries")
	}
}

func TestSearch_DefaultsToHybridWithEmbedder(t *testing.T) {
	var body map[string]any
	server := fakeIndex(t, &body)
	emb := &mockEmbedder{}

	c, err := New(WithAzureSearch(server.URL, "key", "docs"), WithEmbedder(emb), WithVectorField("embedding"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Search().Query(context.Background(), "laptop", nil); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if emb.got != "laptop" {
		t.Errorf("embedder got %q", emb.got)
	}
	vqs, ok := body["vectorQueries"].([]any)
	if !ok || len(vqs) != 1 {
		t.Fatalf("expected one vector query, got %v", body["vectorQueries"])
	}
	vq := vqs[0].(map[string]any)
	if vq["kind"] != "vector" || vq["fields"] != "embedding" {
		t.Errorf("unexpected vector query: %v", vq)
	}
}

func TestSearch_Markdown(t *testing.T) {
	server := fakeIndex(t, nil)
	c, err := New(WithAzureSearch(server.URL, "key", "docs"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	md, err := c.Search().Markdown(context.Background(), "laptop", &SearchOptions{Mode: ModeVector, Top: 1})
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	want := "## Vector Search Results\n\n### 1. A\nScore: 3.10\n\nalpha\n\n---\n\n"
	if md != want {
		t.Errorf("got %q, want %q", md, want)
	}
}

func TestSearch_NotConfigured(t *testing.T) {
	c, err := New(
		WithAgentProject("h.example.com;s;rg;p", "gpt-4o", fakeCredential{}),
		WithAgentTools("search-conn", "bing-conn", "docs"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.Search().Query(context.Background(), "laptop", nil)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestAgent_NotConfigured(t *testing.T) {
	server := fakeIndex(t, nil)
	c, err := New(WithAzureSearch(server.URL, "key", "docs"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Agent().WebSearch(context.Background(), "q"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestPing(t *testing.T) {
	server := fakeIndex(t, nil)
	c, err := New(WithAzureSearch(server.URL, "key", "docs"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestPrometheus(t *testing.T) {
	server := fakeIndex(t, nil)
	reg := prometheus.NewRegistry()
	c, err := New(WithAzureSearch(server.URL, "key", "docs"), WithPrometheus(reg))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, _ = c.Search().Query(context.Background(), "laptop", nil)
	_, _ = c.Search().Query(context.Background(), "  ", nil)

	if got := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("search", "ok")); got != 1 {
		t.Errorf("ok searches = %v", got)
	}
	if got := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("search", "invalid")); got != 1 {
		t.Errorf("invalid searches = %v", got)
	}
	if _, err := c.Agent().WebSearch(context.Background(), "q"); err == nil {
		t.Fatal("expected not configured")
	}
	if got := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("agent_web_search", "not_configured")); got != 1 {
		t.Errorf("unconfigured agent calls = %v", got)
	}
}

func TestAgentServer_NotInitialized(t *testing.T) {
	server := fakeIndex(t, nil)
	c, err := New(WithAzureSearch(server.URL, "key", "docs"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ss, err := c.AgentServer().Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	defer ss.Close()

	cs, err := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "v0"}, nil).Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer cs.Close()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "web_search", Arguments: map[string]any{"query": "q"}})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	text := res.Content[0].(*mcp.TextContent).Text
	if text != "Error: Azure AI Agent client is not initialized. Check server logs for details." {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{notConfigured("search"), "not_configured"},
		{fmt.Errorf("query: %w", ErrInvalidRequest), "invalid"},
		{fmt.Errorf("wait: %w", ErrRunTimeout), "timeout"},
		{context.DeadlineExceeded, "timeout"},
		{&domain.RemoteError{Status: 503}, "remote_error"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		if got := statusOf(tt.err); got != tt.want {
			t.Errorf("statusOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
