package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate_InvalidEmbeddingProvider(t *testing.T) {
	cfg := Config{
		Embedding: EmbeddingConfig{Provider: "cohere", Model: "m"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid embedding provider")
	}

	expected := `embedding.provider must be "openai" or "azure", got "cohere"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ValidEmbeddingProviders(t *testing.T) {
	for _, provider := range []string{"", "openai", "azure"} {
		t.Run("provider="+provider, func(t *testing.T) {
			cfg := Config{Embedding: EmbeddingConfig{Provider: provider, Model: "text-embedding-3-small"}}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for valid provider %q: %v", provider, err)
			}
		})
	}
}

func TestValidate_EmbeddingModelRequired(t *testing.T) {
	cfg := Config{Embedding: EmbeddingConfig{Provider: "openai"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding model")
	}
}

func TestValidate_InvalidAdminPort(t *testing.T) {
	cfg := Config{Admin: AdminConfig{Port: 70000}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid admin port")
	}
}

func TestValidate_NegativeRunTimeout(t *testing.T) {
	cfg := Config{Agent: AgentConfig{RunTimeoutSec: -1}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative run timeout")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Admin.ShutdownSec != 5 {
		t.Errorf("expected ShutdownSec=5, got %d", cfg.Admin.ShutdownSec)
	}
	if cfg.Search.APIVersion != "2024-07-01" {
		t.Errorf("expected search APIVersion=2024-07-01, got %q", cfg.Search.APIVersion)
	}
	if cfg.Search.VectorField != "text_vector" {
		t.Errorf("expected VectorField=text_vector, got %q", cfg.Search.VectorField)
	}
	if cfg.Search.TitleField != "title" || cfg.Search.ContentField != "chunk" {
		t.Errorf("unexpected field defaults: %q %q", cfg.Search.TitleField, cfg.Search.ContentField)
	}
	if cfg.Agent.APIVersion != "2024-12-01-preview" {
		t.Errorf("expected agent APIVersion=2024-12-01-preview, got %q", cfg.Agent.APIVersion)
	}
	if cfg.Agent.PollIntervalMs != 1000 {
		t.Errorf("expected PollIntervalMs=1000, got %d", cfg.Agent.PollIntervalMs)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		Admin:  AdminConfig{ShutdownSec: 30},
		Search: SearchConfig{APIVersion: "2025-05-01-preview", VectorField: "embedding"},
		Agent:  AgentConfig{PollIntervalMs: 250},
	}
	cfg.ApplyDefaults()

	if cfg.Admin.ShutdownSec != 30 {
		t.Errorf("expected ShutdownSec=30, got %d", cfg.Admin.ShutdownSec)
	}
	if cfg.Search.APIVersion != "2025-05-01-preview" {
		t.Errorf("expected APIVersion override kept, got %q", cfg.Search.APIVersion)
	}
	if cfg.Search.VectorField != "embedding" {
		t.Errorf("expected VectorField=embedding, got %q", cfg.Search.VectorField)
	}
	if cfg.Agent.PollIntervalMs != 250 {
		t.Errorf("expected PollIntervalMs=250, got %d", cfg.Agent.PollIntervalMs)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("SEARCHMCP_TEST_SET", "value")

	got := expandEnv(`a=${SEARCHMCP_TEST_SET} b=${SEARCHMCP_TEST_UNSET:-fallback} c=${SEARCHMCP_TEST_UNSET}`)
	want := `a=value b=fallback c=`
	if got != want {
		t.Errorf("expandEnv:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestLoad_ValuesWithYAMLSpecialCharacters(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SEARCHMCP_CONFIG", "")
	t.Setenv(EnvSearchEndpoint, "https://example.search.windows.net")
	t.Setenv(EnvSearchAPIKey, `ab"c\d`)
	t.Setenv(EnvSearchIndex, "docs: #1")
	t.Setenv("EMBEDDING_QUERY_INSTRUCTION", `Represent "this" query:\n`)
	t.Setenv("AGENT_DELETE_THREADS", "true")

	cfg, err := Load("no-such-env")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.APIKey != `ab"c\d` {
		t.Errorf("api key: got %q", cfg.Search.APIKey)
	}
	if cfg.Search.IndexName != "docs: #1" {
		t.Errorf("index name: got %q", cfg.Search.IndexName)
	}
	if cfg.Embedding.QueryInstruction != `Represent "this" query:\n` {
		t.Errorf("query instruction: got %q", cfg.Embedding.QueryInstruction)
	}
	if !cfg.Agent.DeleteThreads {
		t.Error("expected plain scalar to decode as bool")
	}
}

func TestLoad_EmbeddedDefaultFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SEARCHMCP_CONFIG", "")
	t.Setenv(EnvSearchEndpoint, "https://example.search.windows.net")
	t.Setenv(EnvSearchAPIKey, "key")
	t.Setenv(EnvSearchIndex, "docs")
	t.Setenv("AGENT_RUN_TIMEOUT_SEC", "90")

	cfg, err := Load("no-such-env")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.Endpoint != "https://example.search.windows.net" {
		t.Errorf("endpoint: got %q", cfg.Search.Endpoint)
	}
	if cfg.Search.IndexName != "docs" || cfg.Search.APIKey != "key" {
		t.Errorf("unexpected search config: %+v", cfg.Search)
	}
	if cfg.Agent.RunTimeoutSec != 90 {
		t.Errorf("expected RunTimeoutSec=90, got %d", cfg.Agent.RunTimeoutSec)
	}
	if err := Require(cfg.Search.Requirements()...); err != nil {
		t.Errorf("search requirements should be satisfied: %v", err)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	body := "search:\n  endpoint: \"https://x\"\n  index_name: idx\n  vector_field: emb\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SEARCHMCP_CONFIG", path)

	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.VectorField != "emb" {
		t.Errorf("expected VectorField=emb, got %q", cfg.Search.VectorField)
	}

	err = Require(cfg.Search.Requirements()...)
	var missing *MissingEnvError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingEnvError, got %v", err)
	}
	if len(missing.Keys) != 1 || missing.Keys[0] != EnvSearchAPIKey {
		t.Errorf("expected only %s missing, got %v", EnvSearchAPIKey, missing.Keys)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("search: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SEARCHMCP_CONFIG", path)

	if _, err := Load("local"); err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}
