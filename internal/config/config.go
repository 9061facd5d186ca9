package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultConfig []byte

// Config holds the searchmcp configuration shared by both servers.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Admin     AdminConfig     `yaml:"admin"`
	Search    SearchConfig    `yaml:"search"`
	Agent     AgentConfig     `yaml:"agent"`
	Embedding EmbeddingConfig `yaml:"embedding"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AdminConfig holds the optional HTTP admin surface (health, metrics).
type AdminConfig struct {
	Port        int      `yaml:"port"` // 0 = disabled
	APIKeys     []string `yaml:"api_keys"`
	ShutdownSec int      `yaml:"shutdown_timeout_sec"`
}

// SearchConfig holds Azure AI Search settings.
type SearchConfig struct {
	Endpoint     string `yaml:"endpoint"`
	APIKey       string `yaml:"api_key"`
	IndexName    string `yaml:"index_name"`
	APIVersion   string `yaml:"api_version"`
	VectorField  string `yaml:"vector_field"`
	TitleField   string `yaml:"title_field"`
	ContentField string `yaml:"content_field"`
}

// AgentConfig holds Azure AI Agent Service settings.
type AgentConfig struct {
	ConnectionString     string `yaml:"project_connection_string"`
	ModelDeploymentName  string `yaml:"model_deployment_name"`
	SearchConnectionName string `yaml:"search_connection_name"`
	BingConnectionName   string `yaml:"bing_connection_name"`
	IndexName            string `yaml:"index_name"`
	APIVersion           string `yaml:"api_version"`
	PollIntervalMs       int    `yaml:"poll_interval_ms"`
	RunTimeoutSec        int    `yaml:"run_timeout_sec"` // 0 = wait until terminal status
	DeleteThreads        bool   `yaml:"delete_threads"`
}

// PollInterval returns the run polling interval.
func (a AgentConfig) PollInterval() time.Duration {
	return time.Duration(a.PollIntervalMs) * time.Millisecond
}

// RunTimeout returns the run deadline, zero when unbounded.
func (a AgentConfig) RunTimeout() time.Duration {
	return time.Duration(a.RunTimeoutSec) * time.Second
}

// EmbeddingConfig holds the optional client-side query embedder.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"` // "", openai, azure
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	APIVersion string `yaml:"api_version"` // azure only
	// QueryInstruction is prepended to every query before embedding.
	QueryInstruction string `yaml:"query_instruction"`
}

// Enabled reports whether a query embedder should be built.
func (e EmbeddingConfig) Enabled() bool {
	return e.Provider != ""
}

// Load reads configuration by environment name (local, dev, prod).
// A missing config file falls back to the embedded default, which maps
// every setting onto its environment variable.
func Load(env string) (Config, error) {
	loadDotEnv()

	data, err := readConfig(env)
	if err != nil {
		return Config{}, err
	}

	// Parse first, then substitute ${VAR} inside scalars: values may hold
	// quotes or backslashes that must not be re-read as YAML.
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	expandNode(&root)

	var cfg Config
	if root.Kind != 0 {
		if err := root.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Admin.ShutdownSec <= 0 {
		c.Admin.ShutdownSec = 5
	}
	if c.Search.APIVersion == "" {
		c.Search.APIVersion = "2024-07-01"
	}
	if c.Search.VectorField == "" {
		c.Search.VectorField = "text_vector"
	}
	if c.Search.TitleField == "" {
		c.Search.TitleField = "title"
	}
	if c.Search.ContentField == "" {
		c.Search.ContentField = "chunk"
	}
	if c.Agent.APIVersion == "" {
		c.Agent.APIVersion = "2024-12-01-preview"
	}
	if c.Agent.PollIntervalMs <= 0 {
		c.Agent.PollIntervalMs = 1000
	}
}

// Validate checks the structural correctness of the configuration.
// Missing credentials are not structural: they are reported by Require.
func (c *Config) Validate() error {
	if c.Admin.Port < 0 || c.Admin.Port > 65535 {
		return fmt.Errorf("admin.port must be between 0 and 65535, got %d", c.Admin.Port)
	}
	if c.Agent.RunTimeoutSec < 0 {
		return fmt.Errorf("agent.run_timeout_sec must not be negative, got %d", c.Agent.RunTimeoutSec)
	}
	switch c.Embedding.Provider {
	case "", "openai", "azure":
		// ok
	default:
		return fmt.Errorf(
			"embedding.provider must be \"openai\" or \"azure\", got %q", c.Embedding.Provider,
		)
	}
	if c.Embedding.Enabled() && c.Embedding.Model == "" {
		return errors.New("embedding.model is required when embedding.provider is set")
	}
	return nil
}

func readConfig(env string) ([]byte, error) {
	configPath, ok := findConfigPath(env)
	if !ok {
		return defaultConfig, nil
	}
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return data, nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) (string, bool) {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Explicit override
	if path := os.Getenv("SEARCHMCP_CONFIG"); path != "" {
		return path, true
	}

	// 2. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path, true
	}

	// 3. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path, true
	}

	return "", false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// loadDotEnv loads ./.env if present. Variables already set in the
// environment are not overwritten.
func loadDotEnv() {
	if !fileExists(".env") {
		return
	}
	_ = godotenv.Load(".env")
}

// envVarRegex matches ${VAR} and ${VAR:-default}.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandNode substitutes environment variables in every scalar. Plain
// scalars lose their resolved tag so "${ADMIN_PORT:-0}" decodes as an int.
func expandNode(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode {
		if !envVarRegex.MatchString(n.Value) {
			return
		}
		n.Value = expandEnv(n.Value)
		if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) == 0 {
			n.Tag = ""
		}
		return
	}
	for _, c := range n.Content {
		expandNode(c)
	}
}

// expandEnv replaces ${VAR} and ${VAR:-default} with environment variable values.
func expandEnv(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		expr := match[2 : len(match)-1] // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return val
	})
}
