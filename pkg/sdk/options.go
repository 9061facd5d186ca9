package searchmcp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	searchEndpoint string
	searchAPIKey   string
	searchIndex    string
	vectorField    string
	embedder       Embedder

	connectionString string
	model            string
	credential       azcore.TokenCredential
	searchConnection string
	bingConnection   string
	agentIndex       string
	pollInterval     time.Duration
	runTimeout       time.Duration
	deleteThreads    bool

	httpClient *http.Client
	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithAzureSearch enables direct index queries.
func WithAzureSearch(endpoint, apiKey, indexName string) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchEndpoint = endpoint
		c.searchAPIKey = apiKey
		c.searchIndex = indexName
	})
}

// WithVectorField sets the index field used by vector and hybrid queries.
// Default: "text_vector".
func WithVectorField(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.vectorField = name
	})
}

// WithEmbedder vectorizes queries client-side instead of relying on the
// index vectorizer.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithAgentProject enables agent-backed search against an AI project.
// connectionString has the form "<host>;<subscription>;<resource group>;<project>".
func WithAgentProject(connectionString, model string, cred azcore.TokenCredential) Option {
	return optionFunc(func(c *clientConfig) {
		c.connectionString = connectionString
		c.model = model
		c.credential = cred
	})
}

// WithAgentTools names the project connections and index used by the agent
// tools. Required with WithAgentProject.
func WithAgentTools(searchConnection, bingConnection, indexName string) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchConnection = searchConnection
		c.bingConnection = bingConnection
		c.agentIndex = indexName
	})
}

// WithRunPolling sets the run status poll interval and an overall deadline.
// A zero timeout waits until the run reaches a terminal status.
func WithRunPolling(interval, timeout time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.pollInterval = interval
		c.runTimeout = timeout
	})
}

// WithThreadCleanup deletes each conversation thread after the call.
// Threads are kept by default.
func WithThreadCleanup() Option {
	return optionFunc(func(c *clientConfig) {
		c.deleteThreads = true
	})
}

// WithHTTPClient sets the HTTP client used for every remote call.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
