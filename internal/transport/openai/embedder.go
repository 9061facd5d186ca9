package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchmcp/internal/domain"
	"github.com/kailas-cloud/searchmcp/internal/metrics"
)

// Provider names accepted by NewEmbedder.
const (
	ProviderOpenAI = "openai"
	ProviderAzure  = "azure"
)

// Embedder vectorizes search queries through OpenAI or an Azure OpenAI
// deployment, for indexes that have no integrated vectorizer.
type Embedder struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
	provider   string
	logger     *zap.Logger
}

// Config holds the embedding provider settings.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	// Model is the model name, or the deployment name for ProviderAzure.
	Model string
	// Dimensions must match the index vector field when set.
	Dimensions int
	// APIVersion applies to ProviderAzure only. Empty keeps the client default.
	APIVersion string
	Logger     *zap.Logger
}

// NewEmbedder creates a query embedder.
func NewEmbedder(cfg *Config) *Embedder {
	var clientCfg openai.ClientConfig
	switch cfg.Provider {
	case ProviderAzure:
		clientCfg = openai.DefaultAzureConfig(cfg.APIKey, cfg.BaseURL)
		if cfg.APIVersion != "" {
			clientCfg.APIVersion = cfg.APIVersion
		}
		deployment := cfg.Model
		clientCfg.AzureModelMapperFunc = func(string) string { return deployment }
	default:
		clientCfg = openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Embedder{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      openai.EmbeddingModel(cfg.Model),
		dimensions: cfg.Dimensions,
		provider:   cfg.Provider,
		logger:     logger,
	}
}

// Embed vectorizes one query.
func (e *Embedder) Embed(ctx context.Context, text string) (res domain.EmbeddingResult, err error) {
	start := time.Now()
	defer func() { e.observe(start, res, err) }()

	req := openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          e.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
		Dimensions:     e.dimensions,
	}
	resp, err := e.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return domain.EmbeddingResult{}, parseAPIError(err)
	}
	if len(resp.Data) == 0 {
		return domain.EmbeddingResult{}, &embedError{kind: "empty_response",
			err: fmt.Errorf("empty embedding response: %w", domain.ErrEmbeddingProviderError)}
	}

	vec := resp.Data[0].Embedding
	if e.dimensions > 0 && len(vec) != e.dimensions {
		return domain.EmbeddingResult{}, &embedError{kind: "dimension_mismatch",
			err: fmt.Errorf("embedding has %d dimensions, index expects %d: %w",
				len(vec), e.dimensions, domain.ErrEmbeddingProviderError)}
	}

	return domain.EmbeddingResult{
		Embedding:    vec,
		PromptTokens: resp.Usage.PromptTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}, nil
}

func (e *Embedder) observe(start time.Time, res domain.EmbeddingResult, err error) {
	duration := time.Since(start)
	model := string(e.model)

	if err != nil {
		kind := "api_error"
		var ee *embedError
		if errors.As(err, &ee) {
			kind = ee.kind
		}
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, model, kind).Inc()
		e.logger.Warn("query embedding failed", zap.String("provider", e.provider), zap.Error(err))
		return
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, model, "success").Inc()
	metrics.EmbeddingRequestDuration.WithLabelValues(e.provider, model).Observe(duration.Seconds())
	if res.TotalTokens > 0 {
		metrics.EmbeddingTokensTotal.WithLabelValues(e.provider, model, "prompt").Add(float64(res.PromptTokens))
		metrics.EmbeddingTokensTotal.WithLabelValues(e.provider, model, "total").Add(float64(res.TotalTokens))
	}
	e.logger.Debug("query embedded",
		zap.String("provider", e.provider),
		zap.Int("dimensions", len(res.Embedding)),
		zap.Duration("latency", duration),
	)
}

// HealthCheck lists models, which costs no tokens.
func (e *Embedder) HealthCheck(ctx context.Context) error {
	if _, err := e.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// embedError tags a failure with its metrics error_type label.
type embedError struct {
	kind string
	err  error
}

func (e *embedError) Error() string { return e.err.Error() }
func (e *embedError) Unwrap() error { return e.err }

// parseAPIError wraps every provider failure with domain.ErrEmbeddingProviderError,
// keeping the most specific message the body offers.
func parseAPIError(err error) error {
	wrap := domain.ErrEmbeddingProviderError

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &embedError{kind: "api_error",
			err: fmt.Errorf("embedding API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail == "" {
			detail = string(reqErr.Body)
		}
		return &embedError{kind: "api_error",
			err: fmt.Errorf("embedding API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &embedError{kind: "cancelled", err: fmt.Errorf("embedding request: %w: %w", err, wrap)}
	}
	return &embedError{kind: "transport", err: fmt.Errorf("embedding request failed: %v: %w", err, wrap)}
}

// extractDetail reads "detail" (OpenAI-compatible proxies) or
// "error.message" (OpenAI, Azure OpenAI) from an error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
		Error  struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &parsed) != nil {
		return ""
	}
	if parsed.Detail != "" {
		return parsed.Detail
	}
	return parsed.Error.Message
}
