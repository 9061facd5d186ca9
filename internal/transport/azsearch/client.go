package azsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchmcp/internal/domain"
	"github.com/kailas-cloud/searchmcp/internal/domain/search/query"
	"github.com/kailas-cloud/searchmcp/internal/domain/search/result"
	"github.com/kailas-cloud/searchmcp/internal/metrics"
)

const service = "search"

// Defaults applied when Config leaves a field empty.
const (
	DefaultAPIVersion   = "2024-07-01"
	DefaultTitleField   = "title"
	DefaultContentField = "chunk"
)

// Client queries one Azure AI Search index over the REST API.
type Client struct {
	http         *http.Client
	endpoint     string
	apiKey       string
	index        string
	apiVersion   string
	titleField   string
	contentField string
	logger       *zap.Logger
}

// Config holds the index connection settings.
type Config struct {
	Endpoint     string
	APIKey       string
	IndexName    string
	APIVersion   string
	TitleField   string
	ContentField string
	// HTTPClient defaults to a client without an explicit timeout.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a search client. The endpoint must be an absolute URL.
func NewClient(cfg *Config) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.Endpoint))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid search endpoint %q", cfg.Endpoint)
	}
	if cfg.IndexName == "" {
		return nil, errors.New("index name is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		http:         httpClient,
		endpoint:     strings.TrimSuffix(u.String(), "/"),
		apiKey:       cfg.APIKey,
		index:        cfg.IndexName,
		apiVersion:   orDefault(cfg.APIVersion, DefaultAPIVersion),
		titleField:   orDefault(cfg.TitleField, DefaultTitleField),
		contentField: orDefault(cfg.ContentField, DefaultContentField),
		logger:       logger,
	}, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// IndexName returns the index this client is bound to.
func (c *Client) IndexName() string { return c.index }

// Search runs one docs/search call and maps the hits in remote order.
func (c *Client) Search(ctx context.Context, q query.Query) (results []result.Result, err error) {
	start := time.Now()
	defer func() { metrics.ObserveRemote(service, "docs_search", start, err) }()

	body, err := json.Marshal(toSearchRequest(q, []string{c.titleField, c.contentField}))
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	var resp searchResponse
	if err := c.do(ctx, http.MethodPost, c.indexURL("docs/search"), body, &resp); err != nil {
		return nil, err
	}

	results = make([]result.Result, 0, len(resp.Value))
	for _, doc := range resp.Value {
		results = append(results, result.New(
			stringField(doc, c.titleField),
			stringField(doc, c.contentField),
			scoreOf(doc),
		))
	}

	c.logger.Debug("search completed",
		zap.String("index", c.index),
		zap.Int("results", len(results)),
		zap.Duration("latency", time.Since(start)),
	)
	return results, nil
}

// HealthCheck verifies index availability via the document count endpoint.
func (c *Client) HealthCheck(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveRemote(service, "docs_count", start, err) }()

	if err := c.do(ctx, http.MethodGet, c.indexURL("docs/$count"), nil, nil); err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	return nil
}

func (c *Client) indexURL(op string) string {
	return fmt.Sprintf("%s/indexes/%s/%s?api-version=%s",
		c.endpoint, url.PathEscape(c.index), op, url.QueryEscape(c.apiVersion))
}

func (c *Client) do(ctx context.Context, method, target string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseError maps an error body to *domain.RemoteError.
func parseError(status int, body []byte) error {
	var parsed errorResponse
	if json.Unmarshal(body, &parsed) == nil && parsed.Error.Message != "" {
		return &domain.RemoteError{Status: status, Code: parsed.Error.Code, Message: parsed.Error.Message}
	}
	return &domain.RemoteError{Status: status, Message: strings.TrimSpace(string(body))}
}
