package agents

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

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchmcp/internal/domain"
	"github.com/kailas-cloud/searchmcp/internal/domain/agent"
	"github.com/kailas-cloud/searchmcp/internal/metrics"
)

const (
	service = "agents"
	// TokenScope is the audience of the project-scoped agents API.
	TokenScope = "https://management.azure.com/.default"
	// ConnectionsAPIVersion is the api-version of the connections endpoint.
	ConnectionsAPIVersion = "2024-07-01-preview"
)

// Client talks to the Azure AI Agent Service of one project.
type Client struct {
	http       *http.Client
	baseURL    string
	apiVersion string
	credential azcore.TokenCredential
	logger     *zap.Logger
}

// Config holds the project endpoint and credentials.
type Config struct {
	// BaseURL is the project-scoped endpoint, see agent.ProjectRef.BaseURL.
	BaseURL    string
	APIVersion string
	Credential azcore.TokenCredential
	// HTTPClient defaults to a client without an explicit timeout.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates an agent service client.
func NewClient(cfg *Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base url is required")
	}
	if cfg.Credential == nil {
		return nil, errors.New("credential is required")
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
		http:       httpClient,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiVersion: cfg.APIVersion,
		credential: cfg.Credential,
		logger:     logger,
	}, nil
}

// GetConnection resolves a named project connection.
func (c *Client) GetConnection(ctx context.Context, name string) (conn agent.Connection, err error) {
	start := time.Now()
	defer func() { metrics.ObserveRemote(service, "get_connection", start, err) }()

	var resp connectionResponse
	target := c.url("/connections/"+url.PathEscape(name), ConnectionsAPIVersion)
	if err := c.do(ctx, http.MethodGet, target, nil, nil, &resp); err != nil {
		var remote *domain.RemoteError
		if errors.As(err, &remote) && remote.Status == http.StatusNotFound {
			return agent.Connection{}, domain.NewConnectionNotFound(name)
		}
		return agent.Connection{}, fmt.Errorf("get connection %q: %w", name, err)
	}
	if resp.ID == "" {
		return agent.Connection{}, domain.NewConnectionNotFound(name)
	}
	return agent.Connection{ID: resp.ID, Name: resp.Name, Type: resp.Properties.Category}, nil
}

// CreateAgent registers a short-lived agent and returns its id.
func (c *Client) CreateAgent(ctx context.Context, spec agent.Spec) (id string, err error) {
	start := time.Now()
	defer func() { metrics.ObserveRemote(service, "create_agent", start, err) }()

	var resp idResponse
	header := http.Header{"x-ms-enable-preview": []string{"true"}}
	if err := c.do(ctx, http.MethodPost, c.url("/assistants", c.apiVersion), header,
		toCreateAgentRequest(spec), &resp); err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}
	return resp.ID, nil
}

// DeleteAgent removes an agent registration.
func (c *Client) DeleteAgent(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveRemote(service, "delete_agent", start, err) }()

	if err := c.do(ctx, http.MethodDelete, c.url("/assistants/"+url.PathEscape(id), c.apiVersion),
		nil, nil, nil); err != nil {
		return fmt.Errorf("delete agent %s: %w", id, err)
	}
	return nil
}

// CreateThread opens a conversation thread.
func (c *Client) CreateThread(ctx context.Context) (id string, err error) {
	start := time.Now()
	defer func() { metrics.ObserveRemote(service, "create_thread", start, err) }()

	var resp idResponse
	if err := c.do(ctx, http.MethodPost, c.url("/threads", c.apiVersion), nil,
		struct{}{}, &resp); err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}
	return resp.ID, nil
}

// DeleteThread removes a conversation thread.
func (c *Client) DeleteThread(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveRemote(service, "delete_thread", start, err) }()

	if err := c.do(ctx, http.MethodDelete, c.url("/threads/"+url.PathEscape(id), c.apiVersion),
		nil, nil, nil); err != nil {
		return fmt.Errorf("delete thread %s: %w", id, err)
	}
	return nil
}

// CreateMessage posts a user message on a thread.
func (c *Client) CreateMessage(ctx context.Context, threadID, content string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveRemote(service, "create_message", start, err) }()

	body := createMessageRequest{Role: string(agent.RoleUser), Content: content}
	if err := c.do(ctx, http.MethodPost, c.url(threadPath(threadID, "messages"), c.apiVersion),
		nil, body, nil); err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

// CreateRun starts the agent on the thread.
func (c *Client) CreateRun(ctx context.Context, threadID, agentID string) (run agent.Run, err error) {
	start := time.Now()
	defer func() { metrics.ObserveRemote(service, "create_run", start, err) }()

	var resp runResponse
	if err := c.do(ctx, http.MethodPost, c.url(threadPath(threadID, "runs"), c.apiVersion),
		nil, createRunRequest{AssistantID: agentID}, &resp); err != nil {
		return agent.Run{}, fmt.Errorf("create run: %w", err)
	}
	return resp.toDomain(), nil
}

// GetRun fetches the current run snapshot.
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (run agent.Run, err error) {
	start := time.Now()
	defer func() { metrics.ObserveRemote(service, "get_run", start, err) }()

	var resp runResponse
	target := c.url(threadPath(threadID, "runs/"+url.PathEscape(runID)), c.apiVersion)
	if err := c.do(ctx, http.MethodGet, target, nil, nil, &resp); err != nil {
		return agent.Run{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	return resp.toDomain(), nil
}

// LatestAgentMessage returns the newest message authored by the agent,
// or nil when the agent has not replied.
func (c *Client) LatestAgentMessage(ctx context.Context, threadID string) (msg *agent.Message, err error) {
	start := time.Now()
	defer func() { metrics.ObserveRemote(service, "list_messages", start, err) }()

	var resp messageList
	target := c.url(threadPath(threadID, "messages"), c.apiVersion) + "&order=desc"
	if err := c.do(ctx, http.MethodGet, target, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	for _, m := range resp.Data {
		if agent.Role(m.Role) == agent.RoleAgent {
			found := m.toDomain()
			return &found, nil
		}
	}
	return nil, nil
}

// HealthCheck verifies the project endpoint and credential by listing one agent.
func (c *Client) HealthCheck(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveRemote(service, "list_agents", start, err) }()

	target := c.url("/assistants", c.apiVersion) + "&limit=1"
	if err := c.do(ctx, http.MethodGet, target, nil, nil, nil); err != nil {
		return fmt.Errorf("list agents: %w", err)
	}
	return nil
}

func threadPath(threadID, rest string) string {
	return "/threads/" + url.PathEscape(threadID) + "/" + rest
}

func (c *Client) url(path, apiVersion string) string {
	return c.baseURL + path + "?api-version=" + url.QueryEscape(apiVersion)
}

func (c *Client) do(ctx context.Context, method, target string, header http.Header, in, out any) error {
	var reader io.Reader
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	token, err := c.credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{TokenScope}})
	if err != nil {
		return fmt.Errorf("acquire token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.Token)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("agent service request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("agent service call",
		zap.String("method", method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
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
