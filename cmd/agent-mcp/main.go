package main

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchmcp/internal/app"
	"github.com/kailas-cloud/searchmcp/internal/config"
	domagent "github.com/kailas-cloud/searchmcp/internal/domain/agent"
	"github.com/kailas-cloud/searchmcp/internal/transport/agents"
	"github.com/kailas-cloud/searchmcp/internal/transport/mcpserver"
	agentuc "github.com/kailas-cloud/searchmcp/internal/usecase/agent"
	healthuc "github.com/kailas-cloud/searchmcp/internal/usecase/health"
)

func main() {
	a, err := app.New("agent-mcp")
	if err != nil {
		panic(err.Error())
	}
	defer a.Sync()
	logger := a.Logger
	cfg := a.Config

	var (
		answerer mcpserver.Answerer
		remote   healthuc.RemoteChecker
	)

	client, err := newAgentClient(cfg, logger)
	if err != nil {
		logger.Error("Error initializing agent client", zap.Error(err))
	} else {
		answerer = agentuc.New(client, agentuc.Config{
			Model:                cfg.Agent.ModelDeploymentName,
			SearchConnectionName: cfg.Agent.SearchConnectionName,
			BingConnectionName:   cfg.Agent.BingConnectionName,
			IndexName:            cfg.Agent.IndexName,
			PollInterval:         cfg.Agent.PollInterval(),
			RunTimeout:           cfg.Agent.RunTimeout(),
			DeleteThreads:        cfg.Agent.DeleteThreads,
		})
		remote = client
		logger.Info("Agent client initialized successfully",
			zap.String("model", cfg.Agent.ModelDeploymentName),
			zap.Duration("run_timeout", cfg.Agent.RunTimeout()),
			zap.Bool("delete_threads", cfg.Agent.DeleteThreads),
		)
	}

	server := mcpserver.NewAgentServer(mcpserver.AgentDeps{
		Agent:  answerer,
		Logger: logger,
	})

	if err := a.Run(server, healthuc.New("agent", remote, nil)); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

func newAgentClient(cfg config.Config, logger *zap.Logger) (*agents.Client, error) {
	if err := config.Require(cfg.Agent.Requirements()...); err != nil {
		return nil, err
	}

	project, err := domagent.ParseConnectionString(cfg.Agent.ConnectionString)
	if err != nil {
		return nil, err
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("create azure credential: %w", err)
	}

	return agents.NewClient(&agents.Config{
		BaseURL:    project.BaseURL(),
		APIVersion: cfg.Agent.APIVersion,
		Credential: cred,
		Logger:     logger,
	})
}
