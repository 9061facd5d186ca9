package agent

import (
	"context"

	domagent "github.com/kailas-cloud/searchmcp/internal/domain/agent"
)

// ConnectionReader resolves named platform connections.
type ConnectionReader interface {
	GetConnection(ctx context.Context, name string) (domagent.Connection, error)
}

// AgentManager creates and removes short-lived agents.
type AgentManager interface {
	CreateAgent(ctx context.Context, spec domagent.Spec) (string, error)
	DeleteAgent(ctx context.Context, id string) error
}

// ThreadManager manages conversation threads and their messages.
type ThreadManager interface {
	CreateThread(ctx context.Context) (string, error)
	DeleteThread(ctx context.Context, id string) error
	CreateMessage(ctx context.Context, threadID, content string) error
	LatestAgentMessage(ctx context.Context, threadID string) (*domagent.Message, error)
}

// RunManager starts and observes agent runs.
type RunManager interface {
	CreateRun(ctx context.Context, threadID, agentID string) (domagent.Run, error)
	GetRun(ctx context.Context, threadID, runID string) (domagent.Run, error)
}

// Platform is the full agent service surface used by Service.
type Platform interface {
	ConnectionReader
	AgentManager
	ThreadManager
	RunManager
}
