// Package agent holds the value types exchanged with the agent orchestration
// service: connections, tool descriptors, agent definitions, runs and messages.
package agent

// Connection is a named, pre-registered reference to an external resource.
type Connection struct {
	ID   string
	Name string
	Type string
}

// ToolKind identifies a hosted tool.
type ToolKind string

// Hosted tool kinds.
const (
	ToolAzureAISearch ToolKind = "azure_ai_search"
	ToolBingGrounding ToolKind = "bing_grounding"
)

// Tool is a hosted tool bound to a platform connection.
type Tool struct {
	Kind         ToolKind
	ConnectionID string
	// IndexName is set for ToolAzureAISearch only.
	IndexName string
}

// NewAzureAISearchTool binds the index search tool to a search connection and index.
func NewAzureAISearchTool(connectionID, indexName string) Tool {
	return Tool{Kind: ToolAzureAISearch, ConnectionID: connectionID, IndexName: indexName}
}

// NewBingGroundingTool binds the web grounding tool to a Bing connection.
func NewBingGroundingTool(connectionID string) Tool {
	return Tool{Kind: ToolBingGrounding, ConnectionID: connectionID}
}

// Spec describes a short-lived agent to create.
type Spec struct {
	Model        string
	Name         string
	Instructions string
	Tools        []Tool
}

// Role is the author of a thread message.
type Role string

// Message roles.
const (
	RoleUser  Role = "user"
	RoleAgent Role = "assistant"
)

// Message is one thread message reduced to its text segments and URL citations.
type Message struct {
	Role      Role
	Texts     []string
	Citations []Citation
}
