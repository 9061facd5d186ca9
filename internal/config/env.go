package config

import (
	"strings"
)

// Environment variable names read by the servers.
const (
	EnvSearchEndpoint = "AZURE_SEARCH_SERVICE_ENDPOINT"
	EnvSearchIndex    = "AZURE_SEARCH_INDEX_NAME"
	EnvSearchAPIKey   = "AZURE_SEARCH_API_KEY"

	EnvProjectConnectionString = "PROJECT_CONNECTION_STRING"
	EnvModelDeploymentName     = "MODEL_DEPLOYMENT_NAME"
	EnvSearchConnectionName    = "AI_SEARCH_CONNECTION_NAME"
	EnvBingConnectionName      = "BING_CONNECTION_NAME"
	EnvAgentIndexName          = "AI_SEARCH_INDEX_NAME"
)

// MissingEnvError lists every required variable that resolved to an empty value.
type MissingEnvError struct {
	Keys []string
}

func (e *MissingEnvError) Error() string {
	return "missing environment variables: " + strings.Join(e.Keys, ", ")
}

// Requirement binds a resolved configuration value to the variable it comes from.
type Requirement struct {
	Name  string
	Value string
}

// Require checks every requirement and reports all missing names at once,
// in declaration order.
func Require(reqs ...Requirement) error {
	var missing []string
	for _, r := range reqs {
		if strings.TrimSpace(r.Value) == "" {
			missing = append(missing, r.Name)
		}
	}
	if len(missing) > 0 {
		return &MissingEnvError{Keys: missing}
	}
	return nil
}

// Requirements returns the values the search server cannot start without.
func (s SearchConfig) Requirements() []Requirement {
	return []Requirement{
		{Name: EnvSearchEndpoint, Value: s.Endpoint},
		{Name: EnvSearchIndex, Value: s.IndexName},
		{Name: EnvSearchAPIKey, Value: s.APIKey},
	}
}

// Requirements returns the values the agent server cannot start without.
func (a AgentConfig) Requirements() []Requirement {
	return []Requirement{
		{Name: EnvProjectConnectionString, Value: a.ConnectionString},
		{Name: EnvModelDeploymentName, Value: a.ModelDeploymentName},
		{Name: EnvSearchConnectionName, Value: a.SearchConnectionName},
		{Name: EnvBingConnectionName, Value: a.BingConnectionName},
		{Name: EnvAgentIndexName, Value: a.IndexName},
	}
}
