package agent

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidConnectionString signals a malformed project connection string.
var ErrInvalidConnectionString = errors.New("invalid project connection string")

// ProjectRef identifies an AI project parsed from its connection string
// "<host>;<subscription id>;<resource group>;<project name>".
type ProjectRef struct {
	Host          string
	Subscription  string
	ResourceGroup string
	Project       string
}

// ParseConnectionString splits and validates a project connection string.
func ParseConnectionString(s string) (ProjectRef, error) {
	parts := strings.Split(strings.TrimSpace(s), ";")
	if len(parts) != 4 {
		return ProjectRef{}, fmt.Errorf("%w: expected 4 ';'-separated parts, got %d",
			ErrInvalidConnectionString, len(parts))
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if parts[i] == "" {
			return ProjectRef{}, fmt.Errorf("%w: part %d is empty", ErrInvalidConnectionString, i+1)
		}
	}
	host := strings.TrimPrefix(strings.TrimPrefix(parts[0], "https://"), "http://")
	host = strings.TrimSuffix(host, "/")
	return ProjectRef{
		Host:          host,
		Subscription:  parts[1],
		ResourceGroup: parts[2],
		Project:       parts[3],
	}, nil
}

// BaseURL returns the project-scoped agents endpoint.
func (p ProjectRef) BaseURL() string {
	return fmt.Sprintf(
		"https://%s/agents/v1.0/subscriptions/%s/resourceGroups/%s/providers/Microsoft.MachineLearningServices/workspaces/%s",
		p.Host,
		url.PathEscape(p.Subscription),
		url.PathEscape(p.ResourceGroup),
		url.PathEscape(p.Project),
	)
}
