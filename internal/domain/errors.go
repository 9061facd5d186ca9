package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured signals that a server started without its required settings.
	ErrNotConfigured = errors.New("client not configured")
	// ErrInvalidRequest signals invalid tool input.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrConnectionNotFound signals a named platform connection that does not exist.
	ErrConnectionNotFound = errors.New("connection not found")
	// ErrRemoteService signals a non-success response from a remote API.
	ErrRemoteService = errors.New("remote service error")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrRunTimeout signals an agent run that did not reach a terminal status in time.
	ErrRunTimeout = errors.New("agent run timed out")
)

// RemoteError carries the status and error body returned by a remote API.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("%s (HTTP %d): %s: %s", ErrRemoteService.Error(), e.Status, e.Code, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s (HTTP %d): %s", ErrRemoteService.Error(), e.Status, e.Message)
	default:
		return fmt.Sprintf("%s (HTTP %d)", ErrRemoteService.Error(), e.Status)
	}
}

func (e *RemoteError) Unwrap() error { return ErrRemoteService }

// NewConnectionNotFound creates an error naming the missing connection.
func NewConnectionNotFound(name string) error {
	return fmt.Errorf("%w: '%s'", ErrConnectionNotFound, name)
}
