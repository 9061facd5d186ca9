package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/searchmcp/internal/domain"
	"github.com/kailas-cloud/searchmcp/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultTop     = 5
	MaxTop         = 1000
	// KNearestNeighbors is the candidate count requested from the vector
	// index before Top is applied. It does not depend on Top.
	KNearestNeighbors  = 50
	DefaultVectorField = "text_vector"
)

// Request is a validated search query.
type Request struct {
	query       string
	searchMode  mode.Mode
	top         int
	vectorField string
}

// New validates and normalizes search parameters.
// Defaults: top=5, vectorField=text_vector. Top is capped at MaxTop.
func New(query string, m mode.Mode, top int, vectorField string) (Request, error) {
	if strings.TrimSpace(query) == "" {
		return Request{}, fmt.Errorf("%w: query is required", domain.ErrInvalidRequest)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("%w: invalid search mode: %q", domain.ErrInvalidRequest, m)
	}
	if top <= 0 {
		top = DefaultTop
	}
	if top > MaxTop {
		top = MaxTop
	}
	if vectorField == "" {
		vectorField = DefaultVectorField
	}

	return Request{
		query:       query,
		searchMode:  m,
		top:         top,
		vectorField: vectorField,
	}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Mode returns the search strategy.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// Top returns the maximum number of results to return.
func (r *Request) Top() int { return r.top }

// VectorField returns the index field vector queries run against.
func (r *Request) VectorField() string { return r.vectorField }
