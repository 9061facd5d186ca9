package azsearch

import (
	"encoding/json"
	"strings"

	"github.com/kailas-cloud/searchmcp/internal/domain/search/query"
)

const scoreField = "@search.score"

type searchRequest struct {
	Search        string        `json:"search,omitempty"`
	Top           int           `json:"top"`
	Select        string        `json:"select"`
	VectorQueries []vectorQuery `json:"vectorQueries,omitempty"`
}

type vectorQuery struct {
	Kind   string    `json:"kind"`
	Text   string    `json:"text,omitempty"`
	Vector []float32 `json:"vector,omitempty"`
	K      int       `json:"k"`
	Fields string    `json:"fields"`
}

type searchResponse struct {
	Value []map[string]json.RawMessage `json:"value"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func toSearchRequest(q query.Query, selectFields []string) searchRequest {
	req := searchRequest{
		Search: q.Text,
		Top:    q.Top,
		Select: strings.Join(selectFields, ","),
	}
	if v := q.Vector; v != nil {
		vq := vectorQuery{K: v.K, Fields: v.Field}
		if len(v.Vector) > 0 {
			vq.Kind = "vector"
			vq.Vector = v.Vector
		} else {
			vq.Kind = "text"
			vq.Text = v.Text
		}
		req.VectorQueries = []vectorQuery{vq}
	}
	return req
}

// stringField returns doc[name] when it is a JSON string, "" otherwise.
func stringField(doc map[string]json.RawMessage, name string) string {
	raw, ok := doc[name]
	if !ok {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// scoreOf returns the relevance score, 0 when absent.
func scoreOf(doc map[string]json.RawMessage) float64 {
	raw, ok := doc[scoreField]
	if !ok {
		return 0
	}
	var f float64
	if json.Unmarshal(raw, &f) != nil {
		return 0
	}
	return f
}
