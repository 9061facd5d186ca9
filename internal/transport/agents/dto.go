package agents

import "github.com/kailas-cloud/searchmcp/internal/domain/agent"

type connectionResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Properties struct {
		Category string `json:"category"`
	} `json:"properties"`
}

type createAgentRequest struct {
	Model         string           `json:"model"`
	Name          string           `json:"name"`
	Instructions  string           `json:"instructions"`
	Tools         []toolDefinition `json:"tools"`
	ToolResources *toolResources   `json:"tool_resources,omitempty"`
}

type toolDefinition struct {
	Type          string         `json:"type"`
	BingGrounding *bingGrounding `json:"bing_grounding,omitempty"`
}

type bingGrounding struct {
	Connections []connectionRef `json:"connections"`
}

type connectionRef struct {
	ConnectionID string `json:"connection_id"`
}

type toolResources struct {
	AzureAISearch *azureAISearchResource `json:"azure_ai_search,omitempty"`
}

type azureAISearchResource struct {
	Indexes []indexResource `json:"indexes"`
}

type indexResource struct {
	IndexConnectionID string `json:"index_connection_id"`
	IndexName         string `json:"index_name"`
}

type idResponse struct {
	ID string `json:"id"`
}

type createMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type createRunRequest struct {
	AssistantID string `json:"assistant_id"`
}

type runResponse struct {
	ID        string `json:"id"`
	ThreadID  string `json:"thread_id"`
	Status    string `json:"status"`
	LastError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_error"`
}

type messageList struct {
	Data []messageDTO `json:"data"`
}

type messageDTO struct {
	Role    string       `json:"role"`
	Content []contentDTO `json:"content"`
}

type contentDTO struct {
	Type string `json:"type"`
	Text *struct {
		Value       string          `json:"value"`
		Annotations []annotationDTO `json:"annotations"`
	} `json:"text"`
}

type annotationDTO struct {
	Type        string `json:"type"`
	URLCitation *struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	} `json:"url_citation"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func toCreateAgentRequest(spec agent.Spec) createAgentRequest {
	req := createAgentRequest{
		Model:        spec.Model,
		Name:         spec.Name,
		Instructions: spec.Instructions,
		Tools:        make([]toolDefinition, 0, len(spec.Tools)),
	}
	for _, t := range spec.Tools {
		switch t.Kind {
		case agent.ToolAzureAISearch:
			req.Tools = append(req.Tools, toolDefinition{Type: string(t.Kind)})
			if req.ToolResources == nil {
				req.ToolResources = &toolResources{AzureAISearch: &azureAISearchResource{}}
			}
			req.ToolResources.AzureAISearch.Indexes = append(req.ToolResources.AzureAISearch.Indexes,
				indexResource{IndexConnectionID: t.ConnectionID, IndexName: t.IndexName})
		case agent.ToolBingGrounding:
			req.Tools = append(req.Tools, toolDefinition{
				Type:          string(t.Kind),
				BingGrounding: &bingGrounding{Connections: []connectionRef{{ConnectionID: t.ConnectionID}}},
			})
		}
	}
	return req
}

func (r runResponse) toDomain() agent.Run {
	run := agent.Run{ID: r.ID, ThreadID: r.ThreadID, Status: agent.RunStatus(r.Status)}
	if r.LastError != nil {
		run.LastError = r.LastError.Message
		if run.LastError == "" {
			run.LastError = r.LastError.Code
		}
	}
	return run
}

func (m messageDTO) toDomain() agent.Message {
	msg := agent.Message{Role: agent.Role(m.Role)}
	for _, c := range m.Content {
		if c.Type != "text" || c.Text == nil {
			continue
		}
		msg.Texts = append(msg.Texts, c.Text.Value)
		for _, a := range c.Text.Annotations {
			if a.Type != "url_citation" || a.URLCitation == nil {
				continue
			}
			msg.Citations = append(msg.Citations, agent.Citation{
				Title: a.URLCitation.Title,
				URL:   a.URLCitation.URL,
			})
		}
	}
	return msg
}
