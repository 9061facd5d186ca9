package config

import (
	"errors"
	"testing"
)

func TestRequire_AllPresent(t *testing.T) {
	err := Require(Requirement{Name: "A", Value: "1"}, Requirement{Name: "B", Value: "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequire_NamesEveryMissingKey(t *testing.T) {
	err := Require(
		Requirement{Name: "A"},
		Requirement{Name: "B", Value: "2"},
		Requirement{Name: "C", Value: "   "},
		Requirement{Name: "D"},
	)
	if err == nil {
		t.Fatal("expected error")
	}

	want := "missing environment variables: A, C, D"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestRequirements_RemovingAnyOneFails(t *testing.T) {
	search := SearchConfig{Endpoint: "https://x", APIKey: "k", IndexName: "i"}
	agent := AgentConfig{
		ConnectionString:     "host;sub;rg;proj",
		ModelDeploymentName:  "gpt-4o",
		SearchConnectionName: "search",
		BingConnectionName:   "bing",
		IndexName:            "idx",
	}

	sets := map[string][]Requirement{
		"search": search.Requirements(),
		"agent":  agent.Requirements(),
	}
	for setName, reqs := range sets {
		if err := Require(reqs...); err != nil {
			t.Fatalf("%s: full set should pass: %v", setName, err)
		}
		for i := range reqs {
			trimmed := make([]Requirement, len(reqs))
			copy(trimmed, reqs)
			trimmed[i].Value = ""

			err := Require(trimmed...)
			var missing *MissingEnvError
			if !errors.As(err, &missing) {
				t.Fatalf("%s without %s: expected MissingEnvError, got %v", setName, reqs[i].Name, err)
			}
			if len(missing.Keys) != 1 || missing.Keys[0] != reqs[i].Name {
				t.Errorf("%s without %s: got keys %v", setName, reqs[i].Name, missing.Keys)
			}
		}
	}
}

func TestRequirements_Names(t *testing.T) {
	var names []string
	for _, r := range (AgentConfig{}).Requirements() {
		names = append(names, r.Name)
	}
	want := []string{
		"PROJECT_CONNECTION_STRING", "MODEL_DEPLOYMENT_NAME",
		"AI_SEARCH_CONNECTION_NAME", "BING_CONNECTION_NAME", "AI_SEARCH_INDEX_NAME",
	}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("name[%d]: got %q, want %q", i, names[i], want[i])
		}
	}
}
