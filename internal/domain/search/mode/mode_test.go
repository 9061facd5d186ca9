package mode

import "testing"

func TestIsValid(t *testing.T) {
	valid := []Mode{Hybrid, Vector, Keyword}
	for _, m := range valid {
		if !m.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", m)
		}
	}

	invalid := []Mode{"", "semantic", "full-text", "HYBRID"}
	for _, m := range invalid {
		if m.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", m)
		}
	}
}

func TestTitle(t *testing.T) {
	cases := map[Mode]string{
		Keyword: "Keyword Search",
		Vector:  "Vector Search",
		Hybrid:  "Hybrid Search",
	}
	for m, want := range cases {
		if got := m.Title(); got != want {
			t.Errorf("%q.Title() = %q, want %q", m, got, want)
		}
	}
}

func TestQueryParts(t *testing.T) {
	if Keyword.UsesVector() || !Keyword.UsesText() {
		t.Error("keyword should be text only")
	}
	if !Vector.UsesVector() || Vector.UsesText() {
		t.Error("vector should be vector only")
	}
	if !Hybrid.UsesVector() || !Hybrid.UsesText() {
		t.Error("hybrid should use both")
	}
}
