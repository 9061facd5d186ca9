package mode

// Mode is the search strategy.
type Mode string

// Search mode constants.
const (
	// Keyword is lexical matching only.
	Keyword Mode = "keyword"
	// Vector is nearest-neighbor matching against a vector field.
	Vector Mode = "vector"
	// Hybrid combines lexical and vector criteria in one remote query.
	Hybrid Mode = "hybrid"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Keyword || m == Vector || m == Hybrid
}

// Title returns the human-readable mode name used in rendered output.
func (m Mode) Title() string {
	switch m {
	case Keyword:
		return "Keyword Search"
	case Vector:
		return "Vector Search"
	case Hybrid:
		return "Hybrid Search"
	default:
		return string(m)
	}
}

// UsesVector reports whether the mode sends a vector query.
func (m Mode) UsesVector() bool { return m == Vector || m == Hybrid }

// UsesText reports whether the mode sends lexical search text.
func (m Mode) UsesText() bool { return m == Keyword || m == Hybrid }
