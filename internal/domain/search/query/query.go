package query

// VectorQuery is a nearest-neighbor criterion. Exactly one of Text (vectorized
// by the index) or Vector (vectorized by the caller) is set.
type VectorQuery struct {
	Text   string
	Vector []float32
	K      int
	Field  string
}

// Query is one remote search call: lexical text, a vector criterion, or both.
type Query struct {
	Text   string
	Vector *VectorQuery
	Top    int
}
