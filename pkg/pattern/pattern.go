// Package pattern defines the semantic data types tally renders.
// Patterns are pure data; renderers decide presentation.
package pattern

// PatternType identifies the kind of visualization pattern.
type PatternType string

const (
	PatternTypeSummary   PatternType = "summary"
	PatternTypeTestTable PatternType = "test-table"
)

// Pattern is the interface all visualization patterns implement.
type Pattern interface {
	Type() PatternType
}
