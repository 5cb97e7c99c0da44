// Package decode turns per-token tag-class predictions into entity spans.
package decode

import "fmt"

// Span is one entity mention inside a context. Start and End are inclusive
// sub-word positions. Spans compare by value on all four fields.
type Span struct {
	Context int    `json:"context" yaml:"context"`
	Start   int    `json:"start" yaml:"start"`
	End     int    `json:"end" yaml:"end"`
	Type    string `json:"type" yaml:"type"`
}

func (s Span) String() string {
	return fmt.Sprintf("%s[%d:%d:%d]", s.Type, s.Context, s.Start, s.End)
}

// Len returns the number of positions the span covers.
func (s Span) Len() int {
	return s.End - s.Start + 1
}

// CatchAll is the entity type used when no type system is supplied.
const CatchAll = "TAG"

// EntityTyper resolves the single candidate entity type of a context.
type EntityTyper interface {
	EntityType(context int) string
}

// ConstantType types every context identically.
type ConstantType string

// EntityType implements EntityTyper.
func (c ConstantType) EntityType(int) string {
	return string(c)
}

// TypeFunc adapts a function to EntityTyper.
type TypeFunc func(context int) string

// EntityType implements EntityTyper.
func (f TypeFunc) EntityType(context int) string {
	return f(context)
}

// Count returns the total number of spans across contexts.
func Count(spans [][]Span) int {
	n := 0
	for _, s := range spans {
		n += len(s)
	}
	return n
}
