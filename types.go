package nereval

import "github.com/jamesainslie/go-nereval/decode"

// Word is one token of the original sentence with its gold tags.
type Word struct {
	Text string   `json:"text" yaml:"text"`
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Sentence is the original word-level token sequence.
type Sentence []Word

// Texts returns the word texts in order.
func (s Sentence) Texts() []string {
	out := make([]string, len(s))
	for i, w := range s {
		out[i] = w.Text
	}
	return out
}

// SubToken is one model input position. Offset is the index of the
// sentence word it was cut from. TokenType 0 marks the query segment.
type SubToken struct {
	Text      string `json:"text" yaml:"text"`
	Offset    int    `json:"offset" yaml:"offset"`
	TokenType int    `json:"token_type" yaml:"token_type"`
}

// Context pairs a sub-word sequence with the single entity type it is asked
// about.
type Context struct {
	Index     int        `json:"index" yaml:"index"`
	Entity    string     `json:"entity" yaml:"entity"`
	Sentence  Sentence   `json:"sentence,omitempty" yaml:"sentence,omitempty"`
	SubTokens []SubToken `json:"sub_tokens,omitempty" yaml:"sub_tokens,omitempty"`
}

// Contexts resolves span types by context index.
type Contexts []Context

var _ decode.EntityTyper = Contexts(nil)

// EntityType implements decode.EntityTyper. Out-of-range indices and
// untyped contexts resolve to decode.CatchAll.
func (c Contexts) EntityType(i int) string {
	if i < 0 || i >= len(c) || c[i].Entity == "" {
		return decode.CatchAll
	}
	return c[i].Entity
}

// Batch is one evaluation pass. Gold and Predicted hold one row of tag
// indices per context; Gold doubles as the ignore mask. Contexts is optional.
type Batch struct {
	Contexts  Contexts
	Gold      [][]int
	Predicted [][]int
}
