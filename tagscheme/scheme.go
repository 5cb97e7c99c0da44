// Package tagscheme describes the tag-class encodings a sequence tagger can
// emit and resolves raw class indices to tag kinds.
package tagscheme

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedScheme indicates a class count or name with no known scheme.
var ErrUnsupportedScheme = errors.New("tagscheme: unsupported tagging scheme")

// Kind is the role a tag plays in an entity span.
type Kind int

const (
	// None marks a token outside any entity.
	None Kind = iota
	// Begin opens a span.
	Begin
	// Inside continues an open span.
	Inside
	// End closes an open span.
	End
	// Single is a one-token entity.
	Single
)

func (k Kind) String() string {
	switch k {
	case Begin:
		return "B"
	case Inside:
		return "I"
	case End:
		return "E"
	case Single:
		return "S"
	default:
		return "O"
	}
}

// Scheme is a closed set of tagging encodings.
type Scheme int

const (
	// BO uses {O, B}. Adjacent B tokens of one type coalesce.
	BO Scheme = iota
	// BIO uses {O, B, I}. I grows the open span.
	BIO
	// BIOE uses {O, B, I, E}. E fixes the span end, I only confirms it.
	BIOE
	// BIOES adds S for isolated single-token entities.
	BIOES
)

var schemeNames = [...]string{"BO", "BIO", "BIOE", "BIOES"}

func (s Scheme) String() string {
	if s < BO || s > BIOES {
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
	return schemeNames[s]
}

// NumLabels returns the number of tag classes the scheme defines.
func (s Scheme) NumLabels() int {
	return int(s) + 2
}

// Valid reports whether s is one of the defined schemes.
func (s Scheme) Valid() bool {
	return s >= BO && s <= BIOES
}

// Kind resolves a class index to its kind. Indices outside the scheme's
// range, including the ignore sentinel, resolve to None.
func (s Scheme) Kind(index int) Kind {
	if !s.Valid() || index < 0 || index >= s.NumLabels() {
		return None
	}
	return kindByIndex[index]
}

// Defines reports whether the scheme has a class for k.
func (s Scheme) Defines(k Kind) bool {
	if !s.Valid() {
		return false
	}
	return int(k) < s.NumLabels()
}

// FromNumLabels selects the scheme with n classes.
func FromNumLabels(n int) (Scheme, error) {
	s := Scheme(n - 2)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d labels", ErrUnsupportedScheme, n)
	}
	return s, nil
}

// Parse returns the scheme named by name, ignoring case.
func Parse(name string) (Scheme, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range schemeNames {
		if n == upper {
			return Scheme(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedScheme, name)
}
