package decode

import (
	"errors"
	"fmt"

	"github.com/jamesainslie/go-nereval/tagscheme"
)

// ErrShapeMismatch indicates tag and mask arrays that do not line up.
var ErrShapeMismatch = errors.New("decode: shape mismatch")

// rules holds the scheme-dependent parts of the decoding automaton.
// Everything else (ignore masking, type checks, closing on O) is shared.
type rules struct {
	// coalesceBegin merges a B into an open span of the same type.
	coalesceBegin bool
	// insideGrows moves the span end on I. Schemes with an explicit E
	// marker leave the end where it is.
	insideGrows bool
}

var ruleTable = map[tagscheme.Scheme]rules{
	tagscheme.BO:    {coalesceBegin: true},
	tagscheme.BIO:   {insideGrows: true},
	tagscheme.BIOE:  {},
	tagscheme.BIOES: {},
}

// Decode converts tag sequences into spans, one list per context in order of
// first occurrence. mask is the gold label array: positions where it equals
// tagscheme.Ignore never start, extend or close a span, whichever side is
// being decoded. tags and mask must have the same number of rows and each
// row the same length.
func Decode(tags, mask [][]int, scheme tagscheme.Scheme, typer EntityTyper) ([][]Span, error) {
	r, ok := ruleTable[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %s", tagscheme.ErrUnsupportedScheme, scheme)
	}
	if err := CheckShape(tags, mask); err != nil {
		return nil, err
	}
	if typer == nil {
		typer = ConstantType(CatchAll)
	}

	out := make([][]Span, len(tags))
	for ci := range tags {
		out[ci] = decodeRow(ci, tags[ci], mask[ci], scheme, r, typer)
	}
	return out, nil
}

// DecodeRange decodes rows [from, to) and reports them with their original
// context indices. Shapes must already be validated.
func DecodeRange(tags, mask [][]int, from, to int, scheme tagscheme.Scheme, typer EntityTyper) ([][]Span, error) {
	r, ok := ruleTable[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %s", tagscheme.ErrUnsupportedScheme, scheme)
	}
	if from < 0 || to > len(tags) || to > len(mask) || from > to {
		return nil, fmt.Errorf("%w: range [%d, %d) over %d rows", ErrShapeMismatch, from, to, len(tags))
	}
	if typer == nil {
		typer = ConstantType(CatchAll)
	}

	out := make([][]Span, 0, to-from)
	for ci := from; ci < to; ci++ {
		out = append(out, decodeRow(ci, tags[ci], mask[ci], scheme, r, typer))
	}
	return out, nil
}

// CheckShape verifies that tags and mask have identical row counts and row
// lengths.
func CheckShape(tags, mask [][]int) error {
	if len(tags) != len(mask) {
		return fmt.Errorf("%w: %d tag rows, %d mask rows", ErrShapeMismatch, len(tags), len(mask))
	}
	for i := range tags {
		if len(tags[i]) != len(mask[i]) {
			return fmt.Errorf("%w: context %d has %d tags, %d mask positions",
				ErrShapeMismatch, i, len(tags[i]), len(mask[i]))
		}
	}
	return nil
}

// decodeRow runs the single left-to-right pass over one context. Spans are
// appended when created, so a span whose extension is interrupted keeps the
// boundary it had at that point.
func decodeRow(ci int, tags, mask []int, scheme tagscheme.Scheme, r rules, typer EntityTyper) []Span {
	var spans []Span
	open := -1

	for p, raw := range tags {
		if mask[p] == tagscheme.Ignore {
			open = -1
			continue
		}

		switch scheme.Kind(raw) {
		case tagscheme.Begin:
			typ := typer.EntityType(ci)
			if r.coalesceBegin && open >= 0 && spans[open].Type == typ {
				spans[open].End = p
				continue
			}
			spans = append(spans, Span{Context: ci, Start: p, End: p, Type: typ})
			open = len(spans) - 1

		case tagscheme.Single:
			spans = append(spans, Span{Context: ci, Start: p, End: p, Type: typer.EntityType(ci)})
			open = -1

		case tagscheme.Inside:
			if open < 0 || spans[open].Type != typer.EntityType(ci) {
				open = -1
				continue
			}
			if r.insideGrows {
				spans[open].End = p
			}

		case tagscheme.End:
			if open < 0 || spans[open].Type != typer.EntityType(ci) {
				open = -1
				continue
			}
			spans[open].End = p

		default:
			open = -1
		}
	}

	return spans
}
