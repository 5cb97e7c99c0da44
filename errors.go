package nereval

import (
	"errors"

	"github.com/jamesainslie/go-nereval/decode"
	"github.com/jamesainslie/go-nereval/tagscheme"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrShapeMismatch indicates gold and predicted arrays that do not line up.
	ErrShapeMismatch = decode.ErrShapeMismatch

	// ErrUnsupportedScheme indicates a label count with no tagging scheme.
	ErrUnsupportedScheme = tagscheme.ErrUnsupportedScheme

	// ErrEmptyBatch indicates a batch with no contexts to score.
	ErrEmptyBatch = errors.New("nereval: empty batch")

	// ErrContextCountMismatch indicates typed contexts that do not match the
	// number of label rows.
	ErrContextCountMismatch = errors.New("nereval: context count does not match label rows")
)
