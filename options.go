package nereval

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/jamesainslie/go-nereval/tagscheme"
)

// Option configures an Evaluator.
type Option func(*config)

type config struct {
	scheme    tagscheme.Scheme
	numLabels int
	noneTag   string
	workers   int
	types     []string
	logger    *zap.Logger
}

func defaultConfig() config {
	return config{
		scheme:  tagscheme.BIO,
		noneTag: tagscheme.DefaultNoneTag,
		workers: runtime.NumCPU(),
		logger:  zap.NewNop(),
	}
}

// WithScheme sets the tagging scheme (default: BIO).
func WithScheme(s tagscheme.Scheme) Option {
	return func(c *config) {
		c.scheme = s
		c.numLabels = 0
	}
}

// WithNumLabels selects the tagging scheme from the classifier's label count:
// 2 is BO, 3 BIO, 4 BIOE and 5 BIOES. Other counts make New fail.
func WithNumLabels(n int) Option {
	return func(c *config) {
		c.numLabels = n
	}
}

// WithNoneTag sets the textual outside label (default: "O").
func WithNoneTag(tag string) Option {
	return func(c *config) {
		if tag != "" {
			c.noneTag = tag
		}
	}
}

// WithWorkers bounds the number of shards scored concurrently
// (default: runtime.NumCPU()).
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithEntityTypes registers entity types up front so they are reported, in
// this order, even when no span of that type is seen.
func WithEntityTypes(types ...string) Option {
	return func(c *config) {
		c.types = append(c.types, types...)
	}
}

// WithLogger sets the logger (default: zap.NewNop()).
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
