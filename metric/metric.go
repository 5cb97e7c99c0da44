// Package metric accumulates entity-level true positive, false positive and
// false negative counts and derives precision, recall and F1 from them.
package metric

import (
	"errors"
	"fmt"

	"github.com/jamesainslie/go-nereval/decode"
)

// ErrShapeMismatch indicates gold and predicted span lists of different
// lengths.
var ErrShapeMismatch = errors.New("metric: gold and predicted context counts differ")

// Counts holds the raw counters for one entity type.
type Counts struct {
	TP int `json:"tp" yaml:"tp"`
	FP int `json:"fp" yaml:"fp"`
	FN int `json:"fn" yaml:"fn"`
}

// Add returns the element-wise sum of c and o.
func (c Counts) Add(o Counts) Counts {
	return Counts{TP: c.TP + o.TP, FP: c.FP + o.FP, FN: c.FN + o.FN}
}

// Precision is tp/(tp+fp), or 0 without predictions.
func (c Counts) Precision() float64 {
	return ratio(c.TP, c.TP+c.FP)
}

// Recall is tp/(tp+fn), or 0 without gold entities.
func (c Counts) Recall() float64 {
	return ratio(c.TP, c.TP+c.FN)
}

// F1 is the harmonic mean of precision and recall, or 0 when both are 0.
func (c Counts) F1() float64 {
	p, r := c.Precision(), c.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// Metric is an accumulator keyed by entity type. Types are registered on
// first use and reported in registration order. A Metric is not safe for
// concurrent use; parallel workers should each own one and Merge at the end.
type Metric struct {
	order  []string
	counts map[string]*Counts
}

// New returns a Metric with types pre-registered in the given order.
func New(types ...string) *Metric {
	m := &Metric{counts: make(map[string]*Counts, len(types))}
	for _, t := range types {
		m.Register(t)
	}
	return m
}

// Register adds t to the registry if it is not already known.
func (m *Metric) Register(t string) {
	m.entry(t)
}

func (m *Metric) entry(t string) *Counts {
	if m.counts == nil {
		m.counts = make(map[string]*Counts)
	}
	c, ok := m.counts[t]
	if !ok {
		c = &Counts{}
		m.counts[t] = c
		m.order = append(m.order, t)
	}
	return c
}

// AddTP counts s as a true positive for its type.
func (m *Metric) AddTP(s decode.Span) { m.entry(s.Type).TP++ }

// AddFP counts s as a false positive for its type.
func (m *Metric) AddFP(s decode.Span) { m.entry(s.Type).FP++ }

// AddFN counts s as a false negative for its type.
func (m *Metric) AddFN(s decode.Span) { m.entry(s.Type).FN++ }

// Types returns the registered entity types in registration order.
func (m *Metric) Types() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Counts returns the counters for t. Unknown types yield zero counts.
func (m *Metric) Counts(t string) Counts {
	if c, ok := m.counts[t]; ok {
		return *c
	}
	return Counts{}
}

// Precision returns the precision for t.
func (m *Metric) Precision(t string) float64 { return m.Counts(t).Precision() }

// Recall returns the recall for t.
func (m *Metric) Recall(t string) float64 { return m.Counts(t).Recall() }

// F1 returns the F1 score for t.
func (m *Metric) F1(t string) float64 { return m.Counts(t).F1() }

// Micro sums the counters of every registered type.
func (m *Metric) Micro() Counts {
	var total Counts
	for _, t := range m.order {
		total = total.Add(*m.counts[t])
	}
	return total
}

// MicroAvgPrecision is the precision of the pooled counts.
func (m *Metric) MicroAvgPrecision() float64 { return m.Micro().Precision() }

// MicroAvgRecall is the recall of the pooled counts.
func (m *Metric) MicroAvgRecall() float64 { return m.Micro().Recall() }

// MicroAvgF1 is the F1 of the pooled counts. It weights frequent types more
// heavily than an average of per-type F1 would.
func (m *Metric) MicroAvgF1() float64 { return m.Micro().F1() }

// Merge adds the counters of o into m. Types new to m are appended in o's
// registration order.
func (m *Metric) Merge(o *Metric) {
	if o == nil {
		return
	}
	for _, t := range o.order {
		c := m.entry(t)
		*c = c.Add(*o.counts[t])
	}
}

// Accumulate scores one pass of parallel gold and predicted span lists. A
// predicted span found by value in its context's gold list is a true
// positive, otherwise a false positive; a gold span missing from the
// predicted list is a false negative.
func (m *Metric) Accumulate(gold, predicted [][]decode.Span) error {
	if len(gold) != len(predicted) {
		return fmt.Errorf("%w: %d gold, %d predicted", ErrShapeMismatch, len(gold), len(predicted))
	}
	for i := range gold {
		m.accumulateContext(gold[i], predicted[i])
	}
	return nil
}

func (m *Metric) accumulateContext(gold, predicted []decode.Span) {
	goldSet := spanSet(gold)
	predSet := spanSet(predicted)

	for _, s := range predicted {
		if _, ok := goldSet[s]; ok {
			m.AddTP(s)
		} else {
			m.AddFP(s)
		}
	}
	for _, s := range gold {
		if _, ok := predSet[s]; !ok {
			m.AddFN(s)
		}
	}
}

func spanSet(spans []decode.Span) map[decode.Span]struct{} {
	set := make(map[decode.Span]struct{}, len(spans))
	for _, s := range spans {
		set[s] = struct{}{}
	}
	return set
}
