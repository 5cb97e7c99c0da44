package nereval

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-nereval/decode"
	"github.com/jamesainslie/go-nereval/metric"
	"github.com/jamesainslie/go-nereval/tagscheme"
)

// Evaluator decodes gold and predicted tag rows into spans and scores them.
// It is safe for concurrent use.
type Evaluator struct {
	scheme  tagscheme.Scheme
	layout  tagscheme.Layout
	workers int
	types   []string
	logger  *zap.Logger
}

// Result is the outcome of one Evaluate call.
type Result struct {
	Gold      [][]decode.Span
	Predicted [][]decode.Span
	Metric    *metric.Metric
}

// MicroF1 returns the pooled F1 used for model selection.
func (r *Result) MicroF1() float64 {
	return r.Metric.MicroAvgF1()
}

// Report snapshots the result's scores.
func (r *Result) Report() metric.Report {
	return r.Metric.Report()
}

// New creates an Evaluator.
func New(opts ...Option) (*Evaluator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	scheme := cfg.scheme
	if cfg.numLabels != 0 {
		s, err := tagscheme.FromNumLabels(cfg.numLabels)
		if err != nil {
			return nil, err
		}
		scheme = s
	}
	if !scheme.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}

	return &Evaluator{
		scheme:  scheme,
		layout:  tagscheme.NewLayout(cfg.noneTag),
		workers: cfg.workers,
		types:   cfg.types,
		logger:  cfg.logger,
	}, nil
}

// Scheme returns the active tagging scheme.
func (e *Evaluator) Scheme() tagscheme.Scheme {
	return e.scheme
}

// Layout returns the tag index layout for the configured none tag.
func (e *Evaluator) Layout() tagscheme.Layout {
	return e.layout
}

// shard is a contiguous run of contexts [from, to).
type shard struct {
	from, to int
}

type shardResult struct {
	gold, predicted [][]decode.Span
	metric          *metric.Metric
}

// Evaluate decodes and scores b. Shards are merged in order, so spans and
// entity types come out exactly as a sequential pass would produce them.
func (e *Evaluator) Evaluate(ctx context.Context, b Batch) (*Result, error) {
	if err := e.validate(b); err != nil {
		return nil, err
	}

	start := time.Now()
	var typer decode.EntityTyper = decode.ConstantType(decode.CatchAll)
	types := e.types
	if len(b.Contexts) > 0 {
		typer = b.Contexts
	} else if len(types) == 0 {
		types = []string{decode.CatchAll}
	}

	shards := e.shards(len(b.Gold))
	results := make([]shardResult, len(shards))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, sh := range shards {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.scoreShard(b, sh, typer, types)
			if err != nil {
				return fmt.Errorf("contexts [%d, %d): %w", sh.from, sh.to, err)
			}
			e.logger.Debug("shard scored",
				zap.Int("from", sh.from),
				zap.Int("to", sh.to),
				zap.Int("gold_spans", decode.Count(res.gold)),
				zap.Int("predicted_spans", decode.Count(res.predicted)))
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Result{
		Gold:      make([][]decode.Span, 0, len(b.Gold)),
		Predicted: make([][]decode.Span, 0, len(b.Gold)),
		Metric:    metric.New(types...),
	}
	for _, r := range results {
		out.Gold = append(out.Gold, r.gold...)
		out.Predicted = append(out.Predicted, r.predicted...)
		out.Metric.Merge(r.metric)
	}

	e.logger.Info("evaluation complete",
		zap.Int("contexts", len(b.Gold)),
		zap.Int("shards", len(shards)),
		zap.String("scheme", e.scheme.String()),
		zap.Float64("micro_f1", out.MicroF1()),
		zap.Duration("elapsed", time.Since(start)))

	return out, nil
}

func (e *Evaluator) validate(b Batch) error {
	if len(b.Gold) == 0 {
		return ErrEmptyBatch
	}
	if err := decode.CheckShape(b.Predicted, b.Gold); err != nil {
		return err
	}
	if len(b.Contexts) > 0 && len(b.Contexts) != len(b.Gold) {
		return fmt.Errorf("%w: %d contexts, %d rows", ErrContextCountMismatch, len(b.Contexts), len(b.Gold))
	}
	return nil
}

func (e *Evaluator) scoreShard(b Batch, sh shard, typer decode.EntityTyper, types []string) (shardResult, error) {
	gold, err := decode.DecodeRange(b.Gold, b.Gold, sh.from, sh.to, e.scheme, typer)
	if err != nil {
		return shardResult{}, fmt.Errorf("decoding gold: %w", err)
	}
	predicted, err := decode.DecodeRange(b.Predicted, b.Gold, sh.from, sh.to, e.scheme, typer)
	if err != nil {
		return shardResult{}, fmt.Errorf("decoding predictions: %w", err)
	}

	m := metric.New(types...)
	if err := m.Accumulate(gold, predicted); err != nil {
		return shardResult{}, err
	}
	return shardResult{gold: gold, predicted: predicted, metric: m}, nil
}

// shards splits n contexts into at most e.workers contiguous runs.
func (e *Evaluator) shards(n int) []shard {
	count := min(e.workers, n)
	size := (n + count - 1) / count

	out := make([]shard, 0, count)
	for from := 0; from < n; from += size {
		out = append(out, shard{from: from, to: min(from+size, n)})
	}
	return out
}
