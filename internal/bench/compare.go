package bench

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-nereval"
)

// Run is one named set of predictions over a corpus.
type Run struct {
	Name      string
	Predicted [][]int
}

// RunResult holds the evaluation of one run.
type RunResult struct {
	Name   string
	Result *nereval.Result
}

// ParseRun splits a "name=path" argument. Without a name the file's base
// name, minus extension, is used.
func ParseRun(arg string) (name, path string, err error) {
	name, path, ok := strings.Cut(arg, "=")
	if !ok {
		path = arg
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if name == "" || path == "" {
		return "", "", fmt.Errorf("invalid run %q: want name=path", arg)
	}
	return name, path, nil
}

// LoadRuns loads one prediction file per "name=path" argument.
func LoadRuns(args []string) ([]Run, error) {
	runs := make([]Run, 0, len(args))
	for _, arg := range args {
		name, path, err := ParseRun(arg)
		if err != nil {
			return nil, err
		}
		rows, err := LoadPredictions(path)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", name, err)
		}
		runs = append(runs, Run{Name: name, Predicted: rows})
	}

	if dups := lo.FindDuplicatesBy(runs, func(r Run) string { return r.Name }); len(dups) > 0 {
		return nil, fmt.Errorf("duplicate run name %q", dups[0].Name)
	}
	return runs, nil
}

// Compare evaluates every run against the corpus gold rows and returns the
// results sorted by micro-F1, best first. Ties keep argument order.
func Compare(ctx context.Context, ev *nereval.Evaluator, c *Corpus, runs []Run) ([]RunResult, error) {
	if len(runs) == 0 {
		return nil, ErrNoPredictions
	}

	results := make([]RunResult, len(runs))
	g, gctx := errgroup.WithContext(ctx)
	for i, run := range runs {
		g.Go(func() error {
			batch, err := c.Batch(run.Predicted)
			if err != nil {
				return fmt.Errorf("run %s: %w", run.Name, err)
			}
			res, err := ev.Evaluate(gctx, batch)
			if err != nil {
				return fmt.Errorf("run %s: %w", run.Name, err)
			}
			results[i] = RunResult{Name: run.Name, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Result.MicroF1() > results[j].Result.MicroF1()
	})
	return results, nil
}

// Names returns the run names in order.
func Names(results []RunResult) []string {
	return lo.Map(results, func(r RunResult, _ int) string { return r.Name })
}
