package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jamesainslie/go-nereval/internal/bench"
	"github.com/jamesainslie/go-nereval/metric"
)

var compareCmd = &cobra.Command{
	Use:   "compare name=path [name=path...]",
	Short: "Rank several prediction files by micro-F1",
	Long: `Score each prediction file against the same dataset and list the runs
best first by micro-averaged F1.

Examples:
  nereval compare --data dev.jsonl crf=out/crf.jsonl softmax=out/softmax.jsonl`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().String("data", "", "JSON-Lines dataset (required)")
	compareCmd.Flags().String("metrics-file", "", "write Prometheus textfile gauges for every run to this path")
	_ = compareCmd.MarkFlagRequired("data")
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	dataPath, _ := cmd.Flags().GetString("data")

	ev, err := newEvaluator(logger)
	if err != nil {
		return err
	}
	corpus, err := bench.LoadCorpus(dataPath)
	if err != nil {
		return err
	}
	runs, err := bench.LoadRuns(args)
	if err != nil {
		return err
	}

	results, err := bench.Compare(ctx, ev, corpus, runs)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tRUN\tPRECISION\tRECALL\tF1")
	for i, r := range results {
		m := r.Result.Metric
		fmt.Fprintf(tw, "%d\t%s\t%.4f\t%.4f\t%.4f\n",
			i+1, r.Name, m.MicroAvgPrecision(), m.MicroAvgRecall(), m.MicroAvgF1())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	metricsPath, _ := cmd.Flags().GetString("metrics-file")
	if metricsPath != "" {
		reports := make(map[string]metric.Report, len(results))
		for _, r := range results {
			reports[r.Name] = r.Result.Report()
		}
		if err := bench.WriteMetricsFile(metricsPath, reports); err != nil {
			return err
		}
		logger.Info("metrics file written", zap.String("path", metricsPath), zap.Int("runs", len(results)))
	}
	return nil
}
