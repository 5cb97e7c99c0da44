package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jamesainslie/go-nereval/internal/bench"
	"github.com/jamesainslie/go-nereval/metric"
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Score predictions against a dataset",
	Long: `Decode gold and predicted tag rows into entity spans and print the
per-type and micro-averaged scores.

Predictions come from --predictions when given, otherwise from the
"predicted" field of every dataset record.

Examples:
  # Score predictions stored in the dataset
  nereval eval --data dev.jsonl

  # Score a prediction file as JSON and export Prometheus gauges
  nereval eval --data dev.jsonl --predictions crf.jsonl --format json --metrics-file eval.prom`,
	Args: cobra.NoArgs,
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().String("data", "", "JSON-Lines dataset (required)")
	evalCmd.Flags().String("predictions", "", "JSON-Lines prediction file")
	evalCmd.Flags().String("run", "default", "run label for the metrics file")
	evalCmd.Flags().String("format", "text", "report format (text, json, yaml)")
	evalCmd.Flags().String("metrics-file", "", "write Prometheus textfile gauges to this path")
	_ = evalCmd.MarkFlagRequired("data")

	mustBindPFlag("report.format", evalCmd.Flags().Lookup("format"))
	mustBindPFlag("metrics_file", evalCmd.Flags().Lookup("metrics-file"))
}

func runEval(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	dataPath, _ := cmd.Flags().GetString("data")
	predPath, _ := cmd.Flags().GetString("predictions")
	runName, _ := cmd.Flags().GetString("run")

	ev, err := newEvaluator(logger)
	if err != nil {
		return err
	}

	corpus, err := bench.LoadCorpus(dataPath)
	if err != nil {
		return err
	}
	logger.Debug("corpus loaded", zap.String("path", dataPath), zap.Int("contexts", len(corpus.Contexts)))

	var predicted [][]int
	if predPath != "" {
		if predicted, err = bench.LoadPredictions(predPath); err != nil {
			return err
		}
	}

	batch, err := corpus.Batch(predicted)
	if err != nil {
		return fmt.Errorf("%s: %w", dataPath, err)
	}

	res, err := ev.Evaluate(ctx, batch)
	if err != nil {
		return err
	}

	report := res.Report()
	if err := report.Write(cmd.OutOrStdout(), viper.GetString("report.format")); err != nil {
		return err
	}

	if path := viper.GetString("metrics_file"); path != "" {
		if err := bench.WriteMetricsFile(path, map[string]metric.Report{runName: report}); err != nil {
			return err
		}
		logger.Info("metrics file written", zap.String("path", path))
	}
	return nil
}
