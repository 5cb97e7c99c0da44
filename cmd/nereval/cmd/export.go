package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jamesainslie/go-nereval/export"
	"github.com/jamesainslie/go-nereval/internal/bench"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write word-level predictions as token/gold/predicted TSV",
	Long: `Project sub-word predictions back onto the original words, taking the
tag of each word's first sub-token, and write one token per line with its gold
and predicted tags. Contexts that ask about different entity types of the same
sentence are merged into one block.

Examples:
  nereval export --data test.jsonl --predictions crf.jsonl --out test.tsv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("data", "", "JSON-Lines dataset (required)")
	exportCmd.Flags().String("predictions", "", "JSON-Lines prediction file")
	exportCmd.Flags().String("out", "-", "output path, - for stdout")
	exportCmd.Flags().String("pad-tag", export.DefaultPadTag, "tag for words no context assigned")
	_ = exportCmd.MarkFlagRequired("data")

	mustBindPFlag("pad_tag", exportCmd.Flags().Lookup("pad-tag"))
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	dataPath, _ := cmd.Flags().GetString("data")
	predPath, _ := cmd.Flags().GetString("predictions")
	outPath, _ := cmd.Flags().GetString("out")

	ev, err := newEvaluator(logger)
	if err != nil {
		return err
	}
	corpus, err := bench.LoadCorpus(dataPath)
	if err != nil {
		return err
	}

	predicted := corpus.Predicted
	if predPath != "" {
		if predicted, err = bench.LoadPredictions(predPath); err != nil {
			return err
		}
	}
	if predicted == nil {
		return fmt.Errorf("%s: %w", dataPath, bench.ErrNoPredictions)
	}

	sentences, err := export.Project(corpus.Contexts, predicted, export.Config{
		Scheme:  ev.Scheme(),
		NoneTag: viper.GetString("none_tag"),
		PadTag:  viper.GetString("pad_tag"),
	})
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if outPath != "-" {
		f, cerr := os.Create(outPath)
		if cerr != nil {
			return fmt.Errorf("create output: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if err := export.WriteTSV(w, sentences); err != nil {
		return fmt.Errorf("writing tsv: %w", err)
	}
	logger.Info("predictions exported", zap.String("out", outPath), zap.Int("sentences", len(sentences)))
	return nil
}
