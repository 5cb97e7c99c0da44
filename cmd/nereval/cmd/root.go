// Package cmd holds the nereval cobra commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jamesainslie/go-nereval"
	"github.com/jamesainslie/go-nereval/internal/logging"
)

// Version is reported by the version command.
var Version = "dev"

var (
	cfgFile   string
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "nereval",
	Short: "Entity-level evaluation of NER tag predictions",
	Long: `nereval decodes gold and predicted tag sequences into entity spans and
reports exact-match precision, recall and F1 per entity type and micro-averaged.

Configuration is read from --config, ./nereval.yaml or ~/.nereval/nereval.yaml,
and every key can be overridden with a NEREVAL_ environment variable
(for example NEREVAL_NUM_LABELS=4 or NEREVAL_LOG_LEVEL=debug).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configErr
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./nereval.yaml or ~/.nereval/nereval.yaml)")
	pf.Int("num-labels", 3, "number of tag classes: 2 BO, 3 BIO, 4 BIOE, 5 BIOES")
	pf.String("none-tag", "O", "label of the outside class")
	pf.Int("workers", 0, "concurrent scoring shards (0 = number of CPUs)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-style", "console", "log style (console, json, noop)")

	mustBindPFlag("num_labels", pf.Lookup("num-labels"))
	mustBindPFlag("none_tag", pf.Lookup("none-tag"))
	mustBindPFlag("workers", pf.Lookup("workers"))
	mustBindPFlag("log.level", pf.Lookup("log-level"))
	mustBindPFlag("log.style", pf.Lookup("log-style"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nereval")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".nereval"))
		}
	}

	viper.SetEnvPrefix("NEREVAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = fmt.Errorf("reading config: %w", err)
		}
	}
}

func mustBindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func newLogger() *zap.Logger {
	return logging.NewLogger(&logging.Config{
		Level: logging.Level(viper.GetString("log.level")),
		Style: logging.Style(viper.GetString("log.style")),
	})
}

func newEvaluator(logger *zap.Logger) (*nereval.Evaluator, error) {
	return nereval.New(
		nereval.WithNumLabels(viper.GetInt("num_labels")),
		nereval.WithNoneTag(viper.GetString("none_tag")),
		nereval.WithWorkers(viper.GetInt("workers")),
		nereval.WithLogger(logger),
	)
}
