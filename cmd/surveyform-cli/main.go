package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose  bool
	specPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "surveyform",
	Short: "Research survey collection tool",
	Long: `surveyform runs declarative research surveys: serve the web flow,
fill a survey from the terminal, or render a form to static HTML.

Surveys are defined as YAML form specs; without --spec the built-in
investment research survey is used.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&specPath, "spec", "", "path to a YAML form spec (default: built-in investment research survey)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(renderCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
