package main

import (
	"fmt"
	"io"

	"github.com/praetorian-inc/formulaview/pkg/config"
	"github.com/praetorian-inc/formulaview/pkg/preview"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "formulaview",
	Short: "Formulaview - tabular previews of formula(...) expressions",
	Long: `Formulaview finds formula(...) calls in source text, samples their free
variables over integer ranges declared in comments, and renders the results
as a text table.

Ranges are declared with comments such as "# n = range(0, 10, 2)".`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML configuration file")

	// Add subcommands
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(spansCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// =============================================================================
// HELPERS
// =============================================================================

// writerLogger logs engine diagnostics to a writer, one line per message.
type writerLogger struct {
	w io.Writer
}

func (l writerLogger) Log(format string, args ...interface{}) {
	fmt.Fprintf(l.w, "[formulaview] "+format+"\n", args...)
}

// loadConfig returns the built-in configuration, overlaid with --config.
func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newEngine builds a preview engine from the effective configuration. With
// --verbose it logs to the command's stderr.
func newEngine(cmd *cobra.Command) (*preview.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	var opts []preview.Option
	if verbose && !quiet {
		opts = append(opts, preview.WithLogger(writerLogger{w: cmd.ErrOrStderr()}))
	}

	engine, err := preview.New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	return engine, nil
}
