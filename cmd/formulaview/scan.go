package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/praetorian-inc/formulaview/pkg/enum"
	"github.com/praetorian-inc/formulaview/pkg/preview"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	scanExtensions    []string
	scanIncludeHidden bool
	scanMaxFileSize   int64
	scanFormat        string
	scanColor         string
	scanReaders       int
)

var scanCmd = &cobra.Command{
	Use:   "scan <target>",
	Short: "Preview every formula in a file or directory",
	Long:  "Walk a file or directory, honoring .gitignore, and render the preview of every formula found",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringSliceVar(&scanExtensions, "ext", nil, "File extensions to scan (default from config)")
	scanCmd.Flags().BoolVar(&scanIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	scanCmd.Flags().Int64Var(&scanMaxFileSize, "max-file-size", 0, "Maximum file size to scan in bytes (default from config)")
	scanCmd.Flags().StringVar(&scanFormat, "format", "human", "Output format: json, human")
	scanCmd.Flags().StringVar(&scanColor, "color", "auto", "Color output: auto, always, never")
	scanCmd.Flags().IntVar(&scanReaders, "readers", 0, "Number of files read concurrently (0 = one per CPU)")
}

// fileResult is the json form of one scanned file.
type fileResult struct {
	Path     string                   `json:"path"`
	Formulas []preview.FormulaPreview `json:"formulas"`
}

// styles holds color formatters for human output
type styles struct {
	path       *color.Color
	position   *color.Color
	expression *color.Color
	warning    *color.Color
}

// newStyles creates color formatters for scan output
// enabled=false respects --color=never and NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		path:       color.New(color.Bold, color.FgHiWhite),
		position:   color.New(color.FgHiBlue),
		expression: color.New(color.FgHiGreen),
		warning:    color.New(color.FgYellow),
	}

	if !enabled {
		s.path.DisableColor()
		s.position.DisableColor()
		s.expression.DisableColor()
		s.warning.DisableColor()
	}

	return s
}

func runScan(cmd *cobra.Command, args []string) error {
	target := args[0]

	// Validate target exists
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("target does not exist: %s", target)
	}
	if scanFormat != "json" && scanFormat != "human" {
		return fmt.Errorf("unknown output format: %s", scanFormat)
	}

	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer engine.Close()

	enumerator := createEnumerator(cmd, target, engine)
	s := newStyles(colorEnabled(scanColor))

	fileCount := 0
	formulaCount := 0
	failedCount := 0
	results := []fileResult{}

	err = enumerator.Enumerate(context.Background(), func(doc enum.Document) error {
		fileCount++
		formulas := engine.PreviewAll(string(doc.Content))
		if len(formulas) == 0 {
			return nil
		}

		formulaCount += len(formulas)
		for _, f := range formulas {
			if f.Preview.Failed > 0 {
				failedCount++
			}
		}

		if scanFormat == "json" {
			results = append(results, fileResult{Path: doc.Path, Formulas: formulas})
			return nil
		}
		outputFileHuman(cmd, s, doc.Path, formulas)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}

	// Summary goes to stderr for json to keep stdout pure JSON
	summary := cmd.OutOrStdout()
	if scanFormat == "json" {
		summary = cmd.ErrOrStderr()
	}
	if !quiet {
		fmt.Fprintf(summary, "Scan complete: %d files, %d formulas", fileCount, formulaCount)
		if failedCount > 0 {
			fmt.Fprintf(summary, ", %s", s.warning.Sprintf("%d with failed cells", failedCount))
		}
		fmt.Fprintln(summary)
	}

	if scanFormat == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// createEnumerator builds a filesystem enumerator from the config's scan
// section, overridden by any flags the user set.
func createEnumerator(cmd *cobra.Command, target string, engine *preview.Engine) enum.Enumerator {
	scan := engine.Config().Scan
	config := enum.Config{
		Root:           target,
		Extensions:     scan.Extensions,
		IncludeHidden:  scan.IncludeHidden,
		MaxFileSize:    scan.MaxFileSize,
		FollowSymlinks: false,
		Readers:        scanReaders,
	}

	if cmd.Flags().Changed("ext") {
		config.Extensions = scanExtensions
	}
	if cmd.Flags().Changed("include-hidden") {
		config.IncludeHidden = scanIncludeHidden
	}
	if cmd.Flags().Changed("max-file-size") {
		config.MaxFileSize = scanMaxFileSize
	}

	return enum.NewFilesystemEnumerator(config)
}

// colorEnabled resolves a --color value. "auto" enables color when stdout is
// a terminal and NO_COLOR is unset.
func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		color.NoColor = !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv("NO_COLOR") != ""
	}
	return !color.NoColor
}

func outputFileHuman(cmd *cobra.Command, s *styles, path string, formulas []preview.FormulaPreview) {
	out := cmd.OutOrStdout()
	for _, f := range formulas {
		start := f.Location.Source.Start
		fmt.Fprintf(out, "%s%s %s\n",
			s.path.Sprint(path),
			s.position.Sprintf(":%d:%d", start.Line, start.Column),
			s.expression.Sprint(f.Expression))
		for _, line := range strings.Split(f.Preview.Text, "\n") {
			fmt.Fprintf(out, "    %s\n", line)
		}
		fmt.Fprintln(out)
	}
}
