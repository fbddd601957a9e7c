package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/praetorian-inc/formulaview/pkg/types"
	"github.com/spf13/cobra"
)

var (
	previewRanges []string
	previewFile   string
	previewFormat string
)

var previewCmd = &cobra.Command{
	Use:   "preview <expression>",
	Short: "Render the preview table of an expression",
	Long: `Sample an expression over its variables' ranges and print the table.

Ranges come from --file (range directives in a document) and --range
(name=start:end[:step]); --range wins when both name a variable.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringArrayVar(&previewRanges, "range", nil, "Variable range as name=start:end[:step] (repeatable)")
	previewCmd.Flags().StringVar(&previewFile, "file", "", "Take range directives from this document")
	previewCmd.Flags().StringVar(&previewFormat, "format", "text", "Output format: text, json")
}

func runPreview(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer engine.Close()

	directives := types.Directives{}
	if previewFile != "" {
		content, err := os.ReadFile(previewFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", previewFile, err)
		}
		directives = engine.Directives(string(content)).Clone()
	}

	for _, flag := range previewRanges {
		d, err := parseRangeFlag(flag)
		if err != nil {
			return err
		}
		directives[d.Variable] = d
	}

	p := engine.Preview(args[0], directives)

	switch previewFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(p)
	case "text":
		fmt.Fprintln(cmd.OutOrStdout(), p.Text)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", previewFormat)
	}
}

// parseRangeFlag parses name=start:end[:step].
func parseRangeFlag(s string) (types.RangeDirective, error) {
	name, bounds, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return types.RangeDirective{}, fmt.Errorf("invalid range %q: want name=start:end[:step]", s)
	}

	parts := strings.Split(bounds, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return types.RangeDirective{}, fmt.Errorf("invalid range %q: want name=start:end[:step]", s)
	}

	values := []int64{0, 0, 1}
	for i, part := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return types.RangeDirective{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
		values[i] = v
	}

	d := types.RangeDirective{Variable: name, Start: values[0], End: values[1], Step: values[2]}
	if err := d.Validate(); err != nil {
		return types.RangeDirective{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	return d, nil
}
