package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/praetorian-inc/formulaview/pkg/types"
	"github.com/spf13/cobra"
)

var spansFormat string

var spansCmd = &cobra.Command{
	Use:   "spans <file>",
	Short: "List formula spans and range directives of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpans,
}

func init() {
	spansCmd.Flags().StringVar(&spansFormat, "format", "table", "Output format: table, json")
}

// spansOutput is the json form of a document's spans and directives.
type spansOutput struct {
	Path       string           `json:"path"`
	Spans      []spanOutput     `json:"spans"`
	Directives types.Directives `json:"directives"`
}

type spanOutput struct {
	Location   types.Location `json:"location"`
	Expression string         `json:"expression"`
}

func runSpans(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer engine.Close()

	text := string(content)
	out := spansOutput{Path: path, Spans: []spanOutput{}, Directives: engine.Directives(text)}
	for _, span := range engine.Locate(text) {
		out.Spans = append(out.Spans, spanOutput{
			Location:   types.NewLocation(text, span),
			Expression: span.Text(text),
		})
	}

	switch spansFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	case "table":
		return outputSpansTable(cmd, out)
	default:
		return fmt.Errorf("unknown output format: %s", spansFormat)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func outputSpansTable(cmd *cobra.Command, out spansOutput) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "POSITION\tEXPRESSION")
	for _, s := range out.Spans {
		fmt.Fprintf(w, "%d:%d\t%s\n", s.Location.Source.Start.Line, s.Location.Source.Start.Column, s.Expression)
	}

	if len(out.Directives) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "VARIABLE\tRANGE")
		names := make([]string, 0, len(out.Directives))
		for name := range out.Directives {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			d := out.Directives[name]
			fmt.Fprintf(w, "%s\trange(%d, %d, %d)\n", name, d.Start, d.End, d.Step)
		}
	}

	return w.Flush()
}
