package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/praetorian-inc/formulaview/pkg/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetPreviewFlags() {
	configPath = ""
	verbose = false
	quiet = false
	previewRanges = nil
	previewFile = ""
	previewFormat = "text"
}

func TestRunPreview(t *testing.T) {
	resetPreviewFlags()
	previewRanges = []string{"n=0:3"}

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runPreview(cmd, []string{"n * 2"})
	require.NoError(t, err)

	want := "" +
		"+---+---+\n" +
		"| n | 0 |\n" +
		"+===+===+\n" +
		"| 0 | 0 |\n" +
		"| 1 | 2 |\n" +
		"| 2 | 4 |\n" +
		"+---+---+\n"
	assert.Equal(t, want, buf.String())
}

func TestRunPreviewFromFile(t *testing.T) {
	resetPreviewFlags()
	tmpDir := t.TempDir()
	previewFile = filepath.Join(tmpDir, "calc.py")
	require.NoError(t, os.WriteFile(previewFile, []byte("# n = range(5, 7)\n# m = range(0, 1)\n"), 0644))
	previewRanges = []string{"m=1:2"}

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runPreview(cmd, []string{"n * m"})
	require.NoError(t, err)

	want := "" +
		"+-----+---+\n" +
		"| n/m | 1 |\n" +
		"+=====+===+\n" +
		"| 5   | 5 |\n" +
		"| 6   | 6 |\n" +
		"+-----+---+\n"
	assert.Equal(t, want, buf.String())
}

func TestRunPreviewJSON(t *testing.T) {
	resetPreviewFlags()
	previewFormat = "json"
	previewRanges = []string{"n=0:2"}

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runPreview(cmd, []string{"1 / n"})
	require.NoError(t, err)

	var result struct {
		Canonical string   `json:"canonical"`
		Variables []string `json:"variables"`
		Failed    int      `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "1 / x", result.Canonical)
	assert.Equal(t, []string{"n"}, result.Variables)
	assert.Equal(t, 1, result.Failed)
}

func TestRunPreviewInvalidRange(t *testing.T) {
	resetPreviewFlags()
	previewRanges = []string{"n=0"}

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	err := runPreview(cmd, []string{"n"})
	assert.Error(t, err)
}

func TestRunPreviewUnknownFormat(t *testing.T) {
	resetPreviewFlags()
	previewFormat = "xml"

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	err := runPreview(cmd, []string{"1"})
	assert.Error(t, err)
}

func TestParseRangeFlag(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.RangeDirective
		wantErr bool
	}{
		{"start and end", "n=0:10", types.RangeDirective{Variable: "n", Start: 0, End: 10, Step: 1}, false},
		{"with step", "a[0]=1:5:2", types.RangeDirective{Variable: "a[0]", Start: 1, End: 5, Step: 2}, false},
		{"negative step", "k=10:0:-3", types.RangeDirective{Variable: "k", Start: 10, End: 0, Step: -3}, false},
		{"spaces", " n = 0 : 3 ", types.RangeDirective{Variable: "n", Start: 0, End: 3, Step: 1}, false},
		{"missing end", "n=0", types.RangeDirective{}, true},
		{"missing name", "=0:1", types.RangeDirective{}, true},
		{"missing equals", "n0:1", types.RangeDirective{}, true},
		{"zero step", "n=0:1:0", types.RangeDirective{}, true},
		{"not integers", "n=a:b", types.RangeDirective{}, true},
		{"too many parts", "n=0:1:2:3", types.RangeDirective{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRangeFlag(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRangeFlag_ZeroStepIs(t *testing.T) {
	_, err := parseRangeFlag("n=0:1:0")
	assert.ErrorIs(t, err, types.ErrZeroStep)
}
