package pretty_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/figmark/internal/ui/pretty"
	"github.com/yaklabco/figmark/pkg/runner"
)

func TestFormatTable(t *testing.T) {
	t.Parallel()

	workDir := filepath.FromSlash("/work")
	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:    filepath.FromSlash("/work/docs/a.md"),
				Output:  filepath.FromSlash("/work/docs/a.html"),
				Figures: 2,
				Media:   1,
				Written: true,
			},
			{
				Path:   filepath.FromSlash("/work/docs/b.md"),
				Output: filepath.FromSlash("/work/docs/b.html"),
			},
			{
				Path:  filepath.FromSlash("/work/bad.md"),
				Error: errors.New("malformed front matter"),
			},
		},
		Stats: runner.Stats{FilesRendered: 2, FilesWritten: 1, FilesFailed: 1, Figures: 2, Media: 1},
	}

	out := pretty.NewTableFormatter(pretty.NewStyles(false), 120).FormatTable(result, workDir)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)

	assert.Contains(t, lines[0], "FILE")
	assert.Contains(t, lines[0], "STATUS")
	assert.Equal(t, strings.Repeat("=", len(lines[1])), lines[1])

	assert.Contains(t, lines[2], filepath.FromSlash("docs/a.md"))
	assert.Contains(t, lines[2], "written")
	assert.Contains(t, lines[3], "unchanged")
	assert.Contains(t, lines[4], "malformed front matter")

	assert.Equal(t, " 2 files rendered | 1 file written | 2 figures | 1 media element | 1 failed", lines[6])
}

func TestFormatTable_Empty(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 0)
	assert.Empty(t, formatter.FormatTable(nil, ""))
	assert.Empty(t, formatter.FormatTable(&runner.Result{}, ""))
}

func TestFormatTable_NarrowTerminalTruncatesStatus(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{{
		Path:  "a.md",
		Error: errors.New(strings.Repeat("x", 200)),
	}}}

	out := pretty.NewTableFormatter(pretty.NewStyles(false), 80).FormatTable(result, "")
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n")[:3] {
		assert.LessOrEqual(t, len(line), 80, line)
	}
	assert.Contains(t, out, "...")
}

func TestOutcomeToTableRow(t *testing.T) {
	t.Parallel()

	row := pretty.OutcomeToTableRow(runner.FileOutcome{
		Path:   filepath.FromSlash("/elsewhere/x.md"),
		Output: filepath.FromSlash("/work/out/x.html"),
	}, filepath.FromSlash("/work"))

	assert.Equal(t, filepath.FromSlash("/elsewhere/x.md"), row.File)
	assert.Equal(t, filepath.FromSlash("out/x.html"), row.Output)
	assert.Equal(t, "unchanged", row.Status)
	assert.False(t, row.Failed)
}
