package pretty

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/figmark/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // FILE, OUTPUT, FIGURES, MEDIA, STATUS
	countColumnWidth = 7
	minFileWidth     = 16
	minOutputWidth   = 16
	minStatusWidth   = 12
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100

	statusWritten   = "written"
	statusUnchanged = "unchanged"
)

// TableRow represents one rendered file in the results table.
type TableRow struct {
	File    string
	Output  string
	Figures int
	Media   int
	Status  string
	Failed  bool
}

// TableFormatter formats run results as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter. A termWidth of zero or
// less uses a default width.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

type columnWidths struct {
	file   int
	output int
	status int
}

// FormatTable formats runner results as a table with paths shown relative
// to workDir.
func (t *TableFormatter) FormatTable(result *runner.Result, workDir string) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, outcome := range result.Files {
		rows = append(rows, OutcomeToTableRow(outcome, workDir))
	}
	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, lightSeparator))
	builder.WriteString("\n")
	builder.WriteString(t.FormatTableSummary(result.Stats))
	builder.WriteString("\n")

	return builder.String()
}

// OutcomeToTableRow converts a file outcome to a table row.
func OutcomeToTableRow(outcome runner.FileOutcome, workDir string) TableRow {
	row := TableRow{
		File:    relativeTo(outcome.Path, workDir),
		Output:  relativeTo(outcome.Output, workDir),
		Figures: outcome.Figures,
		Media:   outcome.Media,
	}

	switch {
	case outcome.Error != nil:
		row.Status = outcome.Error.Error()
		row.Failed = true
	case outcome.Written:
		row.Status = statusWritten
	default:
		row.Status = statusUnchanged
	}
	return row
}

func relativeTo(path, workDir string) string {
	if path == "" || workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// calculateColumnWidths sizes the columns to their content, then shrinks
// the status column and then the file column to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		file:   minFileWidth,
		output: minOutputWidth,
		status: minStatusWidth,
	}

	for _, row := range rows {
		widths.file = max(widths.file, len(row.File))
		widths.output = max(widths.output, len(row.Output))
		widths.status = max(widths.status, len(row.Status))
	}

	totalWidth := t.calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.status = max(minStatusWidth, widths.status-excess)

		totalWidth = t.calculateTotalWidth(widths)
		if totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.file = max(minFileWidth, widths.file-excess)
		}
	}

	return widths
}

func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.output + widths.status + 2*countColumnWidth + tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %-*s ",
		widths.file, "FILE",
		widths.output, "OUTPUT",
		countColumnWidth, "FIGURES",
		countColumnWidth, "MEDIA",
		widths.status, "STATUS",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.calculateTotalWidth(widths)))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %-*s ",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.output, truncateFilePath(row.Output, widths.output),
		countColumnWidth, strconv.Itoa(row.Figures),
		countColumnWidth, strconv.Itoa(row.Media),
		widths.status, truncateString(row.Status, widths.status),
	)
	return t.rowStyle(row).Render(content)
}

func (t *TableFormatter) rowStyle(row TableRow) lipgloss.Style {
	switch {
	case row.Failed:
		return t.styles.TableFailedRow
	case row.Status == statusUnchanged:
		return t.styles.Dim
	default:
		return lipgloss.NewStyle()
	}
}

// FormatTableSummary formats the footer line of the table.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats) string {
	parts := []string{
		plural(stats.FilesRendered, "file", "files") + " rendered",
		plural(stats.FilesWritten, "file", "files") + " written",
		t.styles.Count.Render(plural(stats.Figures, "figure", "figures")),
		t.styles.Count.Render(plural(stats.Media, "media element", "media elements")),
	}
	if stats.FilesFailed > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}
	if stats.Duration > 0 {
		parts = append(parts, t.styles.Dim.Render(formatDuration(stats.Duration)))
	}
	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath keeps the end of a path, where the file name is.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
