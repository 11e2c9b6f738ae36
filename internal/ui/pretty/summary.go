package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/figmark/pkg/runner"
)

const summaryDividerWidth = 40

// plural formats a count with the singular or plural noun.
func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + pluralForm
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Rendered 3 files (2 written), 4 figures, 1 media element".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Warning.Render("No Markdown files found") + "\n"
	}

	head := fmt.Sprintf("Rendered %s", plural(stats.FilesRendered, "file", "files"))
	if stats.FilesFailed > 0 {
		head = s.Failure.Render(head)
	} else {
		head = s.Success.Render(head)
	}
	head += s.Dim.Render(fmt.Sprintf(" (%d written)", stats.FilesWritten))

	parts := []string{
		head,
		s.Count.Render(plural(stats.Figures, "figure", "figures")),
		s.Count.Render(plural(stats.Media, "media element", "media elements")),
	}
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Error.Render(plural(stats.FilesFailed, "file failed", "files failed")))
	}

	line := strings.Join(parts, ", ")
	if stats.Duration > 0 {
		line += s.Dim.Render(" in " + formatDuration(stats.Duration))
	}
	return line + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files rendered:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesRendered)) + "\n")
	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}
	if stats.FilesFailed > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesFailed)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Figures:           " +
		s.Count.Render(strconv.Itoa(stats.Figures)) + "\n")
	builder.WriteString("  Media elements:    " +
		s.Count.Render(strconv.Itoa(stats.Media)) + "\n")
	if stats.Duration > 0 {
		builder.WriteString("  Duration:          " +
			s.Dim.Render(formatDuration(stats.Duration)) + "\n")
	}

	builder.WriteString("\n")
	switch {
	case stats.FilesFailed > 0:
		builder.WriteString(s.Failure.Render("Render failed for " + plural(stats.FilesFailed, "file", "files")))
	case stats.FilesDiscovered == 0:
		builder.WriteString(s.Warning.Render("Nothing to render"))
	default:
		builder.WriteString(s.Success.Render("Render complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
