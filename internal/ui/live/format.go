package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"ursbench/internal/runner"
)

// formatDocumentID returns the display id for a document row.
func formatDocumentID(row DocumentRow) string {
	if row.ID != "" {
		return row.ID
	}
	return "#" + fmtInt(row.Index+1)
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatDetail truncates error text for display.
func formatDetail(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return ""
	}
	const limit = 80
	if len(normalized) <= limit {
		return normalized
	}
	return normalized[:limit-3] + "..."
}

// formatStatus renders a status string for a row.
func formatStatus(row DocumentRow, noColor bool) string {
	return stylizeStatus(statusLabel(row.Status), row.Status, noColor)
}

// statusLabel maps status codes to display labels.
func statusLabel(status runner.DocumentEventType) string {
	switch status {
	case runner.DocumentQueued:
		return "queued"
	case runner.DocumentRunning:
		return "running"
	case runner.DocumentPassed:
		return "passed"
	case runner.DocumentFailed:
		return "failed"
	case runner.DocumentError:
		return "error"
	default:
		return string(status)
	}
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row DocumentRow, now time.Time) string {
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return row.FinishedAt.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	if !row.StartedAt.IsZero() {
		return now.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	return ""
}

// formatRunEnd formats a run completion message.
func formatRunEnd(summary runner.Summary) string {
	return "run finished: " + fmtInt(summary.Passed) + "/" + fmtInt(summary.Documents) + " passed"
}

// stylizeStatus applies status coloring when enabled.
func stylizeStatus(text string, status runner.DocumentEventType, noColor bool) string {
	if noColor {
		return text
	}
	return statusStyle(status).Render(text)
}

// statusStyle selects a style for a given status.
func statusStyle(status runner.DocumentEventType) lipgloss.Style {
	color := lipgloss.Color("244")
	switch status {
	case runner.DocumentPassed:
		color = lipgloss.Color("42")
	case runner.DocumentFailed:
		color = lipgloss.Color("220")
	case runner.DocumentError:
		color = lipgloss.Color("196")
	case runner.DocumentRunning:
		color = lipgloss.Color("33")
	case runner.DocumentQueued:
		color = lipgloss.Color("246")
	}
	return lipgloss.NewStyle().Foreground(color)
}
