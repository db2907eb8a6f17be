package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// defaultColumns returns the initial table columns.
func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "Document", Width: 20},
		{Title: "Fold", Width: 4},
		{Title: "Status", Width: 14},
		{Title: "Elapsed", Width: 10},
		{Title: "Detail", Width: 40},
	}
}

// columnsForWidth adapts column widths to the terminal width.
func columnsForWidth(width int) []table.Column {
	columns := defaultColumns()
	fixed := 0
	for _, column := range columns[:len(columns)-1] {
		fixed += column.Width
	}
	detail := width - fixed - len(columns)*2
	if detail < 10 {
		detail = 10
	}
	columns[len(columns)-1].Width = detail
	return columns
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatDocumentID(row),
			fmtInt(row.FoldIndex),
			formatStatus(row, noColor),
			formatRowDuration(row, now),
			formatDetail(row.Error),
		})
	}
	return rows
}
