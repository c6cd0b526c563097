package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const columnGap = "  "

// Column is one history table column. Right aligns cells to the right edge,
// which keeps numeric results lined up on their last digit.
type Column struct {
	Header string
	Width  int
	Right  bool
}

// RenderTable renders rows under a header and rule. Rows are newest first, so
// the first row is drawn in the active style.
func RenderTable(columns []Column, rows [][]string) string {
	var b strings.Builder

	headers := make([]string, len(columns))
	rules := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = HeaderStyle.Render(col.fit(col.Header))
		rules[i] = DimStyle.Render(strings.Repeat("─", col.Width))
	}
	writeRow(&b, headers)
	writeRow(&b, rules)

	for n, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			cells[i] = col.fit(val)
			if n == 0 {
				cells[i] = ActiveStyle.Render(cells[i])
			}
		}
		writeRow(&b, cells)
	}

	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString(strings.Join(cells, columnGap))
	b.WriteString("\n")
}

func (c Column) fit(s string) string {
	if c.Right {
		return padLeft(s, c.Width)
	}
	return pad(s, c.Width)
}

// pad fits s to width terminal cells. Operator glyphs like √ and π are one
// cell wide but several bytes long.
func pad(s string, width int) string {
	s = truncate(s, width)
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}

func padLeft(s string, width int) string {
	s = truncate(s, width)
	return strings.Repeat(" ", max(0, width-lipgloss.Width(s))) + s
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return s
}
