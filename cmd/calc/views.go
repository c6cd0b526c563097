package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/private-landing/calc/internal/session"
	"github.com/private-landing/calc/internal/ui"
)

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("Advanced Calculator"))
	b.WriteString(ui.DimStyle.Render(fmt.Sprintf("  %s · %s", m.mode, ui.CurrentTheme().Name)))
	b.WriteString("\n\n")

	switch m.state {
	case stateCalculator:
		b.WriteString(m.viewCalculator())
	case stateMenu:
		b.WriteString(m.viewMenu())
	case stateInput:
		b.WriteString(m.viewInput())
	case stateConfirm:
		b.WriteString(m.viewConfirm())
	case stateResult:
		b.WriteString(m.viewResult())
	case stateBusy:
		b.WriteString(m.spinner.View() + " Solving with AI...")
	}

	b.WriteString("\n")
	return b.String()
}

func (m model) viewCalculator() string {
	var b strings.Builder

	if m.mode == modeGraphical {
		b.WriteString(m.viewGraph())
		b.WriteString("\n")
	}

	screen := m.calc.Screen()
	if screen == "" {
		screen = "0"
	}
	keys := m.viewKeypad()
	b.WriteString(ui.ScreenStyle.Width(lipgloss.Width(keys)).Render(screen))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(ui.ErrorStyle.Render(m.notice))
		b.WriteString("\n")
	}

	if m.history {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, keys, "   ", m.historyTable()))
	} else {
		b.WriteString(keys)
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) viewKeypad() string {
	rows := layout(m.mode)
	lines := make([]string, len(rows))
	for r, row := range rows {
		cells := make([]string, len(row))
		for c, btn := range row {
			style := ui.KeyStyle
			if r == m.row && c == m.col {
				style = ui.CursorKeyStyle
			}
			cells[c] = style.Render(btn.label)
		}
		lines[r] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m model) viewGraph() string {
	fig := m.canvas.Current()
	if fig == nil {
		return ui.DimStyle.Render("Type f(x) and press plot, or open the tools menu with ctrl+k.")
	}
	chart, err := m.canvas.Render(max(20, m.width-12), max(5, m.height/3))
	if err != nil {
		return ui.ErrorStyle.Render(err.Error())
	}
	return ui.PromptStyle.Render(fig.Caption()) + "\n" + chart
}

func (m model) historyTable() string {
	entries := m.calc.History()
	if len(entries) == 0 {
		return ui.DimStyle.Render("No history yet.")
	}
	columns := []ui.Column{
		{Header: "Expression", Width: 28},
		{Header: "Result", Width: 16, Right: true},
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Expression, oneLine(e.Result)}
	}
	return fmt.Sprintf("History (%d/%d)\n\n", len(entries), session.MaxHistory) + ui.RenderTable(columns, rows)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (m model) viewMenu() string {
	var b strings.Builder

	for i, item := range menuItems {
		if item.isHeader {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("  ")
			b.WriteString(ui.HeaderStyle.Render(item.label))
			b.WriteString("\n")
			continue
		}

		cursor := "  "
		style := ui.DimStyle
		if i == m.cursor {
			cursor = "> "
			style = ui.ActiveStyle
		}
		b.WriteString(style.Render(cursor + item.label))
		b.WriteString("\n")
	}

	b.WriteString(ui.DimStyle.Render("\n↑/↓ navigate • enter select • esc calculator • q quit"))
	return b.String()
}

func (m model) viewInput() string {
	var b strings.Builder

	for i := 0; i < len(m.inputs); i++ {
		b.WriteString(ui.DimStyle.Render(fmt.Sprintf("  %s: %s", m.inputLabels[i], m.inputs[i])))
		b.WriteString("\n")
	}

	label := m.inputLabels[m.inputField]
	b.WriteString(ui.PromptStyle.Render(fmt.Sprintf("Enter %s: ", label)))
	b.WriteString(m.input.Value)
	b.WriteString("█")
	b.WriteString(ui.DimStyle.Render("\n\nenter confirm • esc back"))
	return b.String()
}

func (m model) viewConfirm() string {
	var b strings.Builder
	b.WriteString(ui.ErrorStyle.Render(fmt.Sprintf("Clear all %d history entries?", len(m.calc.History()))))
	b.WriteString(ui.DimStyle.Render("\n\ny confirm • n cancel"))
	return b.String()
}

func (m model) viewResult() string {
	var b strings.Builder
	if m.resultErr != nil {
		b.WriteString(ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.resultErr)))
	} else {
		b.WriteString(ui.SuccessStyle.Render(m.viewport.View()))
	}
	b.WriteString(ui.DimStyle.Render("\n\n↑/↓ scroll • enter continue • q quit"))
	return b.String()
}
