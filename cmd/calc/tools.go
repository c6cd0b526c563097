package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/private-landing/calc/internal/plot"
	"github.com/private-landing/calc/internal/toolbox"
	"github.com/private-landing/calc/internal/voice"
)

type action int

const (
	// Calculate
	actionMatrix action = iota
	actionEquation
	actionBase
	actionAllStatistics
	actionStatistic
	actionUnits
	actionWordProblem
	// Graph
	actionPlot
	actionPlotDerivative
	actionExportPNG
	actionExportPDF
	// Input
	actionVoice
	// History
	actionViewHistory
	actionClearHistory
)

type menuItem struct {
	label    string
	action   action
	isHeader bool
}

var menuItems = []menuItem{
	{label: "CALCULATE", isHeader: true},
	{label: "Matrix / vector operation", action: actionMatrix},
	{label: "Solve equation", action: actionEquation},
	{label: "Convert number base", action: actionBase},
	{label: "All statistics", action: actionAllStatistics},
	{label: "Single statistic", action: actionStatistic},
	{label: "Convert units", action: actionUnits},
	{label: "Solve word problem (AI)", action: actionWordProblem},

	{label: "GRAPH", isHeader: true},
	{label: "Plot function", action: actionPlot},
	{label: "Plot function and derivative", action: actionPlotDerivative},
	{label: "Export graph to PNG", action: actionExportPNG},
	{label: "Export graph to PDF", action: actionExportPDF},

	{label: "INPUT", isHeader: true},
	{label: "Voice transcript", action: actionVoice},

	{label: "HISTORY", isHeader: true},
	{label: "View history", action: actionViewHistory},
	{label: "Clear history", action: actionClearHistory},
}

func firstSelectableIndex() int {
	for i, item := range menuItems {
		if !item.isHeader {
			return i
		}
	}
	return 0
}

func (m model) handleMenu(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		m.cursor = m.prevSelectable(m.cursor)
	case "down", "j":
		m.cursor = m.nextSelectable(m.cursor)
	case "enter":
		item := menuItems[m.cursor]
		if item.isHeader {
			return m, nil
		}
		m.action = item.action
		return m.dispatchAction()
	case "esc":
		m.state = stateCalculator
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) prevSelectable(from int) int {
	for i := from - 1; i >= 0; i-- {
		if !menuItems[i].isHeader {
			return i
		}
	}
	return from
}

func (m model) nextSelectable(from int) int {
	for i := from + 1; i < len(menuItems); i++ {
		if !menuItems[i].isHeader {
			return i
		}
	}
	return from
}

func (m model) dispatchAction() (model, tea.Cmd) {
	switch m.action {
	case actionMatrix:
		m.startInput([]string{
			"Operation (" + strings.Join(toolbox.MatrixOps, ", ") + ")",
			"Matrix A, e.g. [[1,2],[3,4]]",
			"Matrix B (optional)",
		})
	case actionEquation:
		m.startInput([]string{"Equation, e.g. x^2 - 5x + 6 = 0"})
	case actionBase:
		m.startInput([]string{"Number", "From base (2-36)", "To base (2-36)"})
	case actionAllStatistics:
		m.startInput([]string{"Numbers separated by spaces"})
	case actionStatistic:
		m.startInput([]string{"Statistic (mean, median, mode, stddev)", "Numbers separated by commas"})
	case actionUnits:
		m.startInput([]string{
			"Category (" + strings.Join(toolbox.Categories, ", ") + ")",
			"Value",
			"From unit (optional)",
			"To unit (optional)",
		})
	case actionWordProblem:
		m.startInput([]string{"Word problem"})
	case actionPlot, actionPlotDerivative:
		m.startInput([]string{"Function f(x)"})
	case actionExportPNG, actionExportPDF:
		if m.canvas.Current() == nil {
			m.showResult("", plot.ErrNoFigure)
			return m, nil
		}
		m.startInput([]string{"File name (optional)"})
	case actionVoice:
		m.startInput([]string{"Transcript"})
	case actionViewHistory:
		m.showResult(m.historyTable(), nil)
	case actionClearHistory:
		m.state = stateConfirm
	}
	return m, nil
}

func (m *model) startInput(labels []string) {
	m.state = stateInput
	m.inputField = 0
	m.inputLabels = labels
	m.inputs = make([]string, 0, len(labels))
	m.input.Clear()
}

func (m model) handleInput(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		val := strings.TrimSpace(m.input.Value)
		optional := strings.HasSuffix(m.inputLabels[m.inputField], "(optional)")
		if val == "" && !optional {
			return m, nil
		}
		m.inputs = append(m.inputs, val)
		m.inputField++
		m.input.Clear()

		if m.action == actionUnits && m.inputField == 1 {
			m.labelUnits(val)
		}
		if m.inputField >= len(m.inputLabels) {
			return m.afterInputComplete()
		}
	case "backspace":
		m.input.Backspace()
	case "esc":
		m.state = stateMenu
		m.input.Clear()
	default:
		m.input.Append(msg.Runes)
	}
	return m, nil
}

// labelUnits lists the category's units in the unit prompts.
func (m *model) labelUnits(category string) {
	units := toolbox.Units(strings.ToLower(category))
	if len(units) == 0 {
		return
	}
	from, to := toolbox.DefaultUnits(strings.ToLower(category))
	list := strings.Join(units, ", ")
	m.inputLabels[2] = fmt.Sprintf("From unit [%s] default %s (optional)", list, from)
	m.inputLabels[3] = fmt.Sprintf("To unit [%s] default %s (optional)", list, to)
}

func (m model) afterInputComplete() (model, tea.Cmd) {
	in := m.inputs
	m.log.Debug("tool", zap.Int("action", int(m.action)), zap.Strings("inputs", in))

	switch m.action {
	case actionMatrix:
		return m.showTool(toolbox.MatrixOperation(strings.ToLower(in[0]), in[1], in[2]))
	case actionEquation:
		return m.showTool(toolbox.SolveEquation(in[0]))
	case actionBase:
		from, _ := strconv.Atoi(in[1])
		to, _ := strconv.Atoi(in[2])
		return m.showTool(toolbox.ConvertBase(in[0], from, to))
	case actionAllStatistics:
		return m.showTool(toolbox.AllStatistics(in[0]))
	case actionStatistic:
		return m.showTool(toolbox.Statistic(strings.ToLower(in[0]), in[1]))
	case actionUnits:
		m.showResult(convertUnits(in[0], in[1], in[2], in[3]), nil)
		return m, nil
	case actionWordProblem:
		m.state = stateBusy
		return m, tea.Batch(m.spinner.Tick, m.solveWordProblem(in[0]))
	case actionPlot:
		return m.plotExpression(in[0], false)
	case actionPlotDerivative:
		return m.plotExpression(in[0], true)
	case actionExportPNG:
		return m.exportGraph(withExt(in[0], plot.DefaultPNG), "PNG")
	case actionExportPDF:
		return m.exportGraph(withExt(in[0], plot.DefaultPDF), "PDF")
	case actionVoice:
		m.calc.AppendTranscript(voice.ToExpression(in[0]))
		m.state = stateCalculator
		return m, nil
	}

	m.state = stateMenu
	return m, nil
}

func (m model) executeAction() (model, tea.Cmd) {
	switch m.action {
	case actionClearHistory:
		m.calc.ClearHistory()
		m.showResult("History cleared.", nil)
		return m, nil
	}
	m.state = stateMenu
	return m, nil
}

func (m model) showTool(r toolbox.Result) (model, tea.Cmd) {
	r.Record(m.calc)
	m.showResult(r.Text, nil)
	return m, nil
}

func convertUnits(category, value, from, to string) string {
	category = strings.ToLower(category)
	defFrom, defTo := toolbox.DefaultUnits(category)
	if defFrom == "" {
		return "Unknown category: " + category
	}
	if from == "" {
		from = defFrom
	}
	if to == "" {
		to = defTo
	}
	from, to = strings.ToLower(from), strings.ToLower(to)
	out := toolbox.ConvertUnit(value, from, to)
	switch out {
	case "":
		return "Please enter a number to convert."
	case "Error":
		return out
	}
	return fmt.Sprintf("%s %s = %s %s", strings.TrimSpace(value), from, out, to)
}

// plotExpression draws expr on the canvas and switches to the graphical
// keypad.
func (m model) plotExpression(expr string, derivative bool) (model, tea.Cmd) {
	var (
		fig *plot.Figure
		err error
	)
	if derivative {
		fig, err = plot.WithDerivative(expr, m.plotRange)
	} else {
		fig, err = plot.Function(expr, m.plotRange)
	}
	if err != nil {
		m.log.Debug("plot failed", zap.String("expr", expr), zap.Error(err))
		m.showResult("", err)
		return m, nil
	}
	m.canvas.Draw(fig)
	m.calc.AddToHistory(fig.Caption(), "")
	m.mode = modeGraphical
	m.move(0, 0)
	m.state = stateCalculator
	return m, nil
}

func (m model) exportGraph(path, format string) (model, tea.Cmd) {
	if err := m.canvas.Export(path, m.export); err != nil {
		m.log.Warn("export failed", zap.String("path", path), zap.Error(err))
		m.showResult("", err)
		return m, nil
	}
	m.calc.AddToHistory("Exported graph to "+format, "")
	m.showResult("Saved graph to "+path, nil)
	return m, nil
}

// withExt falls back to def for an empty name and adds def's extension to a
// bare one.
func withExt(name, def string) string {
	if name == "" {
		return def
	}
	if filepath.Ext(name) == "" {
		return name + filepath.Ext(def)
	}
	return name
}
