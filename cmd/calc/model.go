package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/private-landing/calc/internal/plot"
	"github.com/private-landing/calc/internal/session"
	"github.com/private-landing/calc/internal/ui"
)

// states
type state int

const (
	stateCalculator state = iota
	stateMenu
	stateInput
	stateConfirm
	stateResult
	stateBusy
)

const (
	defaultWidth  = 72
	defaultHeight = 24
)

// wordSolver answers word problems. *api.Client satisfies it.
type wordSolver interface {
	SolveWordProblem(ctx context.Context, problem string) (string, error)
}

// messages
type wordProblemMsg struct {
	problem string
	answer  string
	err     error
}

type deps struct {
	calc      *session.Calculator
	solver    wordSolver
	log       *zap.Logger
	plotRange plot.Range
	export    plot.ExportOptions
	mode      mode
}

type model struct {
	calc      *session.Calculator
	canvas    *plot.Canvas
	solver    wordSolver
	log       *zap.Logger
	plotRange plot.Range
	export    plot.ExportOptions

	keys     ui.KeyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model

	state    state
	mode     mode
	row, col int
	history  bool
	notice   string
	quitting bool

	width, height int

	// tools menu
	cursor int
	action action

	// multi-field input
	input       session.InputBuffer
	inputField  int
	inputLabels []string
	inputs      []string

	// result state
	resultMessage string
	resultErr     error
}

func initialModel(d deps) model {
	if d.log == nil {
		d.log = zap.NewNop()
	}
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := model{
		calc:      d.calc,
		canvas:    &plot.Canvas{},
		solver:    d.solver,
		log:       d.log,
		plotRange: d.plotRange,
		export:    d.export,
		keys:      ui.DefaultKeyMap(),
		help:      help.New(),
		spinner:   spin,
		viewport:  viewport.New(defaultWidth-4, defaultHeight-8),
		state:     stateCalculator,
		mode:      d.mode,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.cursor = firstSelectableIndex()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = max(10, msg.Width-4)
		m.viewport.Height = max(3, msg.Height-8)
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		if m.state != stateBusy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case wordProblemMsg:
		if msg.err != nil {
			m.log.Warn("word problem failed", zap.Error(msg.err))
			m.showResult("", msg.err)
			return m, nil
		}
		m.calc.AddToHistory("Word Problem: "+msg.problem, "Solved with AI")
		m.showResult(msg.answer, nil)
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	key := msg.String()
	switch m.state {
	case stateCalculator:
		return m.handleCalculator(msg)
	case stateMenu:
		return m.handleMenu(key)
	case stateInput:
		return m.handleInput(key, msg)
	case stateConfirm:
		return m.handleConfirm(key)
	case stateResult:
		return m.handleResult(key, msg)
	}
	return m, nil
}

func (m model) handleCalculator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Equals):
		m.pressButton(fn("=", "equals"))
	case key.Matches(msg, m.keys.Backspace):
		m.calc.Backspace()
	case key.Matches(msg, m.keys.Clear):
		m.calc.Clear()
	case key.Matches(msg, m.keys.Press):
		return m.pressSelected()
	case key.Matches(msg, m.keys.Mode):
		m.setMode(m.mode.next())
	case key.Matches(msg, m.keys.Theme):
		ui.ToggleTheme()
	case key.Matches(msg, m.keys.History):
		m.history = !m.history
	case key.Matches(msg, m.keys.Tools):
		m.state = stateMenu
		m.cursor = firstSelectableIndex()
	case msg.Type == tea.KeyUp:
		m.move(-1, 0)
	case msg.Type == tea.KeyDown:
		m.move(1, 0)
	case msg.Type == tea.KeyLeft:
		m.move(0, -1)
	case msg.Type == tea.KeyRight:
		m.move(0, 1)
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			if strings.ContainsRune(typedKeys, r) {
				m.calc.Append(string(r))
			}
		}
	}
	return m, nil
}

func (m *model) move(dr, dc int) {
	keys := layout(m.mode)
	m.row = min(max(m.row+dr, 0), len(keys)-1)
	m.col = min(max(m.col+dc, 0), len(keys[m.row])-1)
}

func (m model) selected() button {
	return layout(m.mode)[m.row][m.col]
}

func (m *model) setMode(md mode) {
	if m.mode == modeGraphical && md != modeGraphical {
		m.canvas.Destroy()
	}
	m.mode = md
	m.move(0, 0)
}

func (m model) pressSelected() (tea.Model, tea.Cmd) {
	b := m.selected()
	switch b.graph {
	case "":
		m.pressButton(b)
	case graphX:
		m.calc.Append("x")
	case graphPlot:
		return m.plotExpression(m.calc.Buffer(), false)
	case graphDerivative:
		return m.plotExpression(m.calc.Buffer(), true)
	case graphExport:
		if m.canvas.Current() == nil {
			m.showResult("", plot.ErrNoFigure)
			return m, nil
		}
		return m.exportGraph(plot.DefaultPNG, "PNG")
	}
	return m, nil
}

func (m *model) pressButton(b button) {
	if err := m.calc.Press(b.cat, b.action); err != nil {
		m.log.Error("keypad", zap.Error(err))
		return
	}
	m.notice = m.calc.Notice()
}

func (m *model) showResult(text string, err error) {
	m.state = stateResult
	m.resultMessage = text
	m.resultErr = err
	m.viewport.SetContent(text)
	m.viewport.GotoTop()
}

func (m model) handleConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		return m.executeAction()
	case "n", "N", "esc":
		m.state = stateMenu
		m.input.Clear()
	}
	return m, nil
}

func (m model) handleResult(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "enter", "esc":
		m.state = stateMenu
		m.input.Clear()
		m.resultErr = nil
		return m, nil
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// --- Commands ---

func (m model) solveWordProblem(problem string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.solver.SolveWordProblem(context.Background(), problem)
		return wordProblemMsg{problem: problem, answer: answer, err: err}
	}
}
