package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/private-landing/calc/internal/eval"
	"github.com/private-landing/calc/internal/plot"
	"github.com/private-landing/calc/internal/session"
	"github.com/private-landing/calc/internal/ui"
)

type fakeSolver struct {
	answer string
	err    error
	got    string
}

func (f *fakeSolver) SolveWordProblem(_ context.Context, problem string) (string, error) {
	f.got = problem
	return f.answer, f.err
}

func newTestModel(md mode) model {
	return initialModel(deps{
		calc:      session.New(eval.NewEngine(eval.InteractiveScope()), nil),
		solver:    &fakeSolver{answer: "Final Answer: 42"},
		plotRange: plot.DefaultRange(),
		mode:      md,
	})
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(model)
}

func typeText(t *testing.T, m model, s string) model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(t *testing.T, m model, kt tea.KeyType, n int) model {
	t.Helper()
	for i := 0; i < n; i++ {
		m = update(t, m, tea.KeyMsg{Type: kt})
	}
	return m
}

// chooseTool opens the tools menu and selects the item for a.
func chooseTool(t *testing.T, m model, a action) model {
	t.Helper()
	m = press(t, m, tea.KeyCtrlK, 1)
	if m.state != stateMenu {
		t.Fatalf("expected menu state, got %d", m.state)
	}
	for i, item := range menuItems {
		if !item.isHeader && item.action == a {
			m.cursor = i
			return press(t, m, tea.KeyEnter, 1)
		}
	}
	t.Fatalf("no menu item for action %d", a)
	return m
}

// submit types each value into the current form, pressing enter after each.
func submit(t *testing.T, m model, values ...string) model {
	t.Helper()
	for _, v := range values {
		m = typeText(t, m, v)
		m = press(t, m, tea.KeyEnter, 1)
	}
	return m
}

func TestTypedExpressionEquals(t *testing.T) {
	m := newTestModel(modeBasic)
	m = typeText(t, m, "2+2")
	m = press(t, m, tea.KeyEnter, 1)

	if got := m.calc.Screen(); got != "4" {
		t.Fatalf("expected screen 4, got %q", got)
	}
	want := []session.Entry{{Expression: "2+2", Result: "4"}}
	if diff := cmp.Diff(want, m.calc.History()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestTypedKeys(t *testing.T) {
	tests := []struct {
		name  string
		typed string
		want  string
	}{
		{"letters ignored", "2a+b3", "2+3"},
		{"raw decimal", "1.5.", "1.5."},
		{"equals key", "6*7=", "42"},
		{"modulus", "10%3=", "1"},
		{"caret", "2^10=", "1024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := typeText(t, newTestModel(modeBasic), tt.typed)
			if got := m.calc.Screen(); got != tt.want {
				t.Errorf("typing %q: screen = %q, want %q", tt.typed, got, tt.want)
			}
		})
	}
}

func TestBackspaceAndClear(t *testing.T) {
	m := typeText(t, newTestModel(modeBasic), "123")
	m = press(t, m, tea.KeyBackspace, 1)
	if m.calc.Buffer() != "12" {
		t.Fatalf("expected 12, got %q", m.calc.Buffer())
	}
	m = press(t, m, tea.KeyEscape, 1)
	if m.calc.Buffer() != "" {
		t.Fatalf("expected empty buffer, got %q", m.calc.Buffer())
	}
}

func TestFailedEqualsShowsError(t *testing.T) {
	m := typeText(t, newTestModel(modeBasic), "(2")
	m = press(t, m, tea.KeyEnter, 1)
	if m.calc.Screen() != session.ErrorToken {
		t.Fatalf("expected %q, got %q", session.ErrorToken, m.calc.Screen())
	}
	if m.calc.Buffer() != "(2" {
		t.Fatalf("buffer changed to %q", m.calc.Buffer())
	}
}

func TestKeypadNavigation(t *testing.T) {
	m := newTestModel(modeBasic)
	if got := m.selected().label; got != "C" {
		t.Fatalf("expected cursor on C, got %q", got)
	}

	m = press(t, m, tea.KeyDown, 1)
	m = press(t, m, tea.KeyRight, 1)
	if got := m.selected().label; got != "8" {
		t.Fatalf("expected cursor on 8, got %q", got)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.calc.Buffer() != "8" {
		t.Fatalf("expected buffer 8, got %q", m.calc.Buffer())
	}

	m = press(t, m, tea.KeyRight, 10)
	m = press(t, m, tea.KeyDown, 10)
	if got := m.selected().label; got != "=" {
		t.Fatalf("expected cursor clamped on =, got %q", got)
	}
	m = press(t, m, tea.KeyUp, 10)
	m = press(t, m, tea.KeyLeft, 10)
	if m.row != 0 || m.col != 0 {
		t.Fatalf("expected cursor at origin, got %d,%d", m.row, m.col)
	}
}

func TestKeypadOperatorsUseDisplaySymbols(t *testing.T) {
	m := newTestModel(modeBasic)
	m.row, m.col = 1, 3 // ×
	m = typeText(t, m, "6")
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = typeText(t, m, "7")
	if m.calc.Buffer() != "6×7" {
		t.Fatalf("expected 6×7, got %q", m.calc.Buffer())
	}
	m = press(t, m, tea.KeyEnter, 1)
	if m.calc.Screen() != "42" {
		t.Fatalf("expected 42, got %q", m.calc.Screen())
	}
}

func TestAnsWithoutResultShowsNotice(t *testing.T) {
	m := newTestModel(modeScientific)
	m.row, m.col = 3, 3
	if got := m.selected().label; got != "Ans" {
		t.Fatalf("expected Ans, got %q", got)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.notice != session.NoResultNotice {
		t.Fatalf("expected notice, got %q", m.notice)
	}
	if !strings.Contains(m.View(), session.NoResultNotice) {
		t.Error("notice missing from view")
	}

	m = typeText(t, m, "1")
	if m.notice != "" {
		t.Errorf("expected notice cleared, got %q", m.notice)
	}
}

func TestModeCycle(t *testing.T) {
	m := newTestModel(modeBasic)
	fig, err := plot.Function("x", plot.DefaultRange())
	if err != nil {
		t.Fatalf("plot: %v", err)
	}

	m = press(t, m, tea.KeyTab, 1)
	if m.mode != modeScientific {
		t.Fatalf("expected scientific, got %s", m.mode)
	}
	m = press(t, m, tea.KeyTab, 1)
	if m.mode != modeGraphical {
		t.Fatalf("expected graphical, got %s", m.mode)
	}
	m.canvas.Draw(fig)
	m = press(t, m, tea.KeyTab, 1)
	if m.mode != modeBasic {
		t.Fatalf("expected basic, got %s", m.mode)
	}
	if m.canvas.Current() != nil {
		t.Error("expected the graph to be destroyed when leaving graphical mode")
	}
}

func TestModeSwitchClampsCursor(t *testing.T) {
	m := newTestModel(modeScientific)
	m.row, m.col = 8, 3
	m = press(t, m, tea.KeyTab, 1) // graphical has 7 rows
	if m.row != 6 {
		t.Fatalf("expected row clamped to 6, got %d", m.row)
	}
}

func TestThemeAndHistoryToggles(t *testing.T) {
	ui.ApplyTheme(ui.Dark)
	t.Cleanup(func() { ui.ApplyTheme(ui.Dark) })

	m := newTestModel(modeBasic)
	m = press(t, m, tea.KeyCtrlT, 1)
	if ui.CurrentTheme().Name != "light" {
		t.Fatalf("expected light theme, got %s", ui.CurrentTheme().Name)
	}

	m = typeText(t, m, "1+1=")
	m = press(t, m, tea.KeyCtrlO, 1)
	if !m.history {
		t.Fatal("expected history panel open")
	}
	view := m.View()
	if !strings.Contains(view, "History (1/10)") || !strings.Contains(view, "1+1") {
		t.Errorf("history panel missing from view:\n%s", view)
	}
}

func TestMenuNavigationSkipsHeaders(t *testing.T) {
	m := press(t, newTestModel(modeBasic), tea.KeyCtrlK, 1)
	if menuItems[m.cursor].isHeader {
		t.Fatal("cursor starts on a header")
	}
	for i := 0; i < len(menuItems); i++ {
		m = press(t, m, tea.KeyDown, 1)
		if menuItems[m.cursor].isHeader {
			t.Fatalf("cursor landed on header %q", menuItems[m.cursor].label)
		}
	}
	if m.cursor != len(menuItems)-1 {
		t.Fatalf("expected last item, got %d", m.cursor)
	}
	m = press(t, m, tea.KeyEscape, 1)
	if m.state != stateCalculator {
		t.Fatalf("expected calculator state, got %d", m.state)
	}
}

func TestSolveEquationFromMenu(t *testing.T) {
	m := chooseTool(t, newTestModel(modeBasic), actionEquation)
	m = press(t, m, tea.KeyEnter, 1)
	if m.state != stateInput || m.inputField != 0 {
		t.Fatal("empty required field should not advance")
	}

	m = submit(t, m, "x^2 - 5x + 6 = 0")
	if m.state != stateResult {
		t.Fatalf("expected result state, got %d", m.state)
	}
	want := "x₁ = 3.0000000000, x₂ = 2.0000000000"
	if m.resultMessage != want {
		t.Fatalf("expected %q, got %q", want, m.resultMessage)
	}
	if got := m.calc.History()[0]; got.Expression != "Solved: x^2 - 5x + 6 = 0" || got.Result != want {
		t.Errorf("unexpected history entry %+v", got)
	}

	m = press(t, m, tea.KeyEnter, 1)
	if m.state != stateMenu {
		t.Fatalf("expected menu after result, got %d", m.state)
	}
}

func TestMatrixFromMenu(t *testing.T) {
	m := chooseTool(t, newTestModel(modeBasic), actionMatrix)
	m = submit(t, m, "determinant", "[[2,0],[0,3]]", "")
	if m.resultMessage != "6" {
		t.Fatalf("expected 6, got %q", m.resultMessage)
	}
	if got := m.calc.History()[0].Expression; got != "Matrix/Vector Op: determinant" {
		t.Errorf("unexpected history %q", got)
	}
}

func TestConvertBaseFromMenu(t *testing.T) {
	m := chooseTool(t, newTestModel(modeBasic), actionBase)
	m = submit(t, m, "255", "10", "16")
	if m.resultMessage != "FF" {
		t.Fatalf("expected FF, got %q", m.resultMessage)
	}
}

func TestStatisticFromMenu(t *testing.T) {
	m := chooseTool(t, newTestModel(modeBasic), actionStatistic)
	m = submit(t, m, "Mean", "1, 2, 3, 4")
	if m.resultMessage != "mean: 2.5000" {
		t.Fatalf("unexpected result %q", m.resultMessage)
	}
	if got := m.calc.History()[0]; got.Result != "2.50" {
		t.Errorf("unexpected history %+v", got)
	}
}

func TestUnitsFromMenu(t *testing.T) {
	m := chooseTool(t, newTestModel(modeBasic), actionUnits)
	m = submit(t, m, "length")
	if !strings.Contains(m.inputLabels[2], "kilometer") {
		t.Fatalf("expected unit list in prompt, got %q", m.inputLabels[2])
	}
	m = submit(t, m, "1500", "", "")
	if want := "1500 meter = 1.5000 kilometer"; m.resultMessage != want {
		t.Fatalf("expected %q, got %q", want, m.resultMessage)
	}
}

func TestConvertUnits(t *testing.T) {
	tests := []struct {
		category, value, from, to string
		want                      string
	}{
		{"temperature", "100", "celsius", "fahrenheit", "100 celsius = 212.0000 fahrenheit"},
		{"Time", "2", "Hour", "minute", "2 hour = 120.0000 minute"},
		{"length", "abc", "", "", "Please enter a number to convert."},
		{"length", "1", "meter", "gram", "Error"},
		{"volume", "1", "", "", "Unknown category: volume"},
	}
	for _, tt := range tests {
		if got := convertUnits(tt.category, tt.value, tt.from, tt.to); got != tt.want {
			t.Errorf("convertUnits(%q, %q, %q, %q) = %q, want %q", tt.category, tt.value, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestWordProblem(t *testing.T) {
	m := chooseTool(t, newTestModel(modeBasic), actionWordProblem)
	m = typeText(t, m, "A train leaves at 3pm")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	if m.state != stateBusy || cmd == nil {
		t.Fatalf("expected busy state with a command, got %d", m.state)
	}
	if !strings.Contains(m.View(), "Solving with AI") {
		t.Error("busy view missing")
	}

	m = update(t, m, m.solveWordProblem("A train leaves at 3pm")())
	if m.state != stateResult || m.resultMessage != "Final Answer: 42" {
		t.Fatalf("unexpected result %d %q", m.state, m.resultMessage)
	}
	want := []session.Entry{{Expression: "Word Problem: A train leaves at 3pm", Result: "Solved with AI"}}
	if diff := cmp.Diff(want, m.calc.History()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestWordProblemFailure(t *testing.T) {
	m := newTestModel(modeBasic)
	boom := errors.New("quota exceeded")
	m.solver = &fakeSolver{err: boom}

	m = update(t, m, m.solveWordProblem("anything")())
	if !errors.Is(m.resultErr, boom) {
		t.Fatalf("expected %v, got %v", boom, m.resultErr)
	}
	if len(m.calc.History()) != 0 {
		t.Error("failure should not be recorded")
	}
	if !strings.Contains(m.View(), "Error: quota exceeded") {
		t.Error("error missing from view")
	}
}

func TestPlotFromMenu(t *testing.T) {
	m := chooseTool(t, newTestModel(modeBasic), actionPlot)
	m = submit(t, m, "sin(x)")

	if m.state != stateCalculator || m.mode != modeGraphical {
		t.Fatalf("expected graphical calculator, got state %d mode %s", m.state, m.mode)
	}
	if m.canvas.Current() == nil {
		t.Fatal("expected a figure")
	}
	want := []session.Entry{{Expression: "Plotted: f(x) = sin(x)", Result: ""}}
	if diff := cmp.Diff(want, m.calc.History()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(m.View(), "f(x) = sin(x)") {
		t.Error("graph missing from view")
	}
}

func TestPlotKeyUsesBuffer(t *testing.T) {
	m := newTestModel(modeGraphical)
	m = typeText(t, m, "2")
	m.row, m.col = 0, 0 // x
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m.col = 2 // f′(x)
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	fig := m.canvas.Current()
	if fig == nil {
		t.Fatalf("expected a figure, got state %d err %v", m.state, m.resultErr)
	}
	if fig.Expression != "2x" || len(fig.Series) != 2 {
		t.Errorf("unexpected figure %q with %d series", fig.Expression, len(fig.Series))
	}
}

func TestPlotEmptyFunction(t *testing.T) {
	m := newTestModel(modeGraphical)
	m.row, m.col = 0, 1 // plot
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !errors.Is(m.resultErr, plot.ErrEmptyFunction) {
		t.Fatalf("expected ErrEmptyFunction, got %v", m.resultErr)
	}
}

func TestExportWithoutGraph(t *testing.T) {
	for _, a := range []action{actionExportPNG, actionExportPDF} {
		m := chooseTool(t, newTestModel(modeBasic), a)
		if m.state != stateResult || !errors.Is(m.resultErr, plot.ErrNoFigure) {
			t.Errorf("action %d: expected ErrNoFigure, got %v", a, m.resultErr)
		}
	}
}

func TestExportGraph(t *testing.T) {
	m := chooseTool(t, newTestModel(modeBasic), actionPlot)
	m = submit(t, m, "x^2")

	dir := t.TempDir()
	m = chooseTool(t, m, actionExportPNG)
	m = submit(t, m, filepath.Join(dir, "square"))
	if m.resultErr != nil {
		t.Fatalf("export failed: %v", m.resultErr)
	}
	if _, err := os.Stat(filepath.Join(dir, "square.png")); err != nil {
		t.Fatalf("expected png: %v", err)
	}
	if got := m.calc.History()[0]; got.Expression != "Exported graph to PNG" || got.Result != "" {
		t.Errorf("unexpected history %+v", got)
	}
}

func TestVoiceTranscript(t *testing.T) {
	m := chooseTool(t, newTestModel(modeBasic), actionVoice)
	m = submit(t, m, "5 Plus 3")
	if m.state != stateCalculator {
		t.Fatalf("expected calculator state, got %d", m.state)
	}
	if m.calc.Buffer() != "5 + 3" {
		t.Fatalf("expected '5 + 3', got %q", m.calc.Buffer())
	}
	m = press(t, m, tea.KeyEnter, 1)
	if m.calc.Screen() != "8" {
		t.Fatalf("expected 8, got %q", m.calc.Screen())
	}
}

func TestClearHistoryConfirm(t *testing.T) {
	m := typeText(t, newTestModel(modeBasic), "1+1=")

	m = chooseTool(t, m, actionClearHistory)
	if m.state != stateConfirm {
		t.Fatalf("expected confirm state, got %d", m.state)
	}
	m = typeText(t, m, "n")
	if m.state != stateMenu || len(m.calc.History()) != 1 {
		t.Fatal("cancel should keep history")
	}

	m = press(t, m, tea.KeyEnter, 1) // cursor is still on Clear history
	m = typeText(t, m, "y")
	if len(m.calc.History()) != 0 {
		t.Fatal("expected history cleared")
	}
	if m.resultMessage != "History cleared." {
		t.Errorf("unexpected result %q", m.resultMessage)
	}
}

func TestViewHistory(t *testing.T) {
	m := chooseTool(t, newTestModel(modeBasic), actionViewHistory)
	if !strings.Contains(m.resultMessage, "No history yet.") {
		t.Errorf("unexpected empty history %q", m.resultMessage)
	}
}

func TestInputEscReturnsToMenu(t *testing.T) {
	m := chooseTool(t, newTestModel(modeBasic), actionEquation)
	m = typeText(t, m, "x")
	m = press(t, m, tea.KeyEscape, 1)
	if m.state != stateMenu || m.input.Value != "" {
		t.Fatalf("expected menu with cleared input, got %d %q", m.state, m.input.Value)
	}
}

func TestQuit(t *testing.T) {
	next, cmd := newTestModel(modeBasic).Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m := next.(model)
	if !m.quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if m.View() != "" {
		t.Error("expected empty view after quit")
	}
}

func TestWithExt(t *testing.T) {
	tests := []struct {
		name, def, want string
	}{
		{"", plot.DefaultPNG, "graph.png"},
		{"plot", plot.DefaultPDF, "plot.pdf"},
		{"plot.png", plot.DefaultPDF, "plot.png"},
	}
	for _, tt := range tests {
		if got := withExt(tt.name, tt.def); got != tt.want {
			t.Errorf("withExt(%q, %q) = %q, want %q", tt.name, tt.def, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for i, name := range modeNames {
		if got := parseMode(name); got != mode(i) {
			t.Errorf("parseMode(%q) = %s", name, got)
		}
	}
	if parseMode("unknown") != modeBasic {
		t.Error("expected basic fallback")
	}
	if modeGraphical.next() != modeBasic {
		t.Error("expected graphical to wrap to basic")
	}
}
