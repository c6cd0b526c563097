package main

import (
	"slices"

	"github.com/private-landing/calc/internal/session"
)

type mode int

const (
	modeBasic mode = iota
	modeScientific
	modeGraphical
)

var modeNames = []string{"basic", "scientific", "graphical"}

func (md mode) String() string { return modeNames[md] }

func (md mode) next() mode { return (md + 1) % mode(len(modeNames)) }

func parseMode(s string) mode {
	if i := slices.Index(modeNames, s); i >= 0 {
		return mode(i)
	}
	return modeBasic
}

// Graph keys act on the model rather than the calculator.
const (
	graphX          = "x"
	graphPlot       = "plot"
	graphDerivative = "derivative"
	graphExport     = "export"
)

type button struct {
	label  string
	cat    session.Category
	action string
	graph  string
}

func num(d string) button            { return button{label: d, cat: session.Number, action: d} }
func op(label, action string) button { return button{label: label, cat: session.Operator, action: action} }
func fn(label, action string) button { return button{label: label, cat: session.Function, action: action} }
func graph(label, g string) button   { return button{label: label, graph: g} }

var basicKeys = [][]button{
	{fn("C", "clear"), fn("⌫", "backspace"), fn("±", "toggle-sign"), op("÷", "divide")},
	{num("7"), num("8"), num("9"), op("×", "multiply")},
	{num("4"), num("5"), num("6"), op("−", "subtract")},
	{num("1"), num("2"), num("3"), op("+", "add")},
	{num("0"), fn(".", "decimal"), op("%", "modulus"), fn("=", "equals")},
}

var scientificKeys = [][]button{
	{fn("sin", "sin"), fn("cos", "cos"), fn("tan", "tan"), fn("π", "pi")},
	{fn("log", "log"), fn("ln", "ln"), fn("exp", "exp"), fn("√", "sqrt")},
	{fn("xʸ", "pow"), fn("x²", "square"), fn("(", "open-paren"), fn(")", "close-paren")},
	{fn("nPr", "npr"), fn("nCr", "ncr"), fn("n!", "factorial"), fn("Ans", "ans")},
}

var graphKeys = [][]button{
	{graph("x", graphX), graph("plot", graphPlot), graph("f′(x)", graphDerivative), graph("PNG", graphExport)},
	{fn("sin", "sin"), fn("cos", "cos"), fn("(", "open-paren"), fn(")", "close-paren")},
}

var (
	scientificLayout = append(append([][]button{}, scientificKeys...), basicKeys...)
	graphLayout      = append(append([][]button{}, graphKeys...), basicKeys...)
)

func layout(md mode) [][]button {
	switch md {
	case modeScientific:
		return scientificLayout
	case modeGraphical:
		return graphLayout
	}
	return basicKeys
}

// typedKeys append themselves when typed.
const typedKeys = "0123456789+-*/.()!%^"
