package eval

import (
	"strings"
)

// Node is a parsed expression. String renders it back in evaluator grammar,
// parenthesising only where precedence requires it.
type Node interface {
	String() string
	precedence() int
}

const (
	precAdd = iota + 1
	precMul
	precUnary
	precPow
	precPostfix
	precPrimary
)

// Number is a numeric literal.
type Number struct {
	Value float64
}

// Symbol is a constant or variable reference.
type Symbol struct {
	Name string
}

// Str is a string literal.
type Str struct {
	Value string
}

// Unary is a prefix sign.
type Unary struct {
	Op string
	X  Node
}

// Binary is an infix operation. Op is one of + - * / ^ mod.
type Binary struct {
	Op   string
	L, R Node
}

// Call is a function application.
type Call struct {
	Name string
	Args []Node
}

// Factorial is the postfix ! operator.
type Factorial struct {
	X Node
}

// MatrixLit is a bracketed literal: rows separated by ';', columns by ','.
type MatrixLit struct {
	Rows [][]Node
}

func (n *Number) String() string { return FormatNumber(n.Value) }
func (n *Number) precedence() int {
	if n.Value < 0 {
		return precUnary
	}
	return precPrimary
}

func (s *Symbol) String() string { return s.Name }
func (s *Symbol) precedence() int { return precPrimary }
func (s *Str) String() string { return `"` + s.Value + `"` }
func (s *Str) precedence() int { return precPrimary }
func (c *Call) precedence() int { return precPrimary }
func (m *MatrixLit) precedence() int { return precPrimary }
func (f *Factorial) precedence() int { return precPostfix }
func (u *Unary) precedence() int { return precUnary }

func (u *Unary) String() string {
	x := u.X.String()
	if u.X.precedence() <= precUnary {
		x = "(" + x + ")"
	}
	return u.Op + x
}

func (b *Binary) precedence() int { return opPrecedence(b.Op) }

func opPrecedence(op string) int {
	switch op {
	case "+", "-":
		return precAdd
	case "*", "/", "mod":
		return precMul
	case "^":
		return precPow
	}
	return precPrimary
}

func (b *Binary) String() string {
	p := b.precedence()
	l, r := b.L.String(), b.R.String()
	lp, rp := b.L.precedence(), b.R.precedence()

	if p == precPow {
		// right associative
		if lp <= precPow {
			l = "(" + l + ")"
		}
		if rp < precPow && rp != precUnary {
			r = "(" + r + ")"
		}
	} else {
		if lp < p {
			l = "(" + l + ")"
		}
		if rp < p || rp == p && b.Op != "+" && b.Op != "*" {
			r = "(" + r + ")"
		}
	}
	return l + " " + b.Op + " " + r
}

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

func (f *Factorial) String() string {
	x := f.X.String()
	if f.X.precedence() < precPostfix {
		x = "(" + x + ")"
	}
	return x + "!"
}

func (m *MatrixLit) String() string {
	rows := make([]string, len(m.Rows))
	for i, row := range m.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cell.String()
		}
		rows[i] = strings.Join(cells, ", ")
	}
	return "[" + strings.Join(rows, "; ") + "]"
}
