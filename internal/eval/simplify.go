package eval

import (
	"math"
)

// maxSimplifyPasses bounds rewriting; every rule shrinks or reorders the
// tree, so a handful of passes reaches a fixed point in practice.
const maxSimplifyPasses = 8

// Simplify applies constant folding and identity rules until the tree stops
// changing. Folding only happens when the result is an exact integer, so
// 1 / 3 stays symbolic.
func Simplify(n Node) Node {
	prev := n.String()
	for i := 0; i < maxSimplifyPasses; i++ {
		n = simplifyNode(n)
		cur := n.String()
		if cur == prev {
			break
		}
		prev = cur
	}
	return n
}

func simplifyNode(n Node) Node {
	switch n := n.(type) {
	case *Unary:
		x := simplifyNode(n.X)
		if n.Op == "+" {
			return x
		}
		switch v := x.(type) {
		case *Number:
			return &Number{Value: -v.Value}
		case *Unary:
			if v.Op == "-" {
				return v.X
			}
		}
		return &Unary{Op: "-", X: x}
	case *Binary:
		return simplifyBinary(n.Op, simplifyNode(n.L), simplifyNode(n.R))
	case *Call:
		args := make([]Node, len(n.Args))
		for i, a := range n.Args {
			args[i] = simplifyNode(a)
		}
		return &Call{Name: n.Name, Args: args}
	case *Factorial:
		return &Factorial{X: simplifyNode(n.X)}
	case *MatrixLit:
		rows := make([][]Node, len(n.Rows))
		for i, row := range n.Rows {
			rows[i] = make([]Node, len(row))
			for j, cell := range row {
				rows[i][j] = simplifyNode(cell)
			}
		}
		return &MatrixLit{Rows: rows}
	}
	return n
}

func numberOf(n Node) (float64, bool) {
	num, ok := n.(*Number)
	if !ok {
		return 0, false
	}
	return num.Value, true
}

func isConst(n Node, v float64) bool {
	x, ok := numberOf(n)
	return ok && x == v
}

func isInteger(x float64) bool {
	return x == math.Trunc(x) && math.Abs(x) < 1e15
}

func simplifyBinary(op string, l, r Node) Node {
	a, lnum := numberOf(l)
	b, rnum := numberOf(r)
	if lnum && rnum && isInteger(a) && isInteger(b) {
		if v := numericOp(op, a, b); isInteger(v) && !(op == "^" && b < 0) {
			return &Number{Value: v}
		}
	}

	switch op {
	case "+":
		switch {
		case isConst(l, 0):
			return r
		case isConst(r, 0):
			return l
		case rnum && b < 0:
			return &Binary{Op: "-", L: l, R: &Number{Value: -b}}
		}
		if u, ok := r.(*Unary); ok && u.Op == "-" {
			return &Binary{Op: "-", L: l, R: u.X}
		}
	case "-":
		switch {
		case isConst(r, 0):
			return l
		case isConst(l, 0):
			return simplifyNode(&Unary{Op: "-", X: r})
		case rnum && b < 0:
			return &Binary{Op: "+", L: l, R: &Number{Value: -b}}
		}
		if u, ok := r.(*Unary); ok && u.Op == "-" {
			return &Binary{Op: "+", L: l, R: u.X}
		}
	case "*":
		switch {
		case isConst(l, 0), isConst(r, 0):
			return &Number{Value: 0}
		case isConst(l, 1):
			return r
		case isConst(r, 1):
			return l
		case isConst(l, -1):
			return simplifyNode(&Unary{Op: "-", X: r})
		case isConst(r, -1):
			return simplifyNode(&Unary{Op: "-", X: l})
		case rnum && !lnum:
			// constants lead: x * 3 -> 3 * x
			return &Binary{Op: "*", L: r, R: l}
		}
		if lnum {
			if inner, ok := r.(*Binary); ok && inner.Op == "*" {
				if c, ok := numberOf(inner.L); ok {
					return &Binary{Op: "*", L: &Number{Value: a * c}, R: inner.R}
				}
			}
		}
	case "/":
		switch {
		case isConst(r, 1):
			return l
		case isConst(l, 0) && !isConst(r, 0):
			return &Number{Value: 0}
		}
	case "^":
		switch {
		case isConst(r, 1):
			return l
		case isConst(r, 0), isConst(l, 1):
			return &Number{Value: 1}
		}
	}
	return &Binary{Op: op, L: l, R: r}
}
