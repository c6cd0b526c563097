package eval

import (
	"fmt"
	"strconv"
)

// Parse turns evaluator text into a Node.
//
// Precedence, lowest first: + -; * / mod; implicit multiplication; unary
// + -; ^ (right associative); postfix !.
func Parse(src string) (Node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, &SyntaxError{Pos: 0, Msg: "empty expression"}
	}
	n, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		if t.is(")") {
			return nil, &SyntaxError{Pos: t.pos, Msg: "unmatched closing parenthesis"}
		}
		return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected " + t.String()}
	}
	return n, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(op string) error {
	t := p.next()
	if !t.is(op) {
		if op == ")" && t.kind == tokEOF {
			return &SyntaxError{Pos: t.pos, Msg: "missing closing parenthesis"}
		}
		return &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("expected %q, found %s", op, t)}
	}
	return nil
}

func (p *parser) isMod() bool {
	t := p.peek()
	return t.kind == tokIdent && t.text == "mod"
}

func (p *parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if !t.is("+") && !t.is("-") {
			return left, nil
		}
		p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: t.text, L: left, R: right}
	}
}

func (p *parser) parseMultiplicative() (Node, error) {
	left, err := p.parseImplicit()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch t := p.peek(); {
		case t.is("*"), t.is("/"):
			op = t.text
		case p.isMod():
			op = "mod"
		default:
			return left, nil
		}
		p.next()
		right, err := p.parseImplicit()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, L: left, R: right}
	}
}

// parseImplicit handles juxtaposition such as 2pi, 3(4) and 2x.
func (p *parser) parseImplicit() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.startsImplicitOperand() {
		t := p.peek()
		if t.kind == tokNumber {
			return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected number " + t.String()}
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: "*", L: left, R: right}
	}
	return left, nil
}

func (p *parser) startsImplicitOperand() bool {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		return true
	case tokIdent:
		return t.text != "mod"
	case tokOp:
		return t.text == "("
	}
	return false
}

func (p *parser) parseUnary() (Node, error) {
	if t := p.peek(); t.is("-") || t.is("+") {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: t.text, X: x}, nil
	}
	return p.parsePow()
}

func (p *parser) parsePow() (Node, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if !p.peek().is("^") {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: "^", L: base, R: exp}, nil
}

func (p *parser) parsePostfix() (Node, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peek().is("!") {
		p.next()
		x = &Factorial{X: x}
	}
	return x, nil
}

func (p *parser) parsePrimary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, &SyntaxError{Pos: t.pos, Msg: "invalid number " + t.String()}
		}
		return &Number{Value: v}, nil
	case tokString:
		return &Str{Value: t.text}, nil
	case tokIdent:
		if t.text == "mod" {
			return nil, &SyntaxError{Pos: t.pos, Msg: "missing left operand for mod"}
		}
		if p.peek().is("(") {
			p.next()
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return &Call{Name: t.text, Args: args}, nil
		}
		return &Symbol{Name: t.text}, nil
	case tokOp:
		switch t.text {
		case "(":
			n, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return n, nil
		case "[":
			return p.parseMatrix(t)
		}
	case tokEOF:
		return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected end of expression"}
	}
	return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected " + t.String()}
}

func (p *parser) parseArgs() ([]Node, error) {
	var args []Node
	if p.peek().is(")") {
		p.next()
		return args, nil
	}
	for {
		arg, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		t := p.next()
		switch {
		case t.is(")"):
			return args, nil
		case t.is(","):
		case t.kind == tokEOF:
			return nil, &SyntaxError{Pos: t.pos, Msg: "missing closing parenthesis"}
		default:
			return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected " + t.String() + " in argument list"}
		}
	}
}

func (p *parser) parseMatrix(open token) (Node, error) {
	lit := &MatrixLit{}
	if p.peek().is("]") {
		return nil, &SyntaxError{Pos: open.pos, Msg: "empty matrix"}
	}
	row := []Node{}
	for {
		cell, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		row = append(row, cell)
		t := p.next()
		switch {
		case t.is(","):
		case t.is(";"):
			lit.Rows = append(lit.Rows, row)
			row = []Node{}
		case t.is("]"):
			lit.Rows = append(lit.Rows, row)
			return lit, nil
		case t.kind == tokEOF:
			return nil, &SyntaxError{Pos: open.pos, Msg: "missing closing bracket"}
		default:
			return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected " + t.String() + " in matrix"}
		}
	}
}
