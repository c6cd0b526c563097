package session

import (
	"errors"
	"fmt"

	"github.com/private-landing/calc/internal/notation"
)

// Category groups keypad actions.
type Category int

const (
	Number Category = iota
	Operator
	Function
)

func (c Category) String() string {
	switch c {
	case Number:
		return "number"
	case Operator:
		return "operator"
	case Function:
		return "function"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

var ErrUnknownAction = errors.New("unknown action")

var operatorSymbols = map[string]string{
	"add":      "+",
	"subtract": notation.Minus,
	"multiply": notation.Times,
	"divide":   notation.Divide,
	"modulus":  notation.Modulus,
}

// functionTokens are function-category actions that only append text.
var functionTokens = map[string]string{
	"sqrt":        notation.Sqrt + "(",
	"pi":          notation.Pi,
	"sin":         "sin(",
	"cos":         "cos(",
	"tan":         "tan(",
	"log":         "log(",
	"ln":          "ln(",
	"exp":         "exp(",
	"pow":         notation.Exponent,
	"square":      notation.Exponent + "2",
	"npr":         "P(",
	"ncr":         "C(",
	"open-paren":  "(",
	"close-paren": ")",
	"factorial":   notation.Factor,
}

// Press dispatches a keypad action. Unknown actions return ErrUnknownAction
// and leave the calculator untouched. Evaluation failures from equals and a
// missing Ans are reported through Screen and Notice, not as errors.
func (c *Calculator) Press(cat Category, action string) error {
	switch cat {
	case Number:
		if !isNumeric(action) {
			return fmt.Errorf("%s %q: %w", cat, action, ErrUnknownAction)
		}
		c.Append(action)
		return nil
	case Operator:
		sym, ok := operatorSymbols[action]
		if !ok {
			return fmt.Errorf("%s %q: %w", cat, action, ErrUnknownAction)
		}
		c.Append(sym)
		return nil
	case Function:
		return c.pressFunction(action)
	}
	return fmt.Errorf("%s %q: %w", cat, action, ErrUnknownAction)
}

func (c *Calculator) pressFunction(action string) error {
	switch action {
	case "clear":
		c.Clear()
	case "backspace":
		c.Backspace()
	case "toggle-sign":
		c.ToggleSign()
	case "decimal":
		c.Decimal()
	case "equals":
		_, _ = c.Equals()
	case "ans":
		_ = c.InsertAns()
	default:
		tok, ok := functionTokens[action]
		if !ok {
			return fmt.Errorf("%s %q: %w", Function, action, ErrUnknownAction)
		}
		c.Append(tok)
	}
	return nil
}
