package toolbox

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"

	"github.com/private-landing/calc/internal/eval"
)

// MatrixOps lists the operations accepted by MatrixOperation, in menu order.
var MatrixOps = []string{
	"add", "subtract", "multiply", "inverse", "transpose",
	"determinant", "dot", "cross", "magnitude",
}

var matrixInfix = map[string]string{"add": "+", "subtract": "-", "multiply": "*"}

var (
	errMissingOperand = errors.New("operation needs a second operand")
	errInvalidOp      = errors.New("invalid operation")
)

// MatrixOperation evaluates a and b as expressions and applies op. b may be
// empty for single-operand operations. The result is shown as indented JSON
// and recorded compact.
func MatrixOperation(op, a, b string) Result {
	raw, err := matrixOperation(op, strings.TrimSpace(a), strings.TrimSpace(b))
	if errors.Is(err, errInvalidOp) {
		return recorded("Invalid operation.", "Matrix/Vector Op: "+op, "Invalid operation.")
	}
	if err != nil {
		return shown("Error: " + err.Error())
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return shown("Error: " + err.Error())
	}
	return recorded(out.String(), "Matrix/Vector Op: "+op, string(raw))
}

func matrixOperation(op, a, b string) ([]byte, error) {
	if !slices.Contains(MatrixOps, op) {
		return nil, errInvalidOp
	}
	left, err := eval.Parse(a)
	if err != nil {
		return nil, err
	}
	var right eval.Node
	if b != "" {
		if right, err = eval.Parse(b); err != nil {
			return nil, err
		}
	}

	var n eval.Node
	switch op {
	case "add", "subtract", "multiply":
		if right == nil {
			return nil, errMissingOperand
		}
		n = &eval.Binary{Op: matrixInfix[op], L: left, R: right}
	case "dot", "cross":
		if right == nil {
			return nil, errMissingOperand
		}
		n = &eval.Call{Name: op, Args: []eval.Node{left, right}}
	case "inverse":
		n = &eval.Call{Name: "inv", Args: []eval.Node{left}}
	case "transpose":
		n = &eval.Call{Name: "transpose", Args: []eval.Node{left}}
	case "determinant":
		n = &eval.Call{Name: "det", Args: []eval.Node{left}}
	case "magnitude":
		n = &eval.Call{Name: "norm", Args: []eval.Node{left}}
	}

	v, err := eval.Eval(n, nil)
	if err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case eval.Num:
		return json.Marshal(float64(x))
	case eval.Matrix:
		return json.Marshal(x.Matrix)
	}
	return json.Marshal(v.String())
}
