package eval

import (
	"math"
)

// Func is a callable bound in a Scope or among the built-ins.
type Func func(args []Value) (Value, error)

// Scope binds names for one evaluation. Bindings shadow the built-ins; a
// nil *Scope means built-ins only.
type Scope struct {
	vars  map[string]Value
	funcs map[string]Func
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{vars: map[string]Value{}, funcs: map[string]Func{}}
}

// Set binds a variable or constant.
func (s *Scope) Set(name string, v Value) *Scope {
	s.vars[name] = v
	return s
}

// Define binds a function.
func (s *Scope) Define(name string, fn Func) *Scope {
	s.funcs[name] = fn
	return s
}

func (s *Scope) variable(name string) (Value, bool) {
	if s != nil {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	v, ok := constants[name]
	return v, ok
}

func (s *Scope) function(name string) (Func, bool) {
	if s != nil {
		if fn, ok := s.funcs[name]; ok {
			return fn, true
		}
	}
	fn, ok := builtins[name]
	return fn, ok
}

// InteractiveScope is used for keypad evaluation. Trigonometry is in
// radians and log is base 10.
func InteractiveScope() *Scope {
	return NewScope().
		Set("PI", Num(math.Pi)).
		Define("sin", builtins["sin"]).
		Define("cos", builtins["cos"]).
		Define("tan", builtins["tan"]).
		Define("log", builtins["log10"]).
		Define("ln", builtins["ln"]).
		Define("exp", builtins["exp"]).
		Define("permutations", builtins["permutations"]).
		Define("combinations", builtins["combinations"])
}

// PlotScope is used when sampling f(x). Functions are plain math package
// calls on numbers; SetX moves the sample point.
func PlotScope(x float64) *Scope {
	return NewScope().
		Set("x", Num(x)).
		Set("PI", Num(math.Pi)).
		Define("sin", real1("sin", math.Sin)).
		Define("cos", real1("cos", math.Cos)).
		Define("tan", real1("tan", math.Tan)).
		Define("log", real1("log", math.Log10)).
		Define("ln", real1("ln", math.Log)).
		Define("exp", real1("exp", math.Exp))
}

// SetX rebinds the plot variable.
func (s *Scope) SetX(x float64) { s.vars["x"] = Num(x) }

// real1 wraps a numeric function with no matrix support.
func real1(name string, fn func(float64) float64) Func {
	return func(args []Value) (Value, error) {
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		x, err := asNumber(args[0], name)
		if err != nil {
			return nil, err
		}
		return Num(fn(x)), nil
	}
}
