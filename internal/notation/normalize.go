// Package notation converts the calculator's display symbols into the
// grammar accepted by the evaluator.
package notation

import (
	"regexp"
	"strings"
)

// Display symbols as they appear on keypad buttons.
const (
	Pi       = "π"
	Sqrt     = "√"
	Times    = "×"
	Divide   = "÷"
	Minus    = "−"
	Modulus  = "%"
	Factor   = "!"
	Exponent = "^"
)

type rule struct {
	re   *regexp.Regexp // nil for literal replacements
	from string
	to   string
}

// rules run once each, in order. Later patterns may match text produced by
// earlier ones, so the order is part of the contract.
var rules = []rule{
	{from: Pi, to: "pi"},
	{from: Sqrt, to: "sqrt"},
	{from: Times, to: "*"},
	{from: Divide, to: "/"},
	{from: Minus, to: "-"},
	{from: Modulus, to: " mod "},
	{re: regexp.MustCompile(`(\d+)P\((\d+)\)`), to: "permutations(${1},${2})"},
	{re: regexp.MustCompile(`(\d+)C\((\d+)\)`), to: "combinations(${1},${2})"},
	{from: "P(", to: "permutations("},
	{from: "nCr(", to: "combinations("},
	{from: "C(", to: "combinations("},
}

// Normalize rewrites display text into evaluator text. It never fails; text
// matching no rule is returned unchanged.
func Normalize(display string) string {
	out := display
	for _, r := range rules {
		if r.re != nil {
			out = r.re.ReplaceAllString(out, r.to)
			continue
		}
		out = strings.ReplaceAll(out, r.from, r.to)
	}
	return out
}
