// Package voice turns a speech transcript into display-grammar calculator
// input.
package voice

import (
	"regexp"
	"strings"

	"github.com/private-landing/calc/internal/notation"
)

type replacement struct {
	re *regexp.Regexp
	to string
}

// Applied in order, anywhere in the text: "by" also matches inside words.
var replacements = []replacement{
	{regexp.MustCompile(`plus`), "+"},
	{regexp.MustCompile(`minus`), "-"},
	{regexp.MustCompile(`times|into`), "*"},
	{regexp.MustCompile(`divided by|by`), "/"},
	{regexp.MustCompile(`modulus|mod`), notation.Modulus},
	{regexp.MustCompile(`pi`), notation.Pi},
	{regexp.MustCompile(`square root of`), notation.Sqrt + "("},
	{regexp.MustCompile(`power`), notation.Exponent},
	{regexp.MustCompile(`factorial`), notation.Factor},
}

// ToExpression lowercases transcript and maps spoken operators to symbols.
func ToExpression(transcript string) string {
	out := strings.ToLower(transcript)
	for _, r := range replacements {
		out = r.re.ReplaceAllLiteralString(out, r.to)
	}
	return out
}
