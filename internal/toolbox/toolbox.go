// Package toolbox holds the calculator's side tools: matrix operations,
// equation solving, base conversion, statistics and unit conversion. Each
// tool returns the text to show and, where the tool records one, a history
// entry for the session.
package toolbox

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/private-landing/calc/internal/session"
)

// Result is a tool outcome.
type Result struct {
	Text    string
	History *session.Entry
}

func recorded(text, expression, result string) Result {
	return Result{Text: text, History: &session.Entry{Expression: expression, Result: result}}
}

func shown(text string) Result {
	return Result{Text: text}
}

// Record adds the result's history entry, if any, to calc.
func (r Result) Record(calc *session.Calculator) {
	if r.History != nil {
		calc.AddToHistory(r.History.Expression, r.History.Result)
	}
}

var floatPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// parseFloatPrefix reads the longest leading decimal literal of s, ignoring
// leading whitespace and whatever follows it: "12abc" is 12.
func parseFloatPrefix(s string) (float64, bool) {
	m := floatPrefix.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// range errors still carry ±Inf or 0, as a JavaScript parse would
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}
	return v, true
}

// fixed formats x with n decimals. Negative zero prints as zero.
func fixed(x float64, n int) string {
	if x == 0 {
		x = 0
	}
	return fmt.Sprintf("%.*f", n, x)
}
