package toolbox

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

const (
	MinBase = 2
	MaxBase = 36
)

// ConvertBase reads number in base from and prints it in base to, upper
// case. Like a JavaScript parseInt, the longest valid prefix is used and a
// 0x prefix is accepted for base 16.
func ConvertBase(number string, from, to int) Result {
	number = strings.TrimSpace(number)
	if number == "" {
		return shown("Please enter a number.")
	}

	var text string
	value, ok := parseIntPrefix(number, from)
	switch {
	case !ok:
		text = "Invalid number for the selected 'From Base'."
	case to < MinBase || to > MaxBase:
		text = fmt.Sprintf("Error during conversion: radix must be between %d and %d", MinBase, MaxBase)
	default:
		text = strings.ToUpper(value.Text(to))
	}
	return recorded(text, fmt.Sprintf("Convert %s (base %d) to base %d", number, from, to), text)
}

func parseIntPrefix(s string, base int) (*big.Int, bool) {
	if base < MinBase || base > MaxBase {
		return nil, false
	}
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if base == 16 && len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}

	end := 0
	for end < len(s) && digitValue(s[end]) < base {
		end++
	}
	if end == 0 {
		return nil, false
	}
	v, ok := new(big.Int).SetString(s[:end], base)
	if !ok {
		return nil, false
	}
	if neg {
		v.Neg(v)
	}
	return v, true
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return MaxBase
}
