package session

import (
	"strings"
	"unicode/utf8"
)

// InputBuffer holds display-grammar text as it is typed.
type InputBuffer struct {
	Value string
}

// Append adds runes to the buffer.
func (b *InputBuffer) Append(runes []rune) {
	if len(runes) > 0 {
		b.Value += string(runes)
	}
}

// AppendString adds s to the buffer.
func (b *InputBuffer) AppendString(s string) {
	b.Value += s
}

// Backspace removes the last character. Multi-byte symbols such as π and √
// are removed whole.
func (b *InputBuffer) Backspace() {
	if len(b.Value) > 0 {
		_, size := utf8.DecodeLastRuneInString(b.Value)
		b.Value = b.Value[:len(b.Value)-size]
	}
}

// Clear resets the buffer.
func (b *InputBuffer) Clear() {
	b.Value = ""
}

// ToggleSign strips one leading '-' or prepends one. An empty buffer is left
// alone.
func (b *InputBuffer) ToggleSign() {
	switch {
	case strings.HasPrefix(b.Value, "-"):
		b.Value = b.Value[1:]
	case b.Value != "":
		b.Value = "-" + b.Value
	}
}

// HasDecimal reports whether a '.' appears anywhere in the buffer.
func (b *InputBuffer) HasDecimal() bool {
	return strings.Contains(b.Value, ".")
}
