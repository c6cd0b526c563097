// Package session implements the calculator's input and evaluation state
// machine: the editable buffer, the Ans register, equals-chaining and the
// bounded history.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/private-landing/calc/internal/eval"
	"github.com/private-landing/calc/internal/notation"
)

// ErrorToken is shown on the screen when an evaluation fails.
const ErrorToken = "Error"

// NoResultNotice is shown when Ans is pressed before any success.
const NoResultNotice = "No previous result available."

var ErrNoResult = errors.New("no previous result")

// Evaluator evaluates normalized text.
type Evaluator interface {
	Evaluate(text string) (eval.Value, error)
}

// Calculator owns the buffer, the last result, the equals flag and the
// history. It is not safe for concurrent use; callers serialize access.
type Calculator struct {
	ev  Evaluator
	log *zap.Logger

	buf           InputBuffer
	screen        string
	lastResult    string
	hasResult     bool
	justEvaluated bool
	notice        string
	history       History
}

// New returns an empty calculator. A nil logger disables logging.
func New(ev Evaluator, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{ev: ev, log: logger}
}

// Buffer returns the display-grammar expression being edited.
func (c *Calculator) Buffer() string { return c.buf.Value }

// Screen returns what the display currently shows.
func (c *Calculator) Screen() string { return c.screen }

// LastResult returns the last successful result and whether one exists.
func (c *Calculator) LastResult() (string, bool) { return c.lastResult, c.hasResult }

// JustEvaluated reports whether the previous transition was a successful
// equals.
func (c *Calculator) JustEvaluated() bool { return c.justEvaluated }

// Notice returns and clears the pending user notice.
func (c *Calculator) Notice() string {
	n := c.notice
	c.notice = ""
	return n
}

// History returns the recorded entries, most recent first.
func (c *Calculator) History() []Entry { return c.history.Entries() }

func (c *Calculator) show() { c.screen = c.buf.Value }

// Append adds token to the buffer. Right after an equals a purely numeric
// token starts a new expression instead.
func (c *Calculator) Append(token string) {
	if c.justEvaluated && isNumeric(token) {
		c.buf.Value = token
	} else {
		c.buf.AppendString(token)
	}
	c.justEvaluated = false
	c.show()
}

func isNumeric(token string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	return err == nil
}

// Backspace removes the last character.
func (c *Calculator) Backspace() {
	c.buf.Backspace()
	c.justEvaluated = false
	c.show()
}

// Clear empties the buffer.
func (c *Calculator) Clear() {
	c.buf.Clear()
	c.justEvaluated = false
	c.show()
}

// ToggleSign flips the leading minus of the whole buffer.
func (c *Calculator) ToggleSign() {
	c.buf.ToggleSign()
	c.justEvaluated = false
	c.show()
}

// Decimal appends '.' unless the buffer already holds one anywhere.
func (c *Calculator) Decimal() {
	if c.buf.HasDecimal() {
		return
	}
	c.Append(".")
}

// Equals normalizes and evaluates the buffer. On success the result replaces
// the buffer and is recorded; on failure the screen shows ErrorToken and
// nothing else changes.
func (c *Calculator) Equals() (string, error) {
	expr := c.buf.Value
	result, err := c.evaluate(expr)
	if err != nil {
		c.log.Debug("evaluation failed", zap.String("expression", expr), zap.Error(err))
		c.screen = ErrorToken
		c.justEvaluated = false
		return ErrorToken, err
	}

	c.log.Debug("evaluated", zap.String("expression", expr), zap.String("result", result))
	c.history.Add(expr, result)
	c.lastResult, c.hasResult = result, true
	c.buf.Value = result
	c.screen = result
	c.justEvaluated = true
	return result, nil
}

// evaluate normalizes display text and evaluates it, converting evaluator
// panics to errors.
func (c *Calculator) evaluate(display string) (result string, err error) {
	if strings.TrimSpace(display) == "" {
		return "", errors.New("empty expression")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evaluator panic: %v", r)
		}
	}()
	v, err := c.ev.Evaluate(notation.Normalize(display))
	if err != nil {
		return "", err
	}
	return eval.Format(v), nil
}

// InsertAns appends the last result, or sets NoResultNotice when there is
// none.
func (c *Calculator) InsertAns() error {
	if !c.hasResult {
		c.notice = NoResultNotice
		return ErrNoResult
	}
	c.Append(c.lastResult)
	return nil
}

// AppendTranscript appends text produced from speech. It never replaces the
// buffer.
func (c *Calculator) AppendTranscript(text string) {
	c.buf.AppendString(text)
	c.justEvaluated = false
	c.show()
}

// AddToHistory records an entry produced outside the keypad, such as a
// matrix operation or a solved equation.
func (c *Calculator) AddToHistory(expression, result string) {
	c.history.Add(expression, result)
}

// ClearHistory removes every history entry.
func (c *Calculator) ClearHistory() {
	c.history.Clear()
}
