package session

// MaxHistory is the number of entries kept; older entries are evicted.
const MaxHistory = 10

// Entry is one recorded calculation.
type Entry struct {
	Expression string
	Result     string
}

// History is a bounded, most-recent-first list of entries.
type History struct {
	entries []Entry
}

// Add records an entry at the front, evicting the oldest beyond MaxHistory.
func (h *History) Add(expression, result string) {
	h.entries = append([]Entry{{Expression: expression, Result: result}}, h.entries...)
	if len(h.entries) > MaxHistory {
		h.entries = h.entries[:MaxHistory]
	}
}

// Entries returns a copy of the entries, most recent first.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Clear removes every entry.
func (h *History) Clear() { h.entries = nil }
