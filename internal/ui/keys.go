package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the calculator bindings shown in the help bar.
type KeyMap struct {
	Equals    key.Binding
	Backspace key.Binding
	Clear     key.Binding
	Move      key.Binding
	Press     key.Binding
	Mode      key.Binding
	Theme     key.Binding
	History   key.Binding
	Tools     key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the calculator bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Equals:    key.NewBinding(key.WithKeys("enter", "="), key.WithHelp("enter", "equals")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Move:      key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", "move")),
		Press:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "press key")),
		Mode:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "mode")),
		Theme:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		History:   key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "history")),
		Tools:     key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "tools")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Equals, k.Clear, k.Mode, k.Tools, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Equals, k.Backspace, k.Clear},
		{k.Move, k.Press, k.Mode},
		{k.Theme, k.History, k.Tools, k.Quit},
	}
}
