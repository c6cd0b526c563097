package ui

import "github.com/charmbracelet/lipgloss"

// Theme is a named palette of ANSI colors.
type Theme struct {
	Name    string
	Title   lipgloss.Color
	Active  lipgloss.Color
	Dim     lipgloss.Color
	Error   lipgloss.Color
	Success lipgloss.Color
	Prompt  lipgloss.Color
	Key     lipgloss.Color
	Screen  lipgloss.Color
}

var (
	Dark = Theme{
		Name: "dark", Title: "5", Active: "2", Dim: "8", Error: "1",
		Success: "2", Prompt: "6", Key: "7", Screen: "15",
	}
	Light = Theme{
		Name: "light", Title: "13", Active: "4", Dim: "7", Error: "9",
		Success: "2", Prompt: "4", Key: "0", Screen: "0",
	}
)

var (
	TitleStyle     lipgloss.Style
	ActiveStyle    lipgloss.Style
	DimStyle       lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	PromptStyle    lipgloss.Style
	HeaderStyle    lipgloss.Style
	KeyStyle       lipgloss.Style
	CursorKeyStyle lipgloss.Style
	ScreenStyle    lipgloss.Style

	current Theme
)

func init() { ApplyTheme(Dark) }

// ApplyTheme rebuilds the package styles from t.
func ApplyTheme(t Theme) {
	current = t
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Title)
	ActiveStyle = lipgloss.NewStyle().Foreground(t.Active)
	DimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	PromptStyle = lipgloss.NewStyle().Foreground(t.Prompt)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Title)
	KeyStyle = lipgloss.NewStyle().Foreground(t.Key).Width(7).Align(lipgloss.Center)
	CursorKeyStyle = KeyStyle.Bold(true).Reverse(true).Foreground(t.Active)
	ScreenStyle = lipgloss.NewStyle().
		Foreground(t.Screen).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Dim).
		Padding(0, 1).
		Align(lipgloss.Right)
}

// ThemeByName returns the named theme, defaulting to Dark.
func ThemeByName(name string) Theme {
	if name == Light.Name {
		return Light
	}
	return Dark
}

// CurrentTheme returns the theme last applied.
func CurrentTheme() Theme { return current }

// ToggleTheme switches between the dark and light themes.
func ToggleTheme() Theme {
	if current.Name == Dark.Name {
		ApplyTheme(Light)
	} else {
		ApplyTheme(Dark)
	}
	return current
}
