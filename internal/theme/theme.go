// Package theme holds the colour palettes of the TUI.
package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name string

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Text       lipgloss.Color
	TextDim    lipgloss.Color
	TextBright lipgloss.Color

	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	Link    lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
	Info    lipgloss.Color

	TabActive   lipgloss.Color
	TabInactive lipgloss.Color
}

// palette lists colours in Theme field order, Primary through TabInactive.
type palette [15]string

func fromPalette(name string, p palette) Theme {
	c := func(i int) lipgloss.Color { return lipgloss.Color(p[i]) }
	return Theme{
		Name:        name,
		Primary:     c(0),
		Secondary:   c(1),
		Accent:      c(2),
		Text:        c(3),
		TextDim:     c(4),
		TextBright:  c(5),
		Background:  c(6),
		Surface:     c(7),
		Border:      c(8),
		Link:        c(9),
		Error:       c(10),
		Warning:     c(11),
		Info:        c(12),
		TabActive:   c(13),
		TabInactive: c(14),
	}
}

var themes = map[string]Theme{
	"default": Default,
	"gruvbox": fromPalette("gruvbox", palette{
		"#D65D0E", "#458588", "#D79921",
		"#EBDBB2", "#928374", "#FBF1C7",
		"#282828", "#3C3836", "#504945",
		"#83A598", "#FB4934", "#FABD2F", "#83A598",
		"#D65D0E", "#665C54",
	}),
	"nord": fromPalette("nord", palette{
		"#88C0D0", "#81A1C1", "#EBCB8B",
		"#ECEFF4", "#4C566A", "#ECEFF4",
		"#2E3440", "#3B4252", "#434C5E",
		"#88C0D0", "#BF616A", "#EBCB8B", "#5E81AC",
		"#88C0D0", "#4C566A",
	}),
	"dracula": fromPalette("dracula", palette{
		"#BD93F9", "#8BE9FD", "#F1FA8C",
		"#F8F8F2", "#6272A4", "#F8F8F2",
		"#282A36", "#44475A", "#6272A4",
		"#8BE9FD", "#FF5555", "#F1FA8C", "#8BE9FD",
		"#BD93F9", "#6272A4",
	}),
	"tokyonight": fromPalette("tokyonight", palette{
		"#7AA2F7", "#7DCFFF", "#E0AF68",
		"#C0CAF5", "#565F89", "#C0CAF5",
		"#1A1B26", "#24283B", "#3B4261",
		"#7DCFFF", "#F7768E", "#E0AF68", "#7AA2F7",
		"#7AA2F7", "#3B4261",
	}),
}

// Default is the built-in theme.
var Default = fromPalette("default", palette{
	"#7C3AED", "#06B6D4", "#F59E0B",
	"#E2E8F0", "#64748B", "#F8FAFC",
	"#0F172A", "#1E293B", "#334155",
	"#38BDF8", "#EF4444", "#F59E0B", "#3B82F6",
	"#7C3AED", "#475569",
})

// Current is the active theme.
var Current = Default

// Set changes the active theme by name.
func Set(name string) bool {
	if t, ok := themes[name]; ok {
		Current = t
		return true
	}
	return false
}

// List returns all theme names, sorted.
func List() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
