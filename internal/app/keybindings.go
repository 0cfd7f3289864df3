package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for tpane.
type KeyMap struct {
	// Scrolling
	ScrollDown   key.Binding
	ScrollUp     key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding

	// Locations
	Open       key.Binding
	Back       key.Binding
	Forward    key.Binding
	Recent     key.Binding
	Reload     key.Binding
	FollowLink key.Binding

	// Tabs
	NewTab     key.Binding
	NewScratch key.Binding
	CloseTab   key.Binding
	ReopenTab  key.Binding
	ClosedTabs key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding

	// Modes
	CommandMode key.Binding
	Quit        key.Binding
	Help        key.Binding

	// Splits
	SplitVertical   key.Binding
	SplitHorizontal key.Binding
	SplitToggle     key.Binding
	FocusPane       key.Binding

	// Menus
	MenuDown   key.Binding
	MenuUp     key.Binding
	MenuSelect key.Binding
	MenuClose  key.Binding
}

// DefaultKeyMap returns the default vim-style keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "scroll down"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "scroll up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+d", "half page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("Ctrl+u", "half page up"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open file or URL"),
		),
		Back: key.NewBinding(
			key.WithKeys("H", "alt+left"),
			key.WithHelp("H", "go back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("L", "alt+right"),
			key.WithHelp("L", "go forward"),
		),
		Recent: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("Ctrl+h", "recent locations"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload file"),
		),
		FollowLink: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "follow link"),
		),
		NewTab: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("Ctrl+t", "new tab"),
		),
		NewScratch: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("Ctrl+n", "new scratch buffer"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("Ctrl+w", "close tab"),
		),
		ReopenTab: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "reopen closed tab"),
		),
		ClosedTabs: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "recently closed tabs"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("gt/Tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("gT/S-Tab", "prev tab"),
		),
		CommandMode: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command mode"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		SplitVertical: key.NewBinding(
			key.WithKeys("ctrl+\\"),
			key.WithHelp("Ctrl+\\", "split vertical"),
		),
		SplitHorizontal: key.NewBinding(
			key.WithKeys("ctrl+_"),
			key.WithHelp("Ctrl+_", "split horizontal"),
		),
		SplitToggle: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("Ctrl+o", "toggle split direction"),
		),
		FocusPane: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("Ctrl+l", "focus other pane"),
		),
		MenuDown: key.NewBinding(
			key.WithKeys("j", "down"),
		),
		MenuUp: key.NewBinding(
			key.WithKeys("k", "up"),
		),
		MenuSelect: key.NewBinding(
			key.WithKeys("enter"),
		),
		MenuClose: key.NewBinding(
			key.WithKeys("esc", "q"),
		),
	}
}
