package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tpane/internal/theme"
)

// StatusBar shows the focused view and transient messages.
type StatusBar struct {
	uri        string
	title      string
	loading    bool
	scrollInfo string
	mode       string
	position   string
	width      int
	message    string
	isError    bool
}

// NewStatusBar creates a new status bar.
func NewStatusBar() StatusBar {
	return StatusBar{mode: "NORMAL"}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) { s.width = w }

// SetURI updates the displayed uri.
func (s *StatusBar) SetURI(uri string) { s.uri = uri }

// SetTitle updates the view title.
func (s *StatusBar) SetTitle(title string) { s.title = title }

// SetLoading sets the loading indicator state.
func (s *StatusBar) SetLoading(loading bool) { s.loading = loading }

// SetScrollInfo sets the scroll position string (e.g. "42%", "TOP", "BOT").
func (s *StatusBar) SetScrollInfo(info string) { s.scrollInfo = info }

// SetMode sets the mode indicator.
func (s *StatusBar) SetMode(mode string) { s.mode = mode }

// SetPosition sets the history position shown on the right, e.g. "3/7".
func (s *StatusBar) SetPosition(pos string) { s.position = pos }

// SetMessage sets an informational message.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
	s.isError = false
}

// SetError sets an error message.
func (s *StatusBar) SetError(msg string) {
	s.message = msg
	s.isError = true
}

// ClearMessage drops the current message.
func (s *StatusBar) ClearMessage() {
	s.message = ""
	s.isError = false
}

// Message returns the current message.
func (s *StatusBar) Message() string { return s.message }

// View renders the status bar.
func (s *StatusBar) View() string {
	t := theme.Current

	modeBg := t.Primary
	switch s.mode {
	case "COMMAND":
		modeBg = t.Accent
	case "FOLLOW":
		modeBg = t.Link
	case "RECENT", "CLOSED":
		modeBg = t.Secondary
	}
	mode := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(t.Background).
		Background(modeBg).
		Render(s.mode)

	cell := lipgloss.NewStyle().Background(t.Surface).Padding(0, 1)

	var left string
	switch {
	case s.loading:
		left = cell.Foreground(t.Warning).Bold(true).Render("Loading...")
	case s.message != "" && s.isError:
		left = cell.Foreground(t.Error).Render(s.message)
	case s.message != "":
		left = cell.Foreground(t.Info).Render(s.message)
	case s.title != "":
		left = cell.Foreground(t.Text).Render(s.title)
	}
	if s.message == "" && !s.loading && s.uri != "" {
		left += cell.Foreground(t.TextDim).Render(s.uri)
	}

	var right string
	if s.position != "" {
		right += cell.Foreground(t.TextDim).Render("⇆ " + s.position)
	}
	right += cell.Bold(true).Foreground(t.Secondary).Render(s.scrollInfo)

	spacer := max(s.width-lipgloss.Width(mode)-lipgloss.Width(left)-lipgloss.Width(right), 0)
	fill := lipgloss.NewStyle().Background(t.Surface).Render(fmt.Sprintf("%*s", spacer, ""))

	return lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Render(mode + left + fill + right)
}
