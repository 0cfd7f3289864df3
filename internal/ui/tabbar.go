package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tpane/internal/theme"
)

// Tab is one entry of a tab bar.
type Tab struct {
	ID      int
	Title   string
	Kind    string // view type
	Loading bool
}

// TabBar renders the tabs of one tab group.
type TabBar struct {
	tabs       []Tab
	active     int
	focused    bool
	width      int
	maxVisible int
}

// NewTabBar creates an empty tab bar.
func NewTabBar() TabBar {
	return TabBar{maxVisible: 8}
}

// SetWidth sets the tab bar width.
func (tb *TabBar) SetWidth(w int) {
	tb.width = w
	tb.maxVisible = min(max(w/20, 2), 10)
}

// SetTabs replaces the tabs. focused marks the bar of the focused group.
func (tb *TabBar) SetTabs(tabs []Tab, active int, focused bool) {
	tb.tabs = tabs
	tb.active = active
	tb.focused = focused
}

// Count returns the number of tabs.
func (tb *TabBar) Count() int {
	return len(tb.tabs)
}

func kindIcon(kind string) string {
	switch kind {
	case "editor":
		return "📝"
	case "browser":
		return "🌐"
	case "scratch":
		return "✎"
	case "startpage":
		return "⌂"
	default:
		return "•"
	}
}

// visibleRange keeps the active tab roughly centred when tabs overflow.
func (tb *TabBar) visibleRange() (int, int) {
	n := len(tb.tabs)
	if n <= tb.maxVisible {
		return 0, n
	}
	start := max(tb.active-tb.maxVisible/2, 0)
	end := start + tb.maxVisible
	if end > n {
		end = n
		start = max(end-tb.maxVisible, 0)
	}
	return start, end
}

// View renders the tab bar.
func (tb *TabBar) View() string {
	t := theme.Current

	activeBg := t.TabActive
	if !tb.focused {
		activeBg = t.Border
	}
	activeStyle := lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(activeBg).
		Bold(true).
		Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.TabInactive).
		Padding(0, 1)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	start, end := tb.visibleRange()
	maxTitle := max(tb.width/max(tb.maxVisible, 1)-6, 8)

	var out string
	if start > 0 {
		out += dimStyle.Render(fmt.Sprintf(" +%d ", start))
	}
	for i := start; i < end; i++ {
		tab := tb.tabs[i]
		title := tab.Title
		if tab.Loading {
			title = "Loading..."
		}
		if len(title) > maxTitle {
			title = title[:maxTitle-3] + "..."
		}
		label := fmt.Sprintf("%s %s", kindIcon(tab.Kind), title)
		if i == tb.active {
			out += activeStyle.Render(label)
		} else {
			out += inactiveStyle.Render(label)
		}
		if i < end-1 {
			out += dimStyle.Render("|")
		}
	}
	if end < len(tb.tabs) {
		out += dimStyle.Render(fmt.Sprintf(" +%d ", len(tb.tabs)-end))
	}

	return lipgloss.NewStyle().
		Background(t.Surface).
		Width(tb.width).
		Render(out)
}
