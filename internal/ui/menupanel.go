package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tpane/internal/theme"
)

// MenuItem is one row of a MenuPanel.
type MenuItem struct {
	Label     string
	AccessKey string
	Checked   bool
	Disabled  bool
}

// MenuPanel is a side panel listing selectable items with vim navigation.
// Used for recent locations and closed tabs.
type MenuPanel struct {
	title    string
	items    []MenuItem
	cursor   int
	offset   int
	width    int
	height   int
	visible  bool
	lastGKey bool
}

// NewMenuPanel creates a hidden panel.
func NewMenuPanel() MenuPanel {
	return MenuPanel{}
}

// Show displays items under title with the cursor on the first enabled
// unchecked item.
func (mp *MenuPanel) Show(title string, items []MenuItem) {
	mp.title = title
	mp.items = items
	mp.visible = true
	mp.lastGKey = false
	mp.cursor, mp.offset = 0, 0
	for i, it := range items {
		if !it.Disabled && !it.Checked {
			mp.cursor = i
			break
		}
	}
	mp.ensureVisible()
}

// Hide closes the panel.
func (mp *MenuPanel) Hide() {
	mp.visible = false
	mp.lastGKey = false
}

// IsVisible reports whether the panel is shown.
func (mp *MenuPanel) IsVisible() bool { return mp.visible }

// SetSize updates the panel dimensions.
func (mp *MenuPanel) SetSize(w, h int) {
	mp.width = w
	mp.height = h
}

// CursorUp moves the cursor up one item.
func (mp *MenuPanel) CursorUp() {
	mp.lastGKey = false
	if mp.cursor > 0 {
		mp.cursor--
		mp.ensureVisible()
	}
}

// CursorDown moves the cursor down one item.
func (mp *MenuPanel) CursorDown() {
	mp.lastGKey = false
	if mp.cursor < len(mp.items)-1 {
		mp.cursor++
		mp.ensureVisible()
	}
}

// GotoBottom moves to the last item.
func (mp *MenuPanel) GotoBottom() {
	mp.lastGKey = false
	if len(mp.items) > 0 {
		mp.cursor = len(mp.items) - 1
		mp.ensureVisible()
	}
}

// HandleGKey handles "g"; a second press goes to the top.
func (mp *MenuPanel) HandleGKey() {
	if mp.lastGKey {
		mp.lastGKey = false
		mp.cursor, mp.offset = 0, 0
		return
	}
	mp.lastGKey = true
}

// Selected returns the cursor index, or -1 when the item cannot be chosen.
func (mp *MenuPanel) Selected() int {
	if mp.cursor < 0 || mp.cursor >= len(mp.items) {
		return -1
	}
	if it := mp.items[mp.cursor]; it.Disabled || it.Checked {
		return -1
	}
	return mp.cursor
}

// ByAccessKey returns the index of the enabled item bound to key, or -1.
func (mp *MenuPanel) ByAccessKey(key string) int {
	for i, it := range mp.items {
		if it.AccessKey != "" && it.AccessKey == key && !it.Disabled && !it.Checked {
			return i
		}
	}
	return -1
}

func (mp *MenuPanel) visibleCount() int {
	return max(mp.height-3, 1)
}

func (mp *MenuPanel) ensureVisible() {
	n := mp.visibleCount()
	if mp.cursor < mp.offset {
		mp.offset = mp.cursor
	}
	if mp.cursor >= mp.offset+n {
		mp.offset = mp.cursor - n + 1
	}
}

// View renders the panel.
func (mp *MenuPanel) View() string {
	if !mp.visible {
		return ""
	}
	t := theme.Current

	row := lipgloss.NewStyle().Width(mp.width).Padding(0, 1)
	titleStyle := row.Bold(true).Foreground(t.Primary).Background(t.Surface)
	selected := row.Foreground(t.TextBright).Background(t.TabActive).Bold(true)
	normal := row.Foreground(t.Text)
	dim := row.Foreground(t.TextDim)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(mp.title))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(t.Border).Render(strings.Repeat("─", max(mp.width-2, 1))))
	sb.WriteString("\n")

	end := min(mp.offset+mp.visibleCount(), len(mp.items))
	maxLabel := max(mp.width-6, 10)
	for i := mp.offset; i < end; i++ {
		it := mp.items[i]
		label := it.Label
		if len(label) > maxLabel {
			label = label[:maxLabel-3] + "..."
		}
		mark := "  "
		if it.Checked {
			mark = "✓ "
		}
		switch {
		case i == mp.cursor:
			sb.WriteString(selected.Render("▸ " + label))
		case it.Disabled || it.Checked:
			sb.WriteString(dim.Render(mark + label))
		default:
			sb.WriteString(normal.Render(mark + label))
		}
		sb.WriteString("\n")
	}

	if pad := mp.height - 3 - (end - mp.offset); pad > 0 {
		sb.WriteString(strings.Repeat("\n", pad))
	}
	sb.WriteString(dim.Italic(true).Render("j/k move  Enter open  Esc close"))

	return lipgloss.NewStyle().
		Width(mp.width).
		Height(mp.height).
		Background(t.Background).
		Render(sb.String())
}
