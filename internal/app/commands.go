package app

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/tpane/internal/closedtabs"
	"github.com/vidyasagar/tpane/internal/history"
	"github.com/vidyasagar/tpane/internal/theme"
	"github.com/vidyasagar/tpane/internal/ui"
	"github.com/vidyasagar/tpane/internal/uriparse"
	"github.com/vidyasagar/tpane/internal/workspace"
)

// executeCommand handles :commands.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return nil
	}
	arg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cmd), parts[0]))

	switch parts[0] {
	case "q", "quit":
		return m.quit()
	case "o", "open", "e", "edit":
		if arg == "" {
			m.statusBar.SetMessage("Usage: :open <path or url>")
			return nil
		}
		m.scrolled()
		m.openURI(uriparse.Normalize(arg), "")
	case "back":
		if n, ok := m.count(arg); ok {
			m.move(history.Back, n, false)
		}
	case "forward":
		if n, ok := m.count(arg); ok {
			m.move(history.Forward, n, false)
		}
	case "recent":
		m.showRecent()
	case "clearhistory":
		m.store.Clear()
		m.statusBar.SetMessage("Location history cleared")
	case "closed":
		m.showClosed()
	case "reopen":
		if arg == "" {
			m.reopenLast()
			return nil
		}
		// Numbered as in the closed tabs menu, newest first.
		n, ok := m.count(arg)
		if !ok {
			return nil
		}
		if n > m.closed.Len() {
			m.statusBar.SetError(fmt.Sprintf("No closed tab %d", n))
			return nil
		}
		m.reopen(m.closed.Len() - n)
	case "tabnew":
		m.openURI(closedtabs.StartPageURI, "")
	case "close", "tabclose":
		if !m.closeActive() {
			return m.quit()
		}
	case "scratch":
		m.newScratch()
		if arg != "" {
			m.appendScratch(arg)
		}
	case "append":
		m.appendScratch(arg)
	case "discard":
		m.discardScratch()
	case "vsplit":
		m.split(ui.SplitVertical)
	case "split", "hsplit":
		m.split(ui.SplitHorizontal)
	case "theme":
		if arg != "" {
			if theme.Set(arg) {
				m.statusBar.SetMessage(fmt.Sprintf("Theme: %s", arg))
				m.repaint()
			} else {
				m.statusBar.SetError(fmt.Sprintf("Unknown theme: %s (available: %s)", arg, strings.Join(theme.List(), ", ")))
			}
		} else {
			m.statusBar.SetMessage(fmt.Sprintf("Current: %s | Available: %s", theme.Current.Name, strings.Join(theme.List(), ", ")))
		}
	case "help":
		m.mode = ModeHelp
	default:
		m.statusBar.SetError(fmt.Sprintf("Unknown command: %s", parts[0]))
	}
	return nil
}

// count parses an optional positive repeat count.
func (m *Model) count(arg string) (int, bool) {
	if arg == "" {
		return 1, true
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		m.statusBar.SetError(fmt.Sprintf("Invalid count: %s", arg))
		return 0, false
	}
	return n, true
}

// followLink opens link n of the active page in a new tab.
func (m *Model) followLink(input string) {
	v := m.ws.ActiveView()
	if v == nil || len(v.Links) == 0 {
		m.statusBar.SetMessage("No links on this page")
		return
	}

	num, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		m.statusBar.SetMessage(fmt.Sprintf("Invalid link number: %s", input))
		return
	}
	for _, link := range v.Links {
		if link.Index == num {
			m.scrolled()
			m.openURI(link.URL, "")
			return
		}
	}
	m.statusBar.SetMessage(fmt.Sprintf("Link [%d] not found", num))
}

func (m *Model) newScratch() {
	m.scrolled()
	m.noteCurrent(false)
	if v := m.ws.NewScratch(); v != nil {
		m.store.Note(v.Location(), false, v)
	}
}

func (m *Model) appendScratch(text string) {
	v := m.ws.ActiveView()
	if v == nil {
		return
	}
	if err := m.ws.AppendScratch(v, text); err != nil {
		m.statusBar.SetError(err.Error())
	}
}

// discardScratch ends the active scratch session. Its history entries
// become obsolete.
func (m *Model) discardScratch() {
	v := m.ws.ActiveView()
	if v == nil || v.ViewType() != history.ViewScratch {
		m.statusBar.SetError("Not a scratch buffer")
		return
	}
	title := v.Title
	m.ws.DiscardScratch(v)
	m.statusBar.SetMessage(fmt.Sprintf("Discarded %s", title))
	if len(m.ws.Views()) == 0 {
		m.openURI(closedtabs.StartPageURI, workspace.PrimaryGroup)
	}
}

// repaint forces every viewport to re-render, for theme changes.
func (m *Model) repaint() {
	for _, p := range m.panes {
		p.rev = -1
	}
}

// helpView renders the keybinding overlay.
func (m Model) helpView() string {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Secondary).
		Width(18)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Text)

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("tpane Keybindings"))
	sb.WriteString("\n\n")

	sections := []struct {
		name string
		keys []struct{ k, d string }
	}{
		{"Scrolling", []struct{ k, d string }{
			{"j / Down", "Scroll down"},
			{"k / Up", "Scroll up"},
			{"Ctrl+d", "Half page down"},
			{"Ctrl+u", "Half page up"},
			{"gg", "Go to top"},
			{"G", "Go to bottom"},
		}},
		{"Locations", []struct{ k, d string }{
			{"H / Alt+Left", "Go back"},
			{"L / Alt+Right", "Go forward"},
			{"Ctrl+h", "Recent locations"},
			{"o", "Open file or URL"},
			{"f", "Follow link by number"},
			{"r", "Reload file"},
		}},
		{"Tabs", []struct{ k, d string }{
			{"Ctrl+t", "New tab"},
			{"Ctrl+n", "New scratch buffer"},
			{"Ctrl+w", "Close tab"},
			{"u", "Reopen last closed tab"},
			{"U", "Recently closed tabs"},
			{"gt / Tab", "Next tab"},
			{"gT / S-Tab", "Previous tab"},
		}},
		{"Splits", []struct{ k, d string }{
			{"Ctrl+\\", "Open in vertical split"},
			{"Ctrl+_", "Open in horizontal split"},
			{"Ctrl+o", "Toggle split direction"},
			{"Ctrl+l", "Focus other pane"},
		}},
		{"Commands", []struct{ k, d string }{
			{":open <target>", "Open a path or URL"},
			{":back [n]", "Go back n locations"},
			{":forward [n]", "Go forward n locations"},
			{":recent", "Recent locations"},
			{":closed", "Recently closed tabs"},
			{":reopen [n]", "Reopen closed tab n"},
			{":scratch [text]", "New scratch buffer"},
			{":append <text>", "Append to scratch buffer"},
			{":discard", "End scratch session"},
			{":vsplit / :split", "Split panes"},
			{":theme <name>", "Change theme"},
			{":clearhistory", "Forget location history"},
			{":quit", "Quit tpane"},
		}},
	}

	for _, section := range sections {
		sb.WriteString(sectionStyle.Render(section.name))
		sb.WriteString("\n\n")
		for _, binding := range section.keys {
			sb.WriteString(keyStyle.Render(binding.k))
			sb.WriteString(descStyle.Render(binding.d))
			sb.WriteString("\n")
		}
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}
