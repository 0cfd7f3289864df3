package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vidyasagar/tpane/internal/closedtabs"
	"github.com/vidyasagar/tpane/internal/history"
	"github.com/vidyasagar/tpane/internal/ui"
	"github.com/vidyasagar/tpane/internal/uriparse"
)

// handleKeyMsg processes key events based on current mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	// Always allow Ctrl+C to quit.
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.mode {
	case ModeCommand, ModeFollow:
		return m.handleCommandMode(msg)
	case ModeRecent, ModeClosed:
		m.handleMenuMode(msg)
		return nil
	case ModeHelp:
		m.mode = ModeNormal
		return nil
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode processes keys in normal (viewing) mode.
func (m *Model) handleNormalMode(msg tea.KeyMsg) tea.Cmd {
	gPrefix := m.lastGKey
	m.lastGKey = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	// gg detection: first "g" sets flag, second "g" goes to top.
	case key.Matches(msg, m.keys.GotoTop):
		if gPrefix {
			m.jump((*ui.PageViewport).GotoTop)
			return nil
		}
		m.lastGKey = true

	// gt / gT switch tabs.
	case msg.String() == "t" && gPrefix:
		m.cycleTab(1)
	case msg.String() == "T" && gPrefix:
		m.cycleTab(-1)

	case key.Matches(msg, m.keys.GotoBottom):
		m.jump((*ui.PageViewport).GotoBottom)

	case key.Matches(msg, m.keys.ScrollDown):
		m.scroll(func(vp *ui.PageViewport) { vp.LineDown(1) })
	case key.Matches(msg, m.keys.ScrollUp):
		m.scroll(func(vp *ui.PageViewport) { vp.LineUp(1) })
	case key.Matches(msg, m.keys.HalfPageDown):
		m.scroll((*ui.PageViewport).HalfPageDown)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.scroll((*ui.PageViewport).HalfPageUp)

	case key.Matches(msg, m.keys.Back):
		m.move(history.Back, 1, false)
	case key.Matches(msg, m.keys.Forward):
		m.move(history.Forward, 1, false)
	case key.Matches(msg, m.keys.Recent):
		m.showRecent()

	case key.Matches(msg, m.keys.Open):
		cmd := m.openCommandBar(ui.CommandEx)
		m.commandBar.SetValue("open ")
		return cmd
	case key.Matches(msg, m.keys.FollowLink):
		return m.openCommandBar(ui.CommandFollow)
	case key.Matches(msg, m.keys.CommandMode):
		return m.openCommandBar(ui.CommandEx)

	case key.Matches(msg, m.keys.Reload):
		m.reload()

	case key.Matches(msg, m.keys.NewTab):
		m.openURI(closedtabs.StartPageURI, "")
	case key.Matches(msg, m.keys.NewScratch):
		m.newScratch()
	case key.Matches(msg, m.keys.CloseTab):
		if !m.closeActive() {
			// Last tab closed.
			return m.quit()
		}
	case key.Matches(msg, m.keys.ReopenTab):
		m.reopenLast()
	case key.Matches(msg, m.keys.ClosedTabs):
		m.showClosed()
	case key.Matches(msg, m.keys.NextTab):
		m.cycleTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.cycleTab(-1)

	case key.Matches(msg, m.keys.SplitVertical):
		m.split(ui.SplitVertical)
	case key.Matches(msg, m.keys.SplitHorizontal):
		m.split(ui.SplitHorizontal)
	case key.Matches(msg, m.keys.SplitToggle):
		m.splitPane.Toggle()
	case key.Matches(msg, m.keys.FocusPane):
		m.focusOtherPane()

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
	}
	return nil
}

// handleMenuMode drives the recent locations and closed tabs menus.
func (m *Model) handleMenuMode(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.MenuClose):
		m.hideMenu()
	case key.Matches(msg, m.keys.MenuDown):
		m.menu.CursorDown()
	case key.Matches(msg, m.keys.MenuUp):
		m.menu.CursorUp()
	case key.Matches(msg, m.keys.GotoTop):
		m.menu.HandleGKey()
	case key.Matches(msg, m.keys.GotoBottom):
		m.menu.GotoBottom()
	case key.Matches(msg, m.keys.MenuSelect):
		if i := m.menu.Selected(); i >= 0 {
			m.chooseMenuItem(i)
		}
	default:
		if i := m.menu.ByAccessKey(msg.String()); i >= 0 {
			m.chooseMenuItem(i)
		}
	}
}

// handleCommandMode feeds keys to the command bar until Enter or Esc.
func (m *Model) handleCommandMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.commandBar.Close()
		m.mode = ModeNormal
		m.layout()
		return nil

	case tea.KeyEnter:
		result := m.commandBar.Submit()
		m.mode = ModeNormal
		m.layout()
		switch result.Type {
		case ui.CommandEx:
			return m.executeCommand(result.Value)
		case ui.CommandFollow:
			m.followLink(result.Value)
		}
		return nil
	}

	cb, cmd := m.commandBar.Update(msg)
	m.commandBar = *cb
	return cmd
}

func (m *Model) openCommandBar(ct ui.CommandType) tea.Cmd {
	if ct == ui.CommandFollow {
		m.mode = ModeFollow
	} else {
		m.mode = ModeCommand
	}
	cmd := m.commandBar.Open(ct)
	m.layout()
	return cmd
}

// scroll moves the active viewport without touching history.
func (m *Model) scroll(fn func(*ui.PageViewport)) {
	v := m.ws.ActiveView()
	if v == nil {
		return
	}
	if p, ok := m.panes[v.ID]; ok {
		fn(&p.viewport)
		m.scrolled()
	}
}

// reload rereads the active file from disk.
func (m *Model) reload() {
	v := m.ws.ActiveView()
	if v == nil {
		return
	}
	path, ok := uriparse.LocalPath(v.URI())
	if !ok || m.ws.Reload(path) == 0 {
		m.statusBar.SetMessage("Nothing to reload")
	}
}
