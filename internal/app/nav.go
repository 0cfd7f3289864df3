package app

import (
	"errors"

	"github.com/vidyasagar/tpane/internal/closedtabs"
	"github.com/vidyasagar/tpane/internal/history"
	"github.com/vidyasagar/tpane/internal/logx"
	"github.com/vidyasagar/tpane/internal/ui"
	"github.com/vidyasagar/tpane/internal/uriparse"
	"github.com/vidyasagar/tpane/internal/workspace"
)

// noteCurrent records the focused view's location. With section set, a
// nearby entry for the same view is replaced instead of added.
func (m *Model) noteCurrent(section bool) {
	v := m.ws.ActiveView()
	if v == nil || v.Loading {
		return
	}
	m.store.Note(v.Location(), section, v)
}

// openURI notes where the user is, then opens uri as a new tab in group
// (the active one when empty). The new view is noted once it lands.
func (m *Model) openURI(uri, group string) {
	m.openTab(workspace.OpenRequest{URI: uri, Group: group, Index: -1}, "Couldn't open")
}

func (m *Model) openTab(req workspace.OpenRequest, failure string) {
	m.noteCurrent(false)
	ws, store, out := m.ws, m.store, m.notices
	log := logx.WithURI(m.log, req.URI)
	ws.OpenTab(req, func(r history.Result) {
		switch {
		case r.Err == nil:
			if v, ok := r.View.(*workspace.View); ok {
				ws.Focus(v)
				store.Note(v.Location(), false, v)
			}
		case errors.Is(r.Err, workspace.ErrViewClosed):
			log.Debug("open abandoned")
		case errors.Is(r.Err, history.ErrObsolete):
			out.fail("%s: %s is no longer accessible", failure, uriparse.DisplayPath(req.URI))
		default:
			log.Warn("open failed", "err", r.Err)
			out.fail("%s %s: %v", failure, uriparse.DisplayPath(req.URI), r.Err)
		}
	})
}

// move walks history by delta steps.
func (m *Model) move(dir history.Direction, delta int, explicit bool) {
	m.scrolled()
	if err := m.walker.Move(dir, delta, explicit, m.notices.reportMove); err != nil {
		m.statusBar.SetError(err.Error())
	}
}

// reportMove turns a walker outcome into a status line message.
func (n *notices) reportMove(o history.Outcome) {
	switch {
	case o.Err == nil && o.Obsoleted == 1:
		n.info("Skipped 1 obsolete location")
	case o.Err == nil && o.Obsoleted > 1:
		n.info("Skipped %d obsolete locations", o.Obsoleted)
	case o.Err == nil:
	case errors.Is(o.Err, history.ErrExhausted):
		n.fail("%v", o.Err)
	default:
		n.fail("Couldn't move %s: %v", o.Dir, o.Err)
	}
}

// showRecent opens the recent locations menu. Rows for locations that can
// no longer be named are left out.
func (m *Model) showRecent() {
	m.scrolled()
	idx, locs := m.store.Recent(m.ws.CurrentLocation())
	var items []ui.MenuItem
	m.recentDeltas = m.recentDeltas[:0]
	for i, loc := range locs {
		label := m.ws.LocationLabel(loc)
		if label == "" {
			continue
		}
		delta := idx - i
		items = append(items, ui.MenuItem{Label: label, Checked: delta == 0})
		m.recentDeltas = append(m.recentDeltas, delta)
	}
	if len(items) == 0 {
		items = []ui.MenuItem{{Label: "No recent locations", Disabled: true}}
		m.recentDeltas = append(m.recentDeltas, 0)
	}
	m.menu.Show("Recent Locations", items)
	m.mode = ModeRecent
	m.layout()
}

// showClosed opens the recently closed tabs menu.
func (m *Model) showClosed() {
	m.closedRows = m.closed.Menu(m.ws)
	items := make([]ui.MenuItem, 0, len(m.closedRows))
	for _, row := range m.closedRows {
		items = append(items, ui.MenuItem{Label: row.Label, AccessKey: row.AccessKey, Disabled: row.Disabled})
	}
	m.menu.Show("Recently Closed Tabs", items)
	m.mode = ModeClosed
	m.layout()
}

func (m *Model) hideMenu() {
	m.menu.Hide()
	m.mode = ModeNormal
	m.layout()
}

// chooseMenuItem acts on row i of the visible menu.
func (m *Model) chooseMenuItem(i int) {
	mode := m.mode
	m.hideMenu()
	switch mode {
	case ModeRecent:
		if i < 0 || i >= len(m.recentDeltas) {
			return
		}
		switch delta := m.recentDeltas[i]; {
		case delta > 0:
			m.move(history.Forward, delta, true)
		case delta < 0:
			m.move(history.Back, -delta, true)
		}
	case ModeClosed:
		if i < 0 || i >= len(m.closedRows) || m.closedRows[i].Disabled {
			return
		}
		m.reopen(m.closedRows[i].StackIndex)
	}
}

// reopen restores the closed tab at a stack index. A stale index does
// nothing.
func (m *Model) reopen(index int) {
	e, ok := m.closed.Reopen(index)
	if !ok {
		return
	}
	m.reopenEntry(e)
}

func (m *Model) reopenLast() {
	e, ok := m.closed.ReopenLast()
	if !ok {
		m.statusBar.SetMessage("No recently closed tabs")
		return
	}
	m.reopenEntry(e)
}

func (m *Model) reopenEntry(e closedtabs.Entry) {
	group := e.TabGroupID
	if group != workspace.PrimaryGroup && group != workspace.SecondaryGroup {
		group = workspace.PrimaryGroup
	}
	m.openTab(workspace.OpenRequest{
		URI:   closedtabs.OpenURI(e),
		Group: group,
		Index: e.TabIndex,
	}, "Couldn't reopen")
}

// closeActive closes the focused tab. It reports whether any tab is left.
func (m *Model) closeActive() bool {
	v := m.ws.ActiveView()
	if v == nil {
		return len(m.ws.Views()) > 0
	}
	m.scrolled()
	m.ws.Close(v)
	return len(m.ws.Views()) > 0
}

// cycleTab selects a neighbouring tab, noting both ends of the switch.
func (m *Model) cycleTab(step int) {
	m.scrolled()
	m.noteCurrent(false)
	m.ws.CycleTab(step)
	m.noteCurrent(false)
}

// focusOtherPane moves focus to the other visible tab group.
func (m *Model) focusOtherPane() {
	groups := m.visibleGroups()
	if len(groups) < 2 {
		return
	}
	m.scrolled()
	m.noteCurrent(false)
	if m.ws.ActiveGroup() == groups[0] {
		m.ws.FocusGroup(groups[1].ID)
	} else {
		m.ws.FocusGroup(groups[0].ID)
	}
	m.noteCurrent(false)
}

// split opens the focused view's uri in the other tab group.
func (m *Model) split(dir ui.SplitDirection) {
	v := m.ws.ActiveView()
	if v == nil {
		return
	}
	m.splitPane.Direction = dir
	other := workspace.SecondaryGroup
	if v.TabGroupID() == workspace.SecondaryGroup {
		other = workspace.PrimaryGroup
	}
	m.scrolled()
	m.openURI(v.URI(), other)
}

// jump scrolls the active view, noting the location before and after as
// section changes.
func (m *Model) jump(scroll func(*ui.PageViewport)) {
	v := m.ws.ActiveView()
	if v == nil {
		return
	}
	p, ok := m.panes[v.ID]
	if !ok {
		return
	}
	m.scrolled()
	m.noteCurrent(true)
	scroll(&p.viewport)
	m.scrolled()
	m.noteCurrent(true)
}
