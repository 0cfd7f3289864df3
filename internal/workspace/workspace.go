// Package workspace owns the open views, grouped into tab groups, and
// opens locations into them.
package workspace

import (
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"pkt.systems/pslog"

	"github.com/vidyasagar/tpane/internal/browser"
	"github.com/vidyasagar/tpane/internal/closedtabs"
	"github.com/vidyasagar/tpane/internal/history"
	"github.com/vidyasagar/tpane/internal/logx"
	"github.com/vidyasagar/tpane/internal/uriparse"
)

// Tab group ids. The second group is shown in a split.
const (
	PrimaryGroup   = "pane-1"
	SecondaryGroup = "pane-2"
)

// ErrViewClosed is reported when a view closes before its content arrives.
var ErrViewClosed = errors.New("view closed while loading")

// Group is an ordered set of tabs.
type Group struct {
	ID     string
	Views  []*View
	Active int
}

// ActiveView returns the selected tab, or nil for an empty group.
func (g *Group) ActiveView() *View {
	if g.Active < 0 || g.Active >= len(g.Views) {
		return nil
	}
	return g.Views[g.Active]
}

func (g *Group) index(v *View) int {
	for i, gv := range g.Views {
		if gv == v {
			return i
		}
	}
	return -1
}

// FileWatcher is told which local files have open views.
type FileWatcher interface {
	Add(path string) error
	Remove(path string) error
}

// Options configures a Workspace.
type Options struct {
	PageCacheSize int
	Logger        pslog.Logger
	Watcher       FileWatcher
	// OnClose receives every tab closed by the user.
	OnClose func(closedtabs.Entry)
}

// Workspace holds every open view. It is used from the UI loop only; loads
// run elsewhere and come back through Complete.
type Workspace struct {
	groups     []*Group
	active     *Group
	nextView   int
	nextMarker int
	nextLoad   int

	scratch map[string]*scratchSession
	pending []*Load
	waiting map[int]*Load
	pages   *lru.Cache[string, *browser.Page]
	width   int

	watcher FileWatcher
	onClose func(closedtabs.Entry)
	log     pslog.Logger
}

// New creates a workspace with an empty primary group.
func New(opts Options) *Workspace {
	size := opts.PageCacheSize
	if size <= 0 {
		size = 50
	}
	pages, _ := lru.New[string, *browser.Page](size)
	ws := &Workspace{
		scratch: make(map[string]*scratchSession),
		waiting: make(map[int]*Load),
		pages:   pages,
		width:   80,
		watcher: opts.Watcher,
		onClose: opts.OnClose,
		log:     logx.WithComponent(opts.Logger, "workspace"),
	}
	ws.active = ws.Group(PrimaryGroup)
	return ws
}

// SetWidth sets the width web pages are rendered at.
func (ws *Workspace) SetWidth(w int) {
	if w > 0 {
		ws.width = w
	}
}

// Group returns the tab group with id, creating it when missing.
func (ws *Workspace) Group(id string) *Group {
	for _, g := range ws.groups {
		if g.ID == id {
			return g
		}
	}
	g := &Group{ID: id}
	ws.groups = append(ws.groups, g)
	return g
}

// Groups returns the tab groups that have views, in creation order.
func (ws *Workspace) Groups() []*Group {
	var out []*Group
	for _, g := range ws.groups {
		if len(g.Views) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// ActiveGroup returns the focused group.
func (ws *Workspace) ActiveGroup() *Group {
	return ws.active
}

// ActiveView returns the focused view, or nil.
func (ws *Workspace) ActiveView() *View {
	return ws.active.ActiveView()
}

// FocusGroup focuses the group with id.
func (ws *Workspace) FocusGroup(id string) {
	ws.active = ws.Group(id)
}

// Focus selects v in its group and focuses the group.
func (ws *Workspace) Focus(v *View) {
	if i := v.group.index(v); i >= 0 {
		v.group.Active = i
		ws.active = v.group
	}
}

// CycleTab moves the selection within the active group by step.
func (ws *Workspace) CycleTab(step int) {
	g := ws.active
	if n := len(g.Views); n > 1 {
		g.Active = ((g.Active+step)%n + n) % n
	}
}

// CurrentLocation is the location of the focused view, or nil.
func (ws *Workspace) CurrentLocation() *history.Location {
	v := ws.ActiveView()
	if v == nil {
		return nil
	}
	loc := v.Location()
	return &loc
}

// Views returns every open view.
func (ws *Workspace) Views() []*View {
	var out []*View
	for _, g := range ws.groups {
		out = append(out, g.Views...)
	}
	return out
}

// Resolve finds an open view showing uri, preferring tabGroupID. There is
// a single window, so windowID is not consulted.
func (ws *Workspace) Resolve(uri string, windowID int, tabGroupID string) (history.ViewRef, bool) {
	var fallback *View
	for _, g := range ws.groups {
		for _, v := range g.Views {
			if v.uri != uri || v.Loading {
				continue
			}
			if g.ID == tabGroupID {
				return v, true
			}
			if fallback == nil {
				fallback = v
			}
		}
	}
	if fallback == nil {
		return nil, false
	}
	return fallback, true
}

// FindViewsForURI lists the open views of uri for closed-tab labels.
func (ws *Workspace) FindViewsForURI(uri string) []closedtabs.LiveView {
	var out []closedtabs.LiveView
	for _, v := range ws.Views() {
		if v.uri == uri {
			out = append(out, closedtabs.LiveView{ViewType: v.viewType, TabGroupID: v.group.ID})
		}
	}
	return out
}

// Close removes v from its group. User closes are reported to OnClose with
// the tab's position; views that fail to load are dropped silently.
func (ws *Workspace) Close(v *View) {
	ws.remove(v, true)
}

func (ws *Workspace) remove(v *View, capture bool) {
	g := v.group
	idx := g.index(v)
	if idx < 0 {
		return
	}
	g.Views = append(g.Views[:idx], g.Views[idx+1:]...)
	if g.Active > idx || g.Active >= len(g.Views) {
		g.Active = max(0, g.Active-1)
	}
	if len(g.Views) == 0 && ws.active == g {
		for _, other := range ws.groups {
			if len(other.Views) > 0 {
				ws.active = other
				break
			}
		}
	}
	ws.unwatch(v)

	log := logx.WithView(logx.WithURI(ws.log, v.uri), v.viewType, g.ID)
	if !capture || v.Loading {
		log.Debug("view dropped")
		return
	}
	log.Debug("view closed", "tab_index", idx)
	if ws.onClose != nil {
		ws.onClose(closedtabs.Entry{
			TabGroupID: g.ID,
			ViewType:   v.viewType,
			URI:        v.uri,
			TabIndex:   idx,
		})
	}
}

// LocationLabel is how loc reads in the recent locations list. It is empty
// for scratch buffers whose session has ended.
func (ws *Workspace) LocationLabel(loc history.Location) string {
	if uriparse.Scheme(loc.URI) == "scratch" {
		sess, ok := ws.scratch[scratchID(loc.URI)]
		if !ok {
			return ""
		}
		return uriparse.Label(sess.title, "", loc.Line+1, "", "")
	}
	if loc.URI == closedtabs.StartPageURI {
		return "Start"
	}
	base, dir := uriparse.PathInfo(loc.URI)
	return uriparse.Label(base, dir, loc.Line+1, "", "")
}

func (ws *Workspace) insert(g *Group, index int, uri, viewType string) *View {
	ws.nextView++
	v := &View{
		ID:       ws.nextView,
		Title:    uriparse.BaseName(uri),
		uri:      uri,
		viewType: viewType,
		group:    g,
		markers:  make(map[int]int),
		ws:       ws,
	}
	switch {
	case index < 0 && len(g.Views) > 0:
		index = g.Active + 1
	case index < 0 || index > len(g.Views):
		index = len(g.Views)
	}
	g.Views = append(g.Views, nil)
	copy(g.Views[index+1:], g.Views[index:])
	g.Views[index] = v
	g.Active = index
	ws.active = g
	return v
}

func (ws *Workspace) watch(v *View) {
	if ws.watcher == nil || v.viewType != history.ViewEditor {
		return
	}
	if path, ok := uriparse.LocalPath(v.uri); ok {
		if err := ws.watcher.Add(path); err != nil {
			logx.WithURI(ws.log, v.uri).Warn("watch failed", "err", err)
		}
	}
}

func (ws *Workspace) unwatch(v *View) {
	if ws.watcher == nil || v.viewType != history.ViewEditor {
		return
	}
	for _, other := range ws.Views() {
		if other.uri == v.uri {
			return
		}
	}
	if path, ok := uriparse.LocalPath(v.uri); ok {
		_ = ws.watcher.Remove(path)
	}
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func unsupported(uri string) error {
	return fmt.Errorf("unsupported uri %q", uri)
}
