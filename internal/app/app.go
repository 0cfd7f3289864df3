package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"pkt.systems/pslog"

	"github.com/vidyasagar/tpane/internal/browser"
	"github.com/vidyasagar/tpane/internal/closedtabs"
	"github.com/vidyasagar/tpane/internal/history"
	"github.com/vidyasagar/tpane/internal/logx"
	"github.com/vidyasagar/tpane/internal/storage"
	"github.com/vidyasagar/tpane/internal/theme"
	"github.com/vidyasagar/tpane/internal/ui"
	"github.com/vidyasagar/tpane/internal/uriparse"
	"github.com/vidyasagar/tpane/internal/workspace"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeNormal  Mode = iota
	ModeCommand      // command bar active
	ModeFollow       // link follow mode
	ModeRecent       // recent locations menu
	ModeClosed       // recently closed tabs menu
	ModeHelp         // keybinding overlay
)

var modeNames = map[Mode]string{
	ModeNormal:  "NORMAL",
	ModeCommand: "COMMAND",
	ModeFollow:  "FOLLOW",
	ModeRecent:  "RECENT",
	ModeClosed:  "CLOSED",
	ModeHelp:    "HELP",
}

// pane is the on-screen state of one view.
type pane struct {
	viewport ui.PageViewport
	rev      int // View.Rev last rendered, -1 before the first
	line     int // View.Line last scrolled to
}

// Options configures a Model.
type Options struct {
	Config *storage.Config
	// Prefs persists the recently closed tabs. Nil keeps them in memory.
	Prefs   closedtabs.Persistence
	Watcher *workspace.Watcher
	Fetcher *browser.Fetcher
	Logger  pslog.Logger
	// Context bounds background loads.
	Context   context.Context
	StartURIs []string
}

// Model is the top-level bubbletea model for tpane.
type Model struct {
	// UI components
	tabBars    map[string]*ui.TabBar
	statusBar  ui.StatusBar
	commandBar ui.CommandBar
	splitPane  ui.SplitPane
	menu       ui.MenuPanel
	panes      map[int]*pane

	// Navigation state, shared by every copy of the model.
	ws      *workspace.Workspace
	store   *history.LocationStore
	walker  *history.Walker
	closed  *closedtabs.Stack
	prefs   closedtabs.Persistence
	notices *notices

	// Menu rows, parallel to the items shown in the menu panel.
	recentDeltas []int
	closedRows   []closedtabs.MenuItem

	fetcher *browser.Fetcher
	watcher *workspace.Watcher
	ctx     context.Context
	log     pslog.Logger

	keys     KeyMap
	mode     Mode
	width    int
	height   int
	lastGKey bool // for "gg" detection
	ready    bool
}

// loadDoneMsg is sent when a background load finishes.
type loadDoneMsg struct {
	result workspace.LoadResult
	reload bool
}

// fileChangedMsg is sent when a watched file is written.
type fileChangedMsg struct {
	path string
}

// watcherClosedMsg is sent once the file watcher stops.
type watcherClosedMsg struct{}

// New creates a Model and opens the start uris, or the start page when
// there are none.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		def := storage.DefaultConfig()
		cfg = &def
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = browser.NewFetcher()
	}
	log := logx.WithComponent(opts.Logger, "app")

	m := Model{
		tabBars:    make(map[string]*ui.TabBar),
		statusBar:  ui.NewStatusBar(),
		commandBar: ui.NewCommandBar(),
		splitPane:  ui.NewSplitPane(),
		menu:       ui.NewMenuPanel(),
		panes:      make(map[int]*pane),
		store:      history.NewLocationStore(cfg.History.MaxLocations),
		closed:     closedtabs.NewStack(cfg.ClosedTabs.Capacity, opts.Logger),
		prefs:      opts.Prefs,
		notices:    &notices{},
		fetcher:    fetcher,
		watcher:    opts.Watcher,
		ctx:        ctx,
		log:        log,
		keys:       DefaultKeyMap(),
		mode:       ModeNormal,
	}

	wsOpts := workspace.Options{
		PageCacheSize: cfg.PageCacheSize,
		Logger:        opts.Logger,
		OnClose:       m.closed.Push,
	}
	if opts.Watcher != nil {
		wsOpts.Watcher = opts.Watcher
	}
	m.ws = workspace.New(wsOpts)
	m.walker = history.NewWalker(m.store, m.ws, m.ws.CurrentLocation, history.WalkerConfig{
		FallbackLimit: cfg.History.FallbackLimit,
		Logger:        opts.Logger,
	})

	if m.prefs != nil {
		if err := m.closed.Load(m.prefs); err != nil {
			log.Warn("restoring closed tabs failed", "err", err)
		}
	}

	if len(opts.StartURIs) == 0 {
		m.openURI(closedtabs.StartPageURI, "")
	}
	for _, arg := range opts.StartURIs {
		m.openURI(uriparse.Normalize(arg), "")
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.dispatchLoads(), m.waitFileChange())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()

	case loadDoneMsg:
		m.handleLoadDone(msg)

	case fileChangedMsg:
		if n := m.ws.Reload(msg.path); n > 0 {
			logx.WithURI(m.log, uriparse.FromPath(msg.path)).Debug("file changed", "views", n)
		}
		cmds = append(cmds, m.waitFileChange())

	case watcherClosedMsg:
		m.log.Debug("file watcher stopped")

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyMsg(msg))

	default:
		cmds = append(cmds, m.updateComponents(msg)...)
	}

	return m.settle(cmds...)
}

// settle starts queued loads and brings the screen in line with the
// workspace after every message.
func (m Model) settle(cmds ...tea.Cmd) (tea.Model, tea.Cmd) {
	cmds = append(cmds, m.dispatchLoads())
	m.notices.flush(&m.statusBar)
	m.sync()
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading tpane..."
	}
	if m.mode == ModeHelp {
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Height(m.height-1).MaxHeight(m.height-1).Render(m.helpView()),
			m.statusBar.View(),
		)
	}

	// Layout:
	// [menu] | [tab bar / viewport] (one or two panes)
	// [status bar]
	// [command bar] (if active)

	var rendered []string
	for _, g := range m.visibleGroups() {
		var body string
		if v := g.ActiveView(); v != nil {
			if p, ok := m.panes[v.ID]; ok {
				body = p.viewport.View()
			}
		}
		rendered = append(rendered, lipgloss.JoinVertical(lipgloss.Left, m.tabBar(g.ID).View(), body))
	}
	content := m.splitPane.Render(rendered...)

	if m.menu.IsVisible() {
		divider := lipgloss.NewStyle().
			Foreground(theme.Current.Border).
			Render(strings.TrimSuffix(strings.Repeat("│\n", m.contentHeight()), "\n"))
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.menu.View(), divider, content)
	}

	sections := []string{content, m.statusBar.View()}
	if m.commandBar.IsActive() {
		sections = append(sections, m.commandBar.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	m.statusBar.SetWidth(m.width)
	m.commandBar.SetWidth(m.width)

	height := m.contentHeight()
	width := m.width
	if m.menu.IsVisible() {
		panelWidth := max(m.width*30/100, 24)
		m.menu.SetSize(panelWidth, height)
		width = m.width - panelWidth - 1 // -1 for divider
	}
	m.splitPane.SetSize(width, height)
	m.ws.SetWidth(width)
}

func (m *Model) contentHeight() int {
	h := m.height - 1 // status bar
	if m.commandBar.IsActive() {
		h--
	}
	return max(h, 2)
}

// visibleGroups returns the tab groups on screen. Only two fit.
func (m *Model) visibleGroups() []*workspace.Group {
	groups := m.ws.Groups()
	if len(groups) > 2 {
		groups = groups[:2]
	}
	return groups
}

func (m *Model) tabBar(groupID string) *ui.TabBar {
	tb, ok := m.tabBars[groupID]
	if !ok {
		bar := ui.NewTabBar()
		tb = &bar
		m.tabBars[groupID] = tb
	}
	return tb
}

// sync pushes workspace state into the tab bars, viewports and status bar.
func (m *Model) sync() {
	if !m.ready {
		return
	}
	m.layout()

	groups := m.visibleGroups()
	sizes := m.splitPane.PaneSizes(len(groups))
	live := make(map[int]bool)
	for gi, g := range groups {
		w, h := sizes[gi][0], sizes[gi][1]-1 // -1 for the tab bar

		tabs := make([]ui.Tab, 0, len(g.Views))
		for _, v := range g.Views {
			tabs = append(tabs, ui.Tab{ID: v.ID, Title: v.Title, Kind: v.ViewType(), Loading: v.Loading})
			live[v.ID] = true
			m.syncPane(v, w, h)
		}
		tb := m.tabBar(g.ID)
		tb.SetWidth(w)
		tb.SetTabs(tabs, g.Active, g == m.ws.ActiveGroup())
	}
	for _, v := range m.ws.Views() {
		live[v.ID] = true
	}
	for id := range m.panes {
		if !live[id] {
			delete(m.panes, id)
		}
	}

	m.statusBar.SetMode(modeNames[m.mode])
	m.statusBar.SetLoading(m.ws.Loading())
	locs, pos := m.store.Locations()
	if len(locs) > 0 {
		m.statusBar.SetPosition(fmt.Sprintf("%d/%d", pos+1, len(locs)))
	} else {
		m.statusBar.SetPosition("")
	}
	v := m.ws.ActiveView()
	if v == nil {
		m.statusBar.SetURI("")
		m.statusBar.SetTitle("")
		m.statusBar.SetScrollInfo("")
		return
	}
	m.statusBar.SetURI(uriparse.DisplayPath(v.URI()))
	m.statusBar.SetTitle(v.Title)
	if p, ok := m.panes[v.ID]; ok {
		m.statusBar.SetScrollInfo(p.viewport.ScrollInfo())
	}
}

func (m *Model) syncPane(v *workspace.View, w, h int) {
	p, ok := m.panes[v.ID]
	if !ok {
		p = &pane{viewport: ui.NewPageViewport(), rev: -1, line: -1}
		m.panes[v.ID] = p
	}
	p.viewport.SetSize(w, h)
	if p.rev != v.Rev {
		p.rev = v.Rev
		switch v.ViewType() {
		case history.ViewStartPage:
			p.viewport.ShowStartPage()
		case history.ViewEditor, history.ViewScratch:
			p.viewport.SetLines(v.Lines, true)
		default:
			p.viewport.SetLines(v.Lines, false)
		}
		p.line = -1
	}
	if v.Loading && len(v.Lines) == 0 {
		p.viewport.SetLines([]string{"", "  Loading " + uriparse.DisplayPath(v.URI()) + "..."}, false)
		p.rev = -1
	}
	if p.line != v.Line {
		p.viewport.GotoLine(v.Line)
		p.line = v.Line
	}
}

// scrolled records where the user scrolled the active view to.
func (m *Model) scrolled() {
	v := m.ws.ActiveView()
	if v == nil {
		return
	}
	if p, ok := m.panes[v.ID]; ok {
		v.Line = p.viewport.TopLine()
		p.line = v.Line
	}
}

// updateComponents forwards messages to the active viewport.
func (m *Model) updateComponents(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd

	v := m.ws.ActiveView()
	if v == nil {
		return nil
	}
	if p, ok := m.panes[v.ID]; ok {
		vp, cmd := p.viewport.Update(msg)
		p.viewport = *vp
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		m.scrolled()
	}

	return cmds
}

// dispatchLoads runs every queued load in the background.
func (m Model) dispatchLoads() tea.Cmd {
	loads := m.ws.TakePending()
	if len(loads) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(loads))
	for _, l := range loads {
		cmds = append(cmds, m.runLoad(l))
	}
	return tea.Batch(cmds...)
}

func (m Model) runLoad(l *workspace.Load) tea.Cmd {
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		return loadDoneMsg{result: l.Run(ctx, fetcher), reload: l.Reload}
	}
}

// handleLoadDone applies a finished load. Open failures are reported by
// whoever asked for the open; only reload failures surface here.
func (m *Model) handleLoadDone(msg loadDoneMsg) {
	_, err := m.ws.Complete(msg.result)
	if err != nil && msg.reload {
		m.statusBar.SetError(err.Error())
	}
}

func (m Model) waitFileChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.Events()
	return func() tea.Msg {
		path, ok := <-events
		if !ok {
			return watcherClosedMsg{}
		}
		return fileChangedMsg{path: path}
	}
}

// quit saves the closed tabs and ends the program.
func (m *Model) quit() tea.Cmd {
	if m.prefs != nil {
		if err := m.closed.Save(m.prefs); err != nil {
			m.log.Error("saving closed tabs failed", "err", err)
		}
	}
	return tea.Quit
}

// notices collects messages from callbacks that run outside a handler's
// reach, such as walker reports and load completions.
type notices struct {
	text  string
	isErr bool
	set   bool
}

func (n *notices) info(format string, args ...any) {
	n.text, n.isErr, n.set = fmt.Sprintf(format, args...), false, true
}

func (n *notices) fail(format string, args ...any) {
	n.text, n.isErr, n.set = fmt.Sprintf(format, args...), true, true
}

func (n *notices) flush(sb *ui.StatusBar) {
	if !n.set {
		return
	}
	if n.isErr {
		sb.SetError(n.text)
	} else {
		sb.SetMessage(n.text)
	}
	*n = notices{}
}
