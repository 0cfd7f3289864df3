package workspace

import (
	"context"
	"fmt"
	"os"

	"github.com/vidyasagar/tpane/internal/browser"
	"github.com/vidyasagar/tpane/internal/closedtabs"
	"github.com/vidyasagar/tpane/internal/history"
	"github.com/vidyasagar/tpane/internal/logx"
	"github.com/vidyasagar/tpane/internal/uriparse"
)

// OpenRequest describes a tab to open.
type OpenRequest struct {
	URI   string
	Group string // empty means the active group
	// Index is the tab position; -1 places the tab after the active one.
	Index int
}

// Load is content the UI loop must fetch off-thread. Run it, then hand
// the result to Complete.
type Load struct {
	ID     int
	URI    string
	Reload bool

	path  string
	width int
	view  *View
	done  func(history.Result)
}

// LoadResult is the outcome of Load.Run.
type LoadResult struct {
	ID    int
	Lines []string
	Page  *browser.Page
	Err   error
}

// Run performs the load. It touches no workspace state and may run on any
// goroutine.
func (l *Load) Run(ctx context.Context, fetcher *browser.Fetcher) LoadResult {
	res := LoadResult{ID: l.ID}
	if l.path != "" {
		data, err := os.ReadFile(l.path)
		if err != nil {
			res.Err = err
			return res
		}
		res.Lines = splitLines(string(data))
		return res
	}
	fetched, err := fetcher.Fetch(ctx, l.URI)
	if err != nil {
		res.Err = err
		return res
	}
	article, err := browser.Extract(fetched)
	if err != nil {
		res.Err = err
		return res
	}
	res.Page = browser.Render(article, l.width)
	return res
}

// Open implements history.Materializer.
func (ws *Workspace) Open(loc history.Location, done func(history.Result)) {
	ws.OpenTab(OpenRequest{URI: loc.URI, Group: loc.TabGroupID, Index: -1}, done)
}

// OpenTab opens a new tab. done runs before OpenTab returns when the
// content is at hand, otherwise from Complete. done may be nil.
func (ws *Workspace) OpenTab(req OpenRequest, done func(history.Result)) {
	if done == nil {
		done = func(history.Result) {}
	}
	g := ws.active
	if req.Group != "" {
		g = ws.Group(req.Group)
	}
	log := logx.WithURI(ws.log, req.URI)

	switch uriparse.Scheme(req.URI) {
	case "tpane":
		if req.URI != closedtabs.StartPageURI {
			done(history.Result{Err: unsupported(req.URI)})
			return
		}
		v := ws.insert(g, req.Index, req.URI, history.ViewStartPage)
		v.Title = "Start"
		done(history.Result{View: v})

	case "scratch":
		sess, ok := ws.scratch[scratchID(req.URI)]
		if !ok {
			log.Debug("scratch session gone")
			done(history.Result{Err: history.ErrObsolete})
			return
		}
		v := ws.insert(g, req.Index, req.URI, history.ViewScratch)
		v.Title = sess.title
		v.setLines(sess.lines)
		done(history.Result{View: v})

	case "file":
		path, ok := uriparse.LocalPath(req.URI)
		if !ok {
			done(history.Result{Err: unsupported(req.URI)})
			return
		}
		v := ws.insert(g, req.Index, req.URI, history.ViewEditor)
		v.Loading = true
		ws.queue(&Load{URI: req.URI, path: path, view: v, done: done})

	case "http", "https":
		v := ws.insert(g, req.Index, req.URI, history.ViewBrowser)
		if page, ok := ws.pages.Get(req.URI); ok {
			v.applyPage(page)
			done(history.Result{View: v})
			return
		}
		v.Loading = true
		v.Title = "Loading..."
		ws.queue(&Load{URI: req.URI, width: ws.width, view: v, done: done})

	default:
		done(history.Result{Err: unsupported(req.URI)})
	}
}

// Reload queues fresh content for every loaded editor view of path.
func (ws *Workspace) Reload(path string) int {
	n := 0
	for _, v := range ws.Views() {
		if v.viewType != history.ViewEditor || v.Loading {
			continue
		}
		if p, ok := uriparse.LocalPath(v.uri); ok && p == path {
			ws.queue(&Load{URI: v.uri, path: path, view: v, Reload: true})
			n++
		}
	}
	return n
}

// TakePending returns the loads queued since the last call.
func (ws *Workspace) TakePending() []*Load {
	out := ws.pending
	ws.pending = nil
	return out
}

// Loading reports whether any load is outstanding.
func (ws *Workspace) Loading() bool {
	return len(ws.waiting) > 0 || len(ws.pending) > 0
}

// Complete applies a finished load and runs its callback. It returns the
// view that received the content, or nil.
func (ws *Workspace) Complete(res LoadResult) (*View, error) {
	l, ok := ws.waiting[res.ID]
	if !ok {
		return nil, nil
	}
	delete(ws.waiting, res.ID)
	v := l.view
	log := logx.WithURI(ws.log, l.URI)

	if l.Reload {
		if res.Err != nil {
			log.Warn("reload failed", "err", res.Err)
			return v, fmt.Errorf("reloading %s: %w", l.URI, res.Err)
		}
		old := v.Lines
		v.setLines(res.Lines)
		v.shiftMarkers(old, res.Lines)
		return v, nil
	}

	if !v.Open() {
		l.done(history.Result{Err: ErrViewClosed})
		return nil, nil
	}
	if res.Err != nil {
		log.Debug("load failed", "err", res.Err)
		ws.remove(v, false)
		l.done(history.Result{Err: res.Err})
		return nil, res.Err
	}

	v.Loading = false
	if res.Page != nil {
		ws.pages.Add(l.URI, res.Page)
		v.applyPage(res.Page)
	} else {
		v.setLines(res.Lines)
		ws.watch(v)
	}
	l.done(history.Result{View: v})
	return v, nil
}

func (ws *Workspace) queue(l *Load) {
	ws.nextLoad++
	l.ID = ws.nextLoad
	ws.waiting[l.ID] = l
	ws.pending = append(ws.pending, l)
}

func (v *View) applyPage(p *browser.Page) {
	v.Title = p.Title
	v.setLines(p.Lines())
	v.Links = p.Links
}
