package workspace

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vidyasagar/tpane/internal/history"
)

// scratchSession backs scratch:// views. Sessions live until discarded or
// until tpane exits; locations and closed tabs outliving them are obsolete.
type scratchSession struct {
	id    string
	title string
	lines []string
}

func scratchURI(id string) string {
	return "scratch://" + id + "/"
}

func scratchID(uri string) string {
	id := strings.TrimPrefix(uri, "scratch://")
	if i := strings.IndexByte(id, '/'); i >= 0 {
		id = id[:i]
	}
	return id
}

// NewScratch starts a scratch session and opens it in the active group.
func (ws *Workspace) NewScratch() *View {
	id := uuid.NewString()
	sess := &scratchSession{
		id:    id,
		title: fmt.Sprintf("scratch-%d", len(ws.scratch)+1),
		lines: []string{"# scratch " + id[:8]},
	}
	ws.scratch[id] = sess
	var view *View
	ws.OpenTab(OpenRequest{URI: scratchURI(id), Index: -1}, func(r history.Result) {
		view, _ = r.View.(*View)
	})
	return view
}

// AppendScratch adds a line to the session behind v.
func (ws *Workspace) AppendScratch(v *View, text string) error {
	sess, ok := ws.scratch[scratchID(v.uri)]
	if v.viewType != history.ViewScratch || !ok {
		return fmt.Errorf("%s is not a scratch buffer", v.Title)
	}
	sess.lines = append(sess.lines, text)
	for _, other := range ws.Views() {
		if other.uri == v.uri {
			other.setLines(sess.lines)
		}
	}
	return nil
}

// DiscardScratch ends the session behind v and closes its views without
// recording them as closed tabs.
func (ws *Workspace) DiscardScratch(v *View) bool {
	id := scratchID(v.uri)
	if _, ok := ws.scratch[id]; !ok || v.viewType != history.ViewScratch {
		return false
	}
	delete(ws.scratch, id)
	for _, other := range ws.Views() {
		if other.uri == v.uri {
			ws.remove(other, false)
		}
	}
	ws.log.Debug("scratch session discarded", "session", id)
	return true
}

