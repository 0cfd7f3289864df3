package workspace

import (
	"github.com/vidyasagar/tpane/internal/browser"
	"github.com/vidyasagar/tpane/internal/history"
)

// View is one tab: a file, a web page, a scratch buffer or the start page.
type View struct {
	ID    int
	Title string
	Lines []string
	Links []browser.Link

	// Line is the top visible line, Col the remembered column.
	Line int
	Col  int

	Loading bool
	// Rev changes whenever Lines is replaced.
	Rev int

	uri      string
	viewType string
	group    *Group
	markers  map[int]int // handle -> line
	ws       *Workspace
}

var _ history.ViewRef = (*View)(nil)

func (v *View) URI() string        { return v.uri }
func (v *View) ViewType() string   { return v.viewType }
func (v *View) TabGroupID() string { return v.group.ID }

// MarkerLine returns where a marker sits now, or -1 if this view never
// placed it.
func (v *View) MarkerLine(handle int) int {
	if line, ok := v.markers[handle]; ok {
		return line
	}
	return -1
}

// AddMarker places a marker that follows its line across file reloads.
// Handles are unique across the workspace.
func (v *View) AddMarker(line int) int {
	v.ws.nextMarker++
	h := v.ws.nextMarker
	v.markers[h] = v.clamp(line)
	return h
}

// Goto focuses the view and scrolls it to line.
func (v *View) Goto(line, col int) {
	v.Line = v.clamp(line)
	v.Col = col
	v.ws.Focus(v)
}

// Location returns where the view is scrolled to.
func (v *View) Location() history.Location {
	return history.Location{
		URI:          v.uri,
		Line:         v.Line,
		Col:          v.Col,
		TabGroupID:   v.group.ID,
		MarkerHandle: -1,
		ViewType:     v.viewType,
	}
}

func (v *View) setLines(lines []string) {
	v.Lines = lines
	v.Rev++
}

// Open reports whether the view is still in a tab group.
func (v *View) Open() bool {
	return v.group != nil && v.group.index(v) >= 0
}

func (v *View) clamp(line int) int {
	if line < 0 {
		return 0
	}
	if !v.Loading && len(v.Lines) > 0 && line >= len(v.Lines) {
		return len(v.Lines) - 1
	}
	return line
}

// shiftMarkers moves markers and the scroll position after the content
// changed from old to new. Lines inside the edited region collapse onto it.
func (v *View) shiftMarkers(old, new []string) {
	prefix := 0
	for prefix < len(old) && prefix < len(new) && old[prefix] == new[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(old)-prefix && suffix < len(new)-prefix &&
		old[len(old)-1-suffix] == new[len(new)-1-suffix] {
		suffix++
	}
	oldEnd := len(old) - suffix
	newEnd := len(new) - suffix
	shift := func(line int) int {
		switch {
		case line < prefix:
			return line
		case line >= oldEnd:
			return line + newEnd - oldEnd
		default:
			return min(line, max(prefix, newEnd-1))
		}
	}
	for h, line := range v.markers {
		v.markers[h] = shift(line)
	}
	v.Line = shift(v.Line)
}
