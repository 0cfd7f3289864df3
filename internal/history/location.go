package history

import "fmt"

// Direction selects which way a move walks through history.
type Direction int

const (
	Back Direction = iota
	Forward
)

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "back"
}

// View types a location can be materialized as.
const (
	ViewEditor    = "editor"
	ViewBrowser   = "browser"
	ViewStartPage = "startpage"
	ViewScratch   = "scratch"
)

// Location is an addressable position in history.
type Location struct {
	URI          string
	Line         int // 0-based
	Col          int
	WindowID     int
	TabGroupID   string
	MarkerHandle int // -1 when no marker was placed
	ViewType     string
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.URI, l.Line+1, l.Col)
}

// ViewRef is an open view that a location resolves to.
type ViewRef interface {
	URI() string
	ViewType() string
	TabGroupID() string
	// MarkerLine returns the current line of a marker, or -1 if the handle
	// is unknown to the view.
	MarkerLine(handle int) int
	// AddMarker places a marker at line and returns its handle.
	AddMarker(line int) int
	// Goto focuses the view and moves its viewport to line/col.
	Goto(line, col int)
}
