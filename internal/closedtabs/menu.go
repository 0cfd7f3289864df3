package closedtabs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vidyasagar/tpane/internal/history"
	"github.com/vidyasagar/tpane/internal/uriparse"
)

// StartPageURI is what a closed start page reopens as.
const StartPageURI = "tpane://start"

// MenuItem is one row of the closed tabs menu.
type MenuItem struct {
	Label     string
	AccessKey string
	// StackIndex is the argument for Reopen, -1 for the placeholder row.
	StackIndex int
	Disabled   bool
	Entry      Entry
}

// Menu disambiguates the stack against live and lists it newest first.
// An empty stack yields a single disabled placeholder row.
func (s *Stack) Menu(live LiveViews) []MenuItem {
	if len(s.entries) == 0 {
		return []MenuItem{{
			Label:      "No recently closed tabs",
			StackIndex: -1,
			Disabled:   true,
		}}
	}
	s.Disambiguate(live)
	items := make([]MenuItem, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		n := len(items) + 1
		e := s.entries[i]
		items = append(items, MenuItem{
			Label:      strconv.Itoa(n) + " " + EntryLabel(e),
			AccessKey:  accessKey(n),
			StackIndex: i,
			Entry:      e,
		})
	}
	return items
}

// EntryLabel is the display name of an entry, annotated with tab group and
// view type when its duplicate flags are set.
func EntryLabel(e Entry) string {
	base, dir := uriparse.PathInfo(e.URI)
	var group, viewType string
	if e.HasDuplicateTabGroup {
		group = GroupLabel(e.TabGroupID)
	}
	if e.HasDuplicateViewType {
		viewType = e.ViewType
	}
	return uriparse.Label(base, dir, 0, group, viewType)
}

// GroupLabel shortens a tab group id such as "pane-2" to "2".
func GroupLabel(id string) string {
	return strings.TrimPrefix(id, "pane-")
}

// OpenURI is the uri to open when reopening e.
func OpenURI(e Entry) string {
	if e.ViewType == history.ViewStartPage {
		return StartPageURI
	}
	return e.URI
}

func accessKey(n int) string {
	switch {
	case n <= 9:
		return strconv.Itoa(n)
	case n == 10:
		return "0"
	default:
		return ""
	}
}

// String is used in logs.
func (e Entry) String() string {
	return fmt.Sprintf("%s %s@%s#%d", e.ViewType, e.URI, e.TabGroupID, e.TabIndex)
}
