// Package closedtabs keeps the recently closed tabs so they can be reopened.
package closedtabs

import (
	"github.com/vidyasagar/tpane/internal/logx"
	"pkt.systems/pslog"
)

// DefaultCapacity is how many closed tabs are remembered.
const DefaultCapacity = 10

// Entry describes a closed tab.
type Entry struct {
	TabGroupID string `json:"tabGroup"`
	ViewType   string `json:"viewType"`
	URI        string `json:"uri"`
	TabIndex   int    `json:"tabIndex"`

	// Set by Disambiguate; never persisted.
	HasDuplicateTabGroup bool `json:"-"`
	HasDuplicateViewType bool `json:"-"`
}

// Valid reports whether the entry can be reopened.
func (e Entry) Valid() bool {
	return e.ViewType != "" && e.URI != ""
}

// LiveView is an open view as seen by Disambiguate.
type LiveView struct {
	ViewType   string
	TabGroupID string
}

// LiveViews finds the open views showing a uri.
type LiveViews interface {
	FindViewsForURI(uri string) []LiveView
}

// LiveViewsFunc adapts a function to LiveViews.
type LiveViewsFunc func(uri string) []LiveView

// FindViewsForURI implements LiveViews.
func (f LiveViewsFunc) FindViewsForURI(uri string) []LiveView {
	return f(uri)
}

// Stack is a bounded stack of closed tabs, most recent last. It is used
// from the UI loop only.
type Stack struct {
	entries  []Entry
	capacity int
	log      pslog.Logger
}

// NewStack creates an empty stack holding at most capacity entries.
func NewStack(capacity int, log pslog.Logger) *Stack {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Stack{capacity: capacity, log: logx.WithComponent(log, "closedtabs")}
}

// Push records a closed tab, evicting the oldest entries when full.
// Entries without a view type or uri are ignored.
func (s *Stack) Push(e Entry) {
	if !e.Valid() {
		return
	}
	if len(s.entries) >= s.capacity {
		n := len(s.entries) - s.capacity + 1
		s.entries = append(s.entries[:0], s.entries[n:]...)
	}
	e.HasDuplicateTabGroup, e.HasDuplicateViewType = false, false
	s.entries = append(s.entries, e)
}

// Reopen removes and returns the entry at index, counted in stack order
// (0 is the oldest). A stale index returns false; the stack may have
// changed since the menu offering it was built.
func (s *Stack) Reopen(index int) (Entry, bool) {
	if index < 0 || index >= len(s.entries) {
		s.log.Debug("closed tab index out of range", "index", index, "len", len(s.entries))
		return Entry{}, false
	}
	e := s.entries[index]
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	return e, true
}

// ReopenLast removes and returns the most recently closed entry.
func (s *Stack) ReopenLast() (Entry, bool) {
	return s.Reopen(len(s.entries) - 1)
}

// Disambiguate recomputes the duplicate flags of every entry against the
// open views and the other entries.
func (s *Stack) Disambiguate(live LiveViews) {
	Disambiguate(s.entries, live)
}

// Entries returns a copy of the stack, oldest first.
func (s *Stack) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Restore replaces the stack with entries, keeping the newest valid ones
// that fit.
func (s *Stack) Restore(entries []Entry) {
	s.entries = s.entries[:0]
	for _, e := range entries {
		s.Push(e)
	}
}

// Disambiguate decides which entries need their tab group or view type
// shown to be told apart. An entry is flagged when an open view of the same
// uri, or another entry of the same uri, differs in that attribute.
func Disambiguate(entries []Entry, live LiveViews) {
	for i := range entries {
		entries[i].HasDuplicateTabGroup = false
		entries[i].HasDuplicateViewType = false
	}
	for i := range entries {
		e := &entries[i]
		if live != nil {
			for _, v := range live.FindViewsForURI(e.URI) {
				if v.ViewType != e.ViewType {
					e.HasDuplicateViewType = true
				}
				if v.TabGroupID != e.TabGroupID {
					e.HasDuplicateTabGroup = true
				}
			}
		}
		for j := i + 1; j < len(entries); j++ {
			other := &entries[j]
			if e.URI != other.URI {
				continue
			}
			if e.TabGroupID != other.TabGroupID {
				e.HasDuplicateTabGroup = true
				other.HasDuplicateTabGroup = true
			}
			if e.ViewType != other.ViewType {
				e.HasDuplicateViewType = true
				other.HasDuplicateViewType = true
			}
		}
	}
}
