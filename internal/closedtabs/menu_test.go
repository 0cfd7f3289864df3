package closedtabs_test

import (
	"fmt"
	"testing"

	"github.com/vidyasagar/tpane/internal/closedtabs"
)

func TestMenuEmpty(t *testing.T) {
	items := closedtabs.NewStack(0, nil).Menu(nil)
	if len(items) != 1 || !items[0].Disabled || items[0].StackIndex != -1 {
		t.Fatalf("expected a disabled placeholder, got %+v", items)
	}
}

func TestMenuNewestFirst(t *testing.T) {
	s := closedtabs.NewStack(0, nil)
	for i := 0; i < 10; i++ {
		s.Push(entry(fmt.Sprintf("file:///src/f%d.go", i), "pane-1", "editor"))
	}
	items := s.Menu(nil)
	if len(items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(items))
	}
	if items[0].Label != "1 f9.go (/src)" || items[0].StackIndex != 9 || items[0].AccessKey != "1" {
		t.Errorf("first item = %+v", items[0])
	}
	if items[8].AccessKey != "9" {
		t.Errorf("ninth access key = %q", items[8].AccessKey)
	}
	if items[9].AccessKey != "0" || items[9].StackIndex != 0 {
		t.Errorf("tenth item = %+v", items[9])
	}

	e, ok := s.Reopen(items[3].StackIndex)
	if !ok || e.URI != "file:///src/f6.go" {
		t.Errorf("menu item 4 reopened %v", e)
	}
}

func TestMenuAnnotatesDuplicates(t *testing.T) {
	s := closedtabs.NewStack(0, nil)
	s.Push(entry("file:///src/a.go", "pane-1", "editor"))
	s.Push(entry("file:///src/a.go", "pane-2", "editor"))
	s.Push(entry("https://go.dev/doc", "pane-1", "browser"))

	live := closedtabs.LiveViewsFunc(func(uri string) []closedtabs.LiveView {
		if uri == "https://go.dev/doc" {
			return []closedtabs.LiveView{{ViewType: "editor", TabGroupID: "pane-1"}}
		}
		return nil
	})
	items := s.Menu(live)
	want := []string{
		"1 doc (go.dev) [browser]",
		"2 a.go (/src) [2]",
		"3 a.go (/src) [1]",
	}
	for i, w := range want {
		if items[i].Label != w {
			t.Errorf("item %d = %q, want %q", i, items[i].Label, w)
		}
	}
}

func TestOpenURIStartPage(t *testing.T) {
	e := entry("Start", "pane-1", "startpage")
	if got := closedtabs.OpenURI(e); got != closedtabs.StartPageURI {
		t.Errorf("OpenURI = %q", got)
	}
	e = entry("file:///a.go", "pane-1", "editor")
	if got := closedtabs.OpenURI(e); got != "file:///a.go" {
		t.Errorf("OpenURI = %q", got)
	}
}
