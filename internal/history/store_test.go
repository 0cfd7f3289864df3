package history_test

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/vidyasagar/tpane/internal/history"
)

func uris(locs []history.Location) []string {
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = l.URI
	}
	return out
}

func TestNoteTruncatesForwardHistory(t *testing.T) {
	s := history.NewLocationStore(0)
	for _, u := range []string{"a", "b", "c"} {
		s.Note(loc(u, 0), false, nil)
	}
	if _, ok := s.Next(nil, history.Back, 2); !ok {
		t.Fatal("expected to move back")
	}
	s.Note(loc("d", 0), false, nil)

	locs, pos := s.Locations()
	if got := fmt.Sprint(uris(locs)); got != "[a d]" {
		t.Fatalf("entries = %s, want [a d]", got)
	}
	if pos != 1 {
		t.Errorf("pos = %d, want 1", pos)
	}
}

func TestNoteCoalescesSameLine(t *testing.T) {
	s := history.NewLocationStore(0)
	s.Note(loc("a", 3), false, nil)
	s.Note(history.Location{URI: "a", Line: 3, Col: 8, MarkerHandle: -1}, false, nil)
	if s.Len() != 1 {
		t.Fatalf("expected one entry, got %d", s.Len())
	}
	locs, _ := s.Locations()
	if locs[0].Col != 8 {
		t.Errorf("expected the newer column, got %d", locs[0].Col)
	}
}

func TestNoteSectionChange(t *testing.T) {
	s := history.NewLocationStore(0)
	s.Note(loc("a", 10), false, nil)
	s.Note(loc("a", 14), true, nil)
	if s.Len() != 1 {
		t.Fatalf("nearby line within a section should replace, got %d entries", s.Len())
	}
	s.Note(loc("a", 60), true, nil)
	if s.Len() != 2 {
		t.Fatalf("a new section should be recorded, got %d entries", s.Len())
	}
	s.Note(loc("a", 62), false, nil)
	if s.Len() != 3 {
		t.Fatalf("without section checks a different line is a new entry, got %d", s.Len())
	}
}

func TestNoteIgnoresEmptyURI(t *testing.T) {
	s := history.NewLocationStore(0)
	if got := s.Note(history.Location{}, false, nil); got != nil {
		t.Fatalf("expected nil for empty uri, got %+v", got)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Len())
	}
}

func TestNoteBounded(t *testing.T) {
	s := history.NewLocationStore(3)
	for i := 0; i < 5; i++ {
		s.Note(loc(fmt.Sprintf("u%d", i), 0), false, nil)
	}
	locs, pos := s.Locations()
	if got := fmt.Sprint(uris(locs)); got != "[u2 u3 u4]" {
		t.Fatalf("entries = %s, want [u2 u3 u4]", got)
	}
	if pos != 2 {
		t.Errorf("pos = %d, want 2", pos)
	}
}

func TestBackRecordsMovedCurrent(t *testing.T) {
	s := history.NewLocationStore(0)
	s.Note(loc("a", 0), false, nil)
	s.Note(loc("b", 0), false, nil)

	cur := loc("c", 5)
	got, ok := s.Next(&cur, history.Back, 1)
	if !ok || got.URI != "b" {
		t.Fatalf("expected b, got %+v", got)
	}
	if !s.CanMove(history.Forward) {
		t.Fatal("expected the recorded current location ahead")
	}
	fwd, ok := s.Next(nil, history.Forward, 1)
	if !ok || fwd.URI != "c" || fwd.Line != 5 {
		t.Fatalf("expected c:5 forward, got %+v", fwd)
	}
}

func TestCanMove(t *testing.T) {
	s := history.NewLocationStore(0)
	if s.CanMove(history.Back) || s.CanMove(history.Forward) {
		t.Fatal("empty store cannot move")
	}
	s.Note(loc("a", 0), false, nil)
	s.Note(loc("b", 0), false, nil)
	if !s.CanMove(history.Back) || s.CanMove(history.Forward) {
		t.Fatal("expected back only")
	}
	s.Next(nil, history.Back, 1)
	if s.CanMove(history.Back) || !s.CanMove(history.Forward) {
		t.Fatal("expected forward only")
	}
}

func TestMarkObsoleteRestoresOrigin(t *testing.T) {
	s := history.NewLocationStore(0)
	for _, u := range []string{"a", "x", "b", "x", "c"} {
		s.Note(loc(u, 0), false, nil)
	}
	got, _ := s.Next(nil, history.Back, 1)
	if got.URI != "x" {
		t.Fatalf("expected x, got %s", got.URI)
	}
	s.MarkObsolete("x", 1, history.Back)

	locs, pos := s.Locations()
	if got := fmt.Sprint(uris(locs)); got != "[a b c]" {
		t.Fatalf("entries = %s, want [a b c]", got)
	}
	if locs[pos].URI != "c" {
		t.Fatalf("expected position back on c, got %s", locs[pos].URI)
	}
	next, _ := s.Next(nil, history.Back, 1)
	if next.URI != "b" {
		t.Errorf("expected b next, got %s", next.URI)
	}
}

func TestRecentDeltas(t *testing.T) {
	s := history.NewLocationStore(0)
	for _, u := range []string{"a", "b", "c", "d"} {
		s.Note(loc(u, 0), false, nil)
	}
	s.Next(nil, history.Back, 2) // at b

	idx, locs := s.Recent(nil)
	if got := fmt.Sprint(uris(locs)); got != "[d c b a]" {
		t.Fatalf("recent = %s, want [d c b a]", got)
	}
	if idx != 2 {
		t.Fatalf("current index = %d, want 2", idx)
	}
	// Item 0 is two steps forward.
	if delta := idx - 0; delta != 2 {
		t.Fatalf("delta = %d", delta)
	}
	got, _ := s.Next(nil, history.Forward, idx-0)
	if got.URI != "d" {
		t.Errorf("expected d, got %s", got.URI)
	}
}

func TestRecentIncludesUnrecordedCurrent(t *testing.T) {
	s := history.NewLocationStore(0)
	s.Note(loc("a", 0), false, nil)
	s.Note(loc("b", 0), false, nil)

	cur := loc("c", 1)
	idx, locs := s.Recent(&cur)
	if idx != 0 {
		t.Fatalf("current index = %d, want 0", idx)
	}
	if got := fmt.Sprint(uris(locs)); got != "[c b a]" {
		t.Fatalf("recent = %s, want [c b a]", got)
	}
	// Picking item 2 moves back two steps from the current location.
	got, _ := s.Next(&cur, history.Back, 2)
	if got.URI != "a" {
		t.Errorf("expected a, got %s", got.URI)
	}
}

// Random notes, moves and evictions keep the cursor inside the recorded
// locations, and an evicted uri is gone for good.
func TestStoreCursorStaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(1, 8).Draw(t, "limit")
		s := history.NewLocationStore(limit)
		steps := rapid.IntRange(0, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			dir := rapid.SampledFrom([]history.Direction{history.Back, history.Forward}).Draw(t, "dir")
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				u := rapid.SampledFrom([]string{"a", "b", "c", "d", "e"}).Draw(t, "uri")
				s.Note(loc(u, rapid.IntRange(0, 3).Draw(t, "line")), false, nil)
			case 1:
				s.Next(nil, dir, rapid.IntRange(1, 3).Draw(t, "delta"))
			case 2:
				delta := rapid.IntRange(1, 3).Draw(t, "delta")
				target, ok := s.Next(nil, dir, delta)
				if !ok {
					continue
				}
				s.MarkObsolete(target.URI, delta, dir)
				locs, _ := s.Locations()
				for _, l := range locs {
					if l.URI == target.URI {
						t.Fatalf("%s still recorded after eviction", target.URI)
					}
				}
			}

			locs, pos := s.Locations()
			if len(locs) > limit {
				t.Fatalf("len %d exceeds %d", len(locs), limit)
			}
			if len(locs) == 0 && pos != -1 || len(locs) > 0 && (pos < 0 || pos >= len(locs)) {
				t.Fatalf("pos %d out of range for %d locations", pos, len(locs))
			}
			if s.CanMove(history.Back) != (pos > 0) {
				t.Fatalf("CanMove(back) = %v at pos %d", s.CanMove(history.Back), pos)
			}
			if s.CanMove(history.Forward) != (pos >= 0 && pos < len(locs)-1) {
				t.Fatalf("CanMove(forward) = %v at pos %d of %d", s.CanMove(history.Forward), pos, len(locs))
			}
		}
	})
}
