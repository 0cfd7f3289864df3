package history_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vidyasagar/tpane/internal/history"
)

type fakeView struct {
	uri      string
	markers  map[int]int
	gotoLine int
	gotoCol  int
	gotos    int
}

func newFakeView(uri string) *fakeView {
	return &fakeView{uri: uri, markers: map[int]int{}, gotoLine: -1}
}

func (v *fakeView) URI() string        { return v.uri }
func (v *fakeView) ViewType() string   { return history.ViewEditor }
func (v *fakeView) TabGroupID() string { return "group-1" }

func (v *fakeView) MarkerLine(handle int) int {
	if line, ok := v.markers[handle]; ok {
		return line
	}
	return -1
}

func (v *fakeView) AddMarker(line int) int {
	h := len(v.markers) + 1
	v.markers[h] = line
	return h
}

func (v *fakeView) Goto(line, col int) {
	v.gotoLine, v.gotoCol = line, col
	v.gotos++
}

// fakeMaterializer opens every uri except those starting with scratch://,
// which are obsolete, and those listed in failing.
type fakeMaterializer struct {
	open     map[string]*fakeView
	failing  map[string]error
	async    bool
	queued   []func()
	openedBy []string
}

func newFakeMaterializer() *fakeMaterializer {
	return &fakeMaterializer{open: map[string]*fakeView{}, failing: map[string]error{}}
}

func (m *fakeMaterializer) Resolve(uri string, _ int, _ string) (history.ViewRef, bool) {
	v, ok := m.open[uri]
	return v, ok
}

func (m *fakeMaterializer) Open(loc history.Location, done func(history.Result)) {
	m.openedBy = append(m.openedBy, loc.URI)
	finish := func() {
		if strings.HasPrefix(loc.URI, "scratch://") {
			done(history.Result{Err: history.ErrObsolete})
			return
		}
		if err, ok := m.failing[loc.URI]; ok {
			done(history.Result{Err: err})
			return
		}
		v := newFakeView(loc.URI)
		m.open[loc.URI] = v
		done(history.Result{View: v})
	}
	if m.async {
		m.queued = append(m.queued, finish)
		return
	}
	finish()
}

// flush completes queued opens one by one, including those queued while
// flushing.
func (m *fakeMaterializer) flush() {
	for len(m.queued) > 0 {
		next := m.queued[0]
		m.queued = m.queued[1:]
		next()
	}
}

// countingStore records MarkObsolete calls on top of a LocationStore.
type countingStore struct {
	*history.LocationStore
	obsoleted []string
}

func (s *countingStore) MarkObsolete(uri string, delta int, dir history.Direction) {
	s.obsoleted = append(s.obsoleted, uri)
	s.LocationStore.MarkObsolete(uri, delta, dir)
}

func loc(uri string, line int) history.Location {
	return history.Location{URI: uri, Line: line, MarkerHandle: -1, ViewType: history.ViewEditor}
}

func newStore(max int, locs ...history.Location) *countingStore {
	s := &countingStore{LocationStore: history.NewLocationStore(max)}
	for _, l := range locs {
		s.Note(l, false, nil)
	}
	return s
}

func move(t *testing.T, w *history.Walker, dir history.Direction, delta int, explicit bool) history.Outcome {
	t.Helper()
	var (
		out      history.Outcome
		reported int
	)
	if err := w.Move(dir, delta, explicit, func(o history.Outcome) {
		out = o
		reported++
	}); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if reported != 1 {
		t.Fatalf("expected one outcome, got %d", reported)
	}
	return out
}

func TestImplicitBackSkipsObsoleteEntry(t *testing.T) {
	a, x, c := loc("file:///a.go", 4), loc("scratch://s1/", 0), loc("file:///c.go", 9)
	store := newStore(0, a, x, c)
	mat := newFakeMaterializer()
	w := history.NewWalker(store, mat, func() *history.Location { return &c }, history.WalkerConfig{})

	out := move(t, w, history.Back, 1, false)
	if !out.Landed() {
		t.Fatalf("expected to land, got %v", out.Err)
	}
	if len(store.obsoleted) != 1 || store.obsoleted[0] != x.URI {
		t.Fatalf("expected one MarkObsolete for %s, got %v", x.URI, store.obsoleted)
	}
	if out.Location == nil || out.Location.URI != a.URI {
		t.Fatalf("expected to land on %s, got %+v", a.URI, out.Location)
	}
	if v := mat.open[a.URI]; v == nil || v.gotoLine != 4 {
		t.Fatalf("expected %s focused at line 4, got %+v", a.URI, v)
	}
	if out.Obsoleted != 1 {
		t.Errorf("Obsoleted = %d, want 1", out.Obsoleted)
	}
}

func TestExplicitBackStopsAtObsoleteTarget(t *testing.T) {
	a, x, c := loc("file:///a.go", 0), loc("scratch://s1/", 0), loc("file:///c.go", 0)
	store := newStore(0, a, x, c)
	mat := newFakeMaterializer()
	w := history.NewWalker(store, mat, func() *history.Location { return &c }, history.WalkerConfig{})

	out := move(t, w, history.Back, 1, true)
	if out.Landed() {
		t.Fatal("expected the move to fail")
	}
	if len(store.obsoleted) != 1 {
		t.Fatalf("expected one MarkObsolete, got %v", store.obsoleted)
	}
	if !errors.Is(out.Err, history.ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", out.Err)
	}
	var ex *history.ExhaustedError
	if !errors.As(out.Err, &ex) || ex.Reason != history.ReasonTargetGone {
		t.Fatalf("expected ReasonTargetGone, got %v", out.Err)
	}
	if _, ok := mat.open[a.URI]; ok {
		t.Errorf("explicit move must not continue to %s", a.URI)
	}
	if !strings.Contains(out.Err.Error(), "scratch://s1/ is no longer accessible") {
		t.Errorf("unexpected message %q", out.Err.Error())
	}
}

func TestFallbackLimitAfterHundredObsolete(t *testing.T) {
	locs := []history.Location{loc("file:///start.go", 0)}
	for i := 0; i < 150; i++ {
		locs = append(locs, loc(fmt.Sprintf("scratch://s%d/", i), 0))
	}
	cur := loc("file:///end.go", 0)
	locs = append(locs, cur)
	store := newStore(1000, locs...)
	mat := newFakeMaterializer()
	w := history.NewWalker(store, mat, func() *history.Location { return &cur }, history.WalkerConfig{})

	out := move(t, w, history.Back, 1, false)
	var ex *history.ExhaustedError
	if !errors.As(out.Err, &ex) || ex.Reason != history.ReasonFallbackLimit {
		t.Fatalf("expected ReasonFallbackLimit, got %v", out.Err)
	}
	if len(store.obsoleted) != history.DefaultFallbackLimit {
		t.Fatalf("expected %d MarkObsolete calls, got %d", history.DefaultFallbackLimit, len(store.obsoleted))
	}
	if !strings.Contains(out.Err.Error(), "sequence of 100 obsolete locations") {
		t.Errorf("unexpected message %q", out.Err.Error())
	}
	if w.Pending() {
		t.Error("walker still pending after the move finished")
	}
}

func TestRemainingObsoleteWhenStoreRunsOut(t *testing.T) {
	x1, x2, c := loc("scratch://s1/", 0), loc("scratch://s2/", 0), loc("file:///c.go", 0)
	store := newStore(0, x1, x2, c)
	w := history.NewWalker(store, newFakeMaterializer(), func() *history.Location { return &c }, history.WalkerConfig{})

	out := move(t, w, history.Back, 1, false)
	var ex *history.ExhaustedError
	if !errors.As(out.Err, &ex) || ex.Reason != history.ReasonRemainingObsolete {
		t.Fatalf("expected ReasonRemainingObsolete, got %v", out.Err)
	}
	if len(store.obsoleted) != 2 {
		t.Errorf("expected two MarkObsolete calls, got %v", store.obsoleted)
	}
	if got := out.Err.Error(); got != "Couldn't move back: the remaining locations are obsolete" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestForwardSkipsObsolete(t *testing.T) {
	a, x, c := loc("file:///a.go", 0), loc("scratch://s1/", 0), loc("file:///c.go", 7)
	store := newStore(0, a, x, c)
	mat := newFakeMaterializer()
	w := history.NewWalker(store, mat, nil, history.WalkerConfig{})

	if out := move(t, w, history.Back, 2, true); !out.Landed() || out.Location.URI != a.URI {
		t.Fatalf("expected to land on %s, got %+v", a.URI, out)
	}
	out := move(t, w, history.Forward, 1, false)
	if !out.Landed() || out.Location.URI != c.URI {
		t.Fatalf("expected to land on %s, got %+v", c.URI, out)
	}
	if len(store.obsoleted) != 1 {
		t.Errorf("expected one MarkObsolete, got %v", store.obsoleted)
	}
}

func TestNoHistory(t *testing.T) {
	store := newStore(0)
	w := history.NewWalker(store, newFakeMaterializer(), nil, history.WalkerConfig{})

	out := move(t, w, history.Forward, 1, false)
	var ex *history.ExhaustedError
	if !errors.As(out.Err, &ex) || ex.Reason != history.ReasonNoMoreHistory {
		t.Fatalf("expected ReasonNoMoreHistory, got %v", out.Err)
	}
	if got := out.Err.Error(); got != "Couldn't move forward: no more locations" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestOpenFailureIsNotObsolete(t *testing.T) {
	a, b, c := loc("file:///a.go", 0), loc("file:///gone.go", 0), loc("file:///c.go", 0)
	store := newStore(0, a, b, c)
	mat := newFakeMaterializer()
	mat.failing[b.URI] = errors.New("permission denied")
	w := history.NewWalker(store, mat, func() *history.Location { return &c }, history.WalkerConfig{})

	out := move(t, w, history.Back, 1, false)
	if out.Landed() {
		t.Fatal("expected failure")
	}
	if errors.Is(out.Err, history.ErrExhausted) {
		t.Fatalf("open failure must not be reported as exhausted: %v", out.Err)
	}
	if !strings.Contains(out.Err.Error(), "permission denied") {
		t.Errorf("expected cause in %q", out.Err.Error())
	}
	if len(store.obsoleted) != 0 {
		t.Errorf("open failure must not mark obsolete, got %v", store.obsoleted)
	}
}

func TestOpenViewUsesMarkerLine(t *testing.T) {
	mat := newFakeMaterializer()
	view := newFakeView("file:///a.go")
	mat.open[view.uri] = view

	store := newStore(0)
	store.Note(loc("file:///a.go", 10), false, view)
	c := loc("file:///c.go", 0)
	store.Note(c, false, nil)

	// Lines were inserted above the noted location since it was recorded.
	for h := range view.markers {
		view.markers[h] = 15
	}

	w := history.NewWalker(store, mat, func() *history.Location { return &c }, history.WalkerConfig{})
	out := move(t, w, history.Back, 1, false)
	if !out.Landed() {
		t.Fatalf("expected to land, got %v", out.Err)
	}
	if view.gotoLine != 15 {
		t.Errorf("expected marker line 15, got %d", view.gotoLine)
	}
	if len(mat.openedBy) != 0 {
		t.Errorf("expected the open view to be reused, opened %v", mat.openedBy)
	}
}

func TestAsyncMoveDefersToCallback(t *testing.T) {
	a, x, c := loc("file:///a.go", 2), loc("scratch://s1/", 0), loc("file:///c.go", 0)
	store := newStore(0, a, x, c)
	mat := newFakeMaterializer()
	mat.async = true
	w := history.NewWalker(store, mat, func() *history.Location { return &c }, history.WalkerConfig{})

	var outcomes []history.Outcome
	if err := w.Move(history.Back, 1, false, func(o history.Outcome) { outcomes = append(outcomes, o) }); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if !w.Pending() {
		t.Fatal("expected a pending move")
	}
	if len(outcomes) != 0 {
		t.Fatal("outcome reported before the materialization completed")
	}
	if err := w.Move(history.Back, 1, false, nil); !errors.Is(err, history.ErrMoveInFlight) {
		t.Fatalf("expected ErrMoveInFlight, got %v", err)
	}
	if len(mat.queued) != 1 {
		t.Fatalf("expected one open in flight, got %d", len(mat.queued))
	}

	mat.flush()

	if w.Pending() {
		t.Fatal("walker still pending after completion")
	}
	if len(outcomes) != 1 || !outcomes[0].Landed() || outcomes[0].Location.URI != a.URI {
		t.Fatalf("expected one landing on %s, got %+v", a.URI, outcomes)
	}
	if len(store.obsoleted) != 1 {
		t.Errorf("expected one MarkObsolete, got %v", store.obsoleted)
	}
}

func TestCustomFallbackLimit(t *testing.T) {
	locs := []history.Location{loc("file:///a.go", 0)}
	for i := 0; i < 5; i++ {
		locs = append(locs, loc(fmt.Sprintf("scratch://s%d/", i), 0))
	}
	store := newStore(0, locs...)
	w := history.NewWalker(store, newFakeMaterializer(), nil, history.WalkerConfig{FallbackLimit: 3})

	out := move(t, w, history.Back, 1, false)
	var ex *history.ExhaustedError
	if !errors.As(out.Err, &ex) || ex.Reason != history.ReasonFallbackLimit || ex.Limit != 3 {
		t.Fatalf("expected fallback limit 3, got %v", out.Err)
	}
	if len(store.obsoleted) != 3 {
		t.Errorf("expected 3 MarkObsolete calls, got %d", len(store.obsoleted))
	}
}
