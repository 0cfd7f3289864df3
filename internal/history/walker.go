package history

import (
	"errors"
	"fmt"

	"github.com/vidyasagar/tpane/internal/logx"
	"pkt.systems/pslog"
)

// DefaultFallbackLimit bounds how many obsolete locations a single move
// skips before giving up.
const DefaultFallbackLimit = 100

// Result is the outcome of one materialization: a view, ErrObsolete, or
// another error.
type Result struct {
	View ViewRef
	Err  error
}

// Materializer turns locations into focused views.
type Materializer interface {
	// Resolve finds an already open view for uri, preferring the given
	// window and tab group.
	Resolve(uri string, windowID int, tabGroupID string) (ViewRef, bool)
	// Open opens loc in a new view. done is called exactly once, either
	// before Open returns or later from the UI loop.
	Open(loc Location, done func(Result))
}

// Outcome reports how a move ended.
type Outcome struct {
	Dir       Direction
	Delta     int
	Explicit  bool
	Location  *Location // where the move landed
	View      ViewRef
	Obsoleted int // locations marked obsolete along the way
	Err       error
}

// Landed reports whether the move focused a location.
func (o Outcome) Landed() bool {
	return o.Err == nil
}

// WalkerConfig tunes a Walker.
type WalkerConfig struct {
	FallbackLimit int
	Logger        pslog.Logger
}

// Walker moves through a Store, skipping locations that can no longer be
// opened. It runs on the UI loop and keeps at most one move in flight.
type Walker struct {
	store   Store
	mat     Materializer
	current func() *Location
	limit   int
	log     pslog.Logger
	pending bool
}

// NewWalker creates a Walker. current returns the location of the focused
// view, or nil when there is none.
func NewWalker(store Store, mat Materializer, current func() *Location, cfg WalkerConfig) *Walker {
	if cfg.FallbackLimit <= 0 {
		cfg.FallbackLimit = DefaultFallbackLimit
	}
	if current == nil {
		current = func() *Location { return nil }
	}
	return &Walker{
		store:   store,
		mat:     mat,
		current: current,
		limit:   cfg.FallbackLimit,
		log:     logx.WithComponent(cfg.Logger, "history"),
	}
}

// Pending reports whether a move is waiting for a materialization.
func (w *Walker) Pending() bool {
	return w.pending
}

// Move walks delta steps in dir. explicit means the user picked this exact
// location from a list, so an obsolete target ends the move instead of
// being skipped. report receives the outcome, possibly after Move returns.
// The only error returned is ErrMoveInFlight.
func (w *Walker) Move(dir Direction, delta int, explicit bool, report func(Outcome)) error {
	if w.pending {
		return ErrMoveInFlight
	}
	if delta < 1 {
		delta = 1
	}
	mv := &move{
		w:        w,
		dir:      dir,
		delta:    delta,
		explicit: explicit,
		current:  w.current(),
		report:   report,
	}
	w.pending = true
	mv.step()
	return nil
}

type move struct {
	w         *Walker
	dir       Direction
	delta     int
	explicit  bool
	current   *Location
	report    func(Outcome)
	attempts  int
	obsoleted int
}

// step runs the retry loop until it finishes or hands its continuation to
// an asynchronous materialization.
func (mv *move) step() {
	w := mv.w
	for mv.attempts < w.limit {
		mv.attempts++
		loc, ok := w.store.Next(mv.current, mv.dir, mv.delta)
		if !ok {
			mv.finish(nil, nil, &ExhaustedError{Dir: mv.dir, Reason: ReasonNoMoreHistory})
			return
		}

		var (
			res    Result
			done   bool
			inline = true
		)
		target := *loc
		w.materialize(target, func(r Result) {
			if inline {
				res, done = r, true
				return
			}
			if mv.handle(target, r) {
				mv.step()
			}
		})
		inline = false
		if !done {
			return
		}
		if !mv.handle(target, res) {
			return
		}
	}
	w.log.Warn("history fallback limit reached", "dir", mv.dir.String(), "limit", w.limit)
	mv.finish(nil, nil, &ExhaustedError{Dir: mv.dir, Reason: ReasonFallbackLimit, Limit: w.limit})
}

// handle applies one materialization result and reports whether the loop
// should continue.
func (mv *move) handle(loc Location, r Result) bool {
	w := mv.w
	switch {
	case r.Err == nil:
		mv.finish(&loc, r.View, nil)
		return false
	case errors.Is(r.Err, ErrObsolete):
		w.store.MarkObsolete(loc.URI, mv.delta, mv.dir)
		mv.obsoleted++
		logx.WithURI(w.log, loc.URI).Debug("history location obsolete",
			"dir", mv.dir.String(), "delta", mv.delta, "explicit", mv.explicit)
		if mv.explicit {
			mv.finish(nil, nil, &ExhaustedError{Dir: mv.dir, Reason: ReasonTargetGone, URI: loc.URI})
			return false
		}
		if !w.store.CanMove(mv.dir) {
			mv.finish(nil, nil, &ExhaustedError{Dir: mv.dir, Reason: ReasonRemainingObsolete})
			return false
		}
		return true
	default:
		mv.finish(nil, nil, fmt.Errorf("opening %s: %w", loc.URI, r.Err))
		return false
	}
}

func (mv *move) finish(loc *Location, view ViewRef, err error) {
	mv.w.pending = false
	if mv.report == nil {
		return
	}
	mv.report(Outcome{
		Dir:       mv.dir,
		Delta:     mv.delta,
		Explicit:  mv.explicit,
		Location:  loc,
		View:      view,
		Obsoleted: mv.obsoleted,
		Err:       err,
	})
}

// materialize focuses loc, reusing an open view when there is one. An open
// view's marker gives the line the location has moved to since it was noted.
func (w *Walker) materialize(loc Location, done func(Result)) {
	line := loc.Line
	if view, ok := w.mat.Resolve(loc.URI, loc.WindowID, loc.TabGroupID); ok && view != nil {
		if loc.MarkerHandle >= 0 {
			if l := view.MarkerLine(loc.MarkerHandle); l != -1 {
				line = l
			}
		}
		view.Goto(line, loc.Col)
		done(Result{View: view})
		return
	}
	w.mat.Open(loc, func(r Result) {
		if r.Err == nil && r.View == nil {
			r.Err = fmt.Errorf("no view for %s", loc.URI)
		}
		if r.Err == nil {
			r.View.Goto(line, loc.Col)
		}
		done(r)
	})
}
