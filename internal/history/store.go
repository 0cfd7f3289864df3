package history

// Store is the ordered location history a Walker moves through.
type Store interface {
	// Next returns the location delta steps from current in dir and makes
	// it the store's position. It reports false when there is none.
	Next(current *Location, dir Direction, delta int) (*Location, bool)
	// CanMove reports whether any location lies in dir from the position.
	CanMove(dir Direction) bool
	// MarkObsolete evicts uri after a move of delta steps in dir landed on
	// it, leaving the position where that move started.
	MarkObsolete(uri string, delta int, dir Direction)
	// Recent returns a window of locations, newest first, and the index of
	// the current one within it.
	Recent(current *Location) (int, []Location)
	// Note records loc as the newest location.
	Note(loc Location, checkSectionChange bool, source ViewRef) *Location
}

const (
	defaultMaxLocations = 100
	recentWindow        = 10
	// sectionLines is how far the cursor may travel inside one uri before
	// a section-change note records a new location.
	sectionLines = 10
)

// LocationStore is an in-memory Store with a cursor, truncating forward
// history when a new location is noted.
type LocationStore struct {
	entries []Location
	pos     int // index of the current entry, -1 when empty
	maxSize int
}

// NewLocationStore creates an empty store keeping at most maxSize locations.
func NewLocationStore(maxSize int) *LocationStore {
	if maxSize <= 0 {
		maxSize = defaultMaxLocations
	}
	return &LocationStore{pos: -1, maxSize: maxSize}
}

// Note records loc after the current entry, dropping forward entries. A
// location at the same uri and line as the current entry replaces it in
// place; with checkSectionChange, so does one within sectionLines of it.
func (s *LocationStore) Note(loc Location, checkSectionChange bool, source ViewRef) *Location {
	if loc.URI == "" {
		return nil
	}
	if source != nil && loc.MarkerHandle < 0 {
		loc.MarkerHandle = source.AddMarker(loc.Line)
	}
	if cur := s.current(); cur != nil && cur.URI == loc.URI {
		if cur.Line == loc.Line || (checkSectionChange && abs(cur.Line-loc.Line) <= sectionLines) {
			s.entries[s.pos] = loc
			return &s.entries[s.pos]
		}
	}
	s.entries = append(s.entries[:s.pos+1], loc)
	if over := len(s.entries) - s.maxSize; over > 0 {
		s.entries = append([]Location(nil), s.entries[over:]...)
	}
	s.pos = len(s.entries) - 1
	return &s.entries[s.pos]
}

// Next implements Store. A current location that moved away from the
// current entry is recorded first so the move can be undone.
func (s *LocationStore) Next(current *Location, dir Direction, delta int) (*Location, bool) {
	if delta <= 0 {
		return nil, false
	}
	if current != nil && !s.atEntry(*current) {
		if dir == Back {
			s.Note(*current, false, nil)
		} else if s.pos >= 0 {
			s.entries[s.pos] = *current
		}
	}
	target := s.pos - delta
	if dir == Forward {
		target = s.pos + delta
	}
	if target < 0 || target >= len(s.entries) {
		return nil, false
	}
	s.pos = target
	loc := s.entries[target]
	return &loc, true
}

// CanMove implements Store.
func (s *LocationStore) CanMove(dir Direction) bool {
	if dir == Forward {
		return s.pos >= 0 && s.pos < len(s.entries)-1
	}
	return s.pos > 0
}

// MarkObsolete implements Store. Every entry with uri is removed and the
// position goes back to the entry the move started from, so repeating the
// same move continues past the removed entries.
func (s *LocationStore) MarkObsolete(uri string, delta int, dir Direction) {
	origin := s.pos + delta
	if dir == Forward {
		origin = s.pos - delta
	}
	kept := s.entries[:0]
	newOrigin := -1
	for i, e := range s.entries {
		if i == origin {
			newOrigin = len(kept)
		}
		if e.URI == uri {
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	if newOrigin < 0 || newOrigin > len(s.entries)-1 {
		newOrigin = len(s.entries) - 1
	}
	s.pos = newOrigin
}

// Recent implements Store. Item i of the result lies currentIndex-i steps
// forward from the current entry; negative means back.
func (s *LocationStore) Recent(current *Location) (int, []Location) {
	if len(s.entries) == 0 {
		if current != nil {
			return 0, []Location{*current}
		}
		return 0, nil
	}
	var locs []Location
	if current != nil && !s.atEntry(*current) && s.pos == len(s.entries)-1 {
		// The current location would be recorded by the next back move.
		locs = append(locs, *current)
		for i := s.pos; i >= 0 && len(locs) <= recentWindow; i-- {
			locs = append(locs, s.entries[i])
		}
		return 0, locs
	}
	hi := min(s.pos+recentWindow, len(s.entries)-1)
	lo := max(s.pos-recentWindow, 0)
	for i := hi; i >= lo; i-- {
		locs = append(locs, s.entries[i])
	}
	return hi - s.pos, locs
}

// Len returns the number of recorded locations.
func (s *LocationStore) Len() int {
	return len(s.entries)
}

// Locations returns a copy of the recorded locations, oldest first, and the
// current position.
func (s *LocationStore) Locations() ([]Location, int) {
	out := make([]Location, len(s.entries))
	copy(out, s.entries)
	return out, s.pos
}

// Clear resets the store.
func (s *LocationStore) Clear() {
	s.entries = nil
	s.pos = -1
}

func (s *LocationStore) current() *Location {
	if s.pos < 0 || s.pos >= len(s.entries) {
		return nil
	}
	return &s.entries[s.pos]
}

func (s *LocationStore) atEntry(loc Location) bool {
	cur := s.current()
	return cur != nil && cur.URI == loc.URI && cur.Line == loc.Line
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
