package closedtabs

import (
	"encoding/json"
	"fmt"
)

// PrefKey is the preference key the stack is saved under.
const PrefKey = "history_rctabs.rctabs_list"

// Persistence stores serialized preference values.
type Persistence interface {
	Save(key, value string) error
	// Load reports false when nothing was saved under key.
	Load(key string) (string, bool, error)
}

// Save writes the stack to p as a JSON list, oldest first.
func (s *Stack) Save(p Persistence) error {
	data, err := json.Marshal(s.Entries())
	if err != nil {
		return fmt.Errorf("encoding closed tabs: %w", err)
	}
	if err := p.Save(PrefKey, string(data)); err != nil {
		return fmt.Errorf("saving closed tabs: %w", err)
	}
	return nil
}

// Load replaces the stack with the list saved in p. A missing value leaves
// the stack unchanged.
func (s *Stack) Load(p Persistence) error {
	entries, ok, err := Decode(p)
	if err != nil || !ok {
		return err
	}
	s.Restore(entries)
	return nil
}

// Decode reads the saved list from p without a Stack.
func Decode(p Persistence) ([]Entry, bool, error) {
	raw, ok, err := p.Load(PrefKey)
	if err != nil {
		return nil, false, fmt.Errorf("loading closed tabs: %w", err)
	}
	if !ok || raw == "" {
		return nil, false, nil
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false, fmt.Errorf("decoding closed tabs: %w", err)
	}
	return entries, true, nil
}
