package navigator

import (
	"media-sorter/internal/catalog"
)

// State tracks the position within an ordered catalog. It is either empty
// (no entries) or positioned with a cursor in [0, len). Movement clamps at
// the ends rather than wrapping.
//
// State is not safe for concurrent use; the engine serializes access.
type State struct {
	entries []catalog.Entry
	cursor  int
}

// New returns an empty State.
func New() *State {
	return &State{}
}

// Load replaces the entries. A non-empty catalog positions the cursor at
// the first entry; an empty one leaves the state empty.
func (s *State) Load(entries []catalog.Entry) {
	s.entries = entries
	s.cursor = 0
}

// Empty reports whether there are no entries.
func (s *State) Empty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries.
func (s *State) Len() int {
	return len(s.entries)
}

// Index returns the current cursor position. Meaningless when Empty.
func (s *State) Index() int {
	return s.cursor
}

// Current returns the entry under the cursor. The second return is false
// when the state is empty.
func (s *State) Current() (catalog.Entry, bool) {
	if s.Empty() {
		return catalog.Entry{}, false
	}
	return s.entries[s.cursor], true
}

// Entries returns the entries in order. Callers must not mutate the
// returned slice.
func (s *State) Entries() []catalog.Entry {
	return s.entries
}

// Next advances the cursor by one, clamping at the last entry. It reports
// whether the cursor moved.
func (s *State) Next() bool {
	if s.Empty() || s.cursor >= len(s.entries)-1 {
		return false
	}
	s.cursor++
	return true
}

// Previous moves the cursor back by one, clamping at the first entry. It
// reports whether the cursor moved.
func (s *State) Previous() bool {
	if s.Empty() || s.cursor <= 0 {
		return false
	}
	s.cursor--
	return true
}

// RemoveCurrent drops the entry under the cursor after the caller has
// deleted the file itself. The cursor keeps its index so the next entry
// slides into view, except when the removed entry was the last one, where
// the cursor steps back. Removing the only entry empties the state.
func (s *State) RemoveCurrent() {
	if s.Empty() {
		return
	}
	s.entries = append(s.entries[:s.cursor], s.entries[s.cursor+1:]...)
	if s.cursor >= len(s.entries) && len(s.entries) > 0 {
		s.cursor = len(s.entries) - 1
	}
	if len(s.entries) == 0 {
		s.cursor = 0
	}
}

// PositionAt moves the cursor to the entry with the given name. When the
// name is absent the cursor clamps to min(fallback, len-1). Used after a
// re-scan so the view stays near where the user was.
func (s *State) PositionAt(name string, fallback int) {
	if s.Empty() {
		s.cursor = 0
		return
	}
	for i, e := range s.entries {
		if e.Name == name {
			s.cursor = i
			return
		}
	}
	if fallback >= len(s.entries) {
		fallback = len(s.entries) - 1
	}
	if fallback < 0 {
		fallback = 0
	}
	s.cursor = fallback
}
