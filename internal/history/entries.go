package history

import (
	"fmt"
	"regexp"
	"strings"

	"clipkeep/internal/transform"
)

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Session) Get(i int) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.at(i)
	if err != nil {
		return Entry{}, err
	}
	return e.clone(), nil
}

// List returns the entries matching f, newest first.
func (s *Session) List(f Filter) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for _, e := range s.entries {
		if f.match(e) {
			out = append(out, e.clone())
		}
	}
	return out
}

// Position is an entry together with its index in the full history.
type Position struct {
	Index int
	Entry Entry
}

// Find is List with each match's history index, the index every
// index-taking operation expects.
func (s *Session) Find(f Filter) []Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Position
	for i, e := range s.entries {
		if f.match(e) {
			out = append(out, Position{Index: i, Entry: e.clone()})
		}
	}
	return out
}

// Toggle flips a flag and returns its new value. Flags stay editable on
// locked entries.
func (s *Session) Toggle(i int, f Flag) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.at(i)
	if err != nil {
		return false, err
	}
	v := !flagValue(e, f)
	s.setFlag(e, f, v)
	s.logAction(fmt.Sprintf("%s %d", f, i), e.ID, fmt.Sprintf("%s=%t", f, v))
	return v, nil
}

func (s *Session) SetFlag(i int, f Flag, v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.at(i)
	if err != nil {
		return err
	}
	s.setFlag(e, f, v)
	s.logAction(fmt.Sprintf("%s %d", f, i), e.ID, fmt.Sprintf("%s=%t", f, v))
	return nil
}

func flagValue(e *Entry, f Flag) bool {
	switch f {
	case FlagPinned:
		return e.Pinned
	case FlagFavorite:
		return e.Favorite
	case FlagLocked:
		return e.Locked
	}
	return false
}

func (s *Session) setFlag(e *Entry, f Flag, v bool) {
	switch f {
	case FlagPinned:
		e.Pinned = v
	case FlagFavorite:
		e.Favorite = v
	case FlagLocked:
		e.Locked = v
	}
	s.saveEntries()
	s.events.emit(Event{Type: EventUpdated, EntryID: e.ID})
}

// Delete removes the entry at i. Locked entries are refused. The removed
// entry can be restored with Undo.
func (s *Session) Delete(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.at(i)
	if err != nil {
		return err
	}
	if e.Locked {
		s.logAction(fmt.Sprintf("delete %d", i), e.ID, "locked")
		return ErrLocked
	}

	removed := *e
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.deleted = append(s.deleted, deletedEntry{entry: removed, index: i})
	if len(s.deleted) > undoDepth {
		s.deleted = s.deleted[1:]
	}
	s.saveEntries()
	s.logAction(fmt.Sprintf("delete %d", i), removed.ID, "deleted")
	s.events.emit(Event{Type: EventRemoved, EntryID: removed.ID})
	return nil
}

// Undo puts the most recently deleted entry back where it was.
func (s *Session) Undo() (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.deleted) == 0 {
		return Entry{}, ErrNothingToUndo
	}
	d := s.deleted[len(s.deleted)-1]
	s.deleted = s.deleted[:len(s.deleted)-1]

	i := min(d.index, len(s.entries))
	s.entries = append(s.entries, Entry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = d.entry
	s.evict()

	s.saveEntries()
	s.logAction("undo", d.entry.ID, "restored")
	s.events.emit(Event{Type: EventCaptured, EntryID: d.entry.ID})
	return d.entry.clone(), nil
}

// Transform rewrites the content of entry i. Locked entries and images are
// refused.
func (s *Session) Transform(i int, kind transform.Kind) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.at(i)
	if err != nil {
		return Entry{}, err
	}
	action := fmt.Sprintf("transform %d", i)
	if e.Locked {
		s.logAction(action, e.ID, "locked")
		return Entry{}, ErrLocked
	}
	if !e.IsText() {
		return Entry{}, ErrNotText
	}

	e.setContent(transform.Apply(e.Content, kind))
	s.saveEntries()
	s.logAction(action, e.ID, string(kind))
	s.events.emit(Event{Type: EventUpdated, EntryID: e.ID})
	return e.clone(), nil
}

// Search understands three query forms: "re:<pattern>" matches a regular
// expression against content, a double-quoted query matches the literal
// text between the quotes, and anything else is a case-insensitive
// substring match against content or preview.
func (s *Session) Search(query string) ([]Entry, error) {
	var match func(e Entry) bool

	switch {
	case strings.HasPrefix(query, "re:"):
		re, err := regexp.Compile(strings.TrimPrefix(query, "re:"))
		if err != nil {
			return nil, fmt.Errorf("search pattern: %w", err)
		}
		match = func(e Entry) bool { return re.MatchString(e.Content) }
	case len(query) >= 2 && strings.HasPrefix(query, `"`) && strings.HasSuffix(query, `"`):
		exact := query[1 : len(query)-1]
		match = func(e Entry) bool { return strings.Contains(e.Content, exact) }
	default:
		q := strings.ToLower(query)
		match = func(e Entry) bool {
			return strings.Contains(strings.ToLower(e.Content), q) ||
				strings.Contains(strings.ToLower(e.Preview), q)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for _, e := range s.entries {
		if match(e) {
			out = append(out, e.clone())
		}
	}
	return out, nil
}

// Clear drops entries from the history. Locked entries always survive;
// pinned ones survive when keepPinned is set.
func (s *Session) Clear(keepPinned bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.entries[:0]
	removed := 0
	for _, e := range s.entries {
		if e.Locked || (keepPinned && e.Pinned) {
			kept = append(kept, e)
			continue
		}
		removed++
	}
	clear(s.entries[len(kept):])
	s.entries = kept
	s.saveEntries()
	s.logAction("clear", "", fmt.Sprintf("removed %d", removed))
	s.events.emit(Event{Type: EventCleared})
	return removed
}
