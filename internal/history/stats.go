package history

import (
	"slices"

	"clipkeep/internal/classify"
)

// Stats returns the usage record for entry i, creating an empty one the
// first time an entry without a record is looked at.
func (s *Session) Stats(i int) (Entry, EntryStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.at(i)
	if err != nil {
		return Entry{}, EntryStats{}, err
	}
	if _, ok := s.stats[e.ID]; !ok {
		s.statsFor(e.ID)
		s.saveStats()
	}
	st := *s.stats[e.ID]
	st.ExtractedLinks = slices.Clone(st.ExtractedLinks)
	return e.clone(), st, nil
}

// Summarize computes a summary for entry i and keeps it in the entry stats.
func (s *Session) Summarize(i int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.at(i)
	if err != nil {
		return "", err
	}
	if !e.IsText() {
		return "", ErrNotText
	}
	summary := classify.Summarize(e.Content)
	s.statsFor(e.ID).Summary = &summary
	s.saveStats()
	return summary, nil
}

func (s *Session) DetectLanguage(i int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.at(i)
	if err != nil {
		return "", err
	}
	if !e.IsText() {
		return classify.UnknownLanguage, nil
	}
	lang := classify.DetectLanguage(e.Content)
	s.statsFor(e.ID).Language = lang
	s.saveStats()
	return lang, nil
}

func (s *Session) ExtractLinks(i int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.at(i)
	if err != nil {
		return nil, err
	}
	links := classify.ExtractLinks(e.Content)
	s.statsFor(e.ID).ExtractedLinks = links
	s.saveStats()
	return slices.Clone(links), nil
}

// Retag runs the classifier over entry i again and merges any new tags.
// It returns the full tag set.
func (s *Session) Retag(i int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.at(i)
	if err != nil {
		return nil, err
	}
	if e.IsText() && len(e.addTags(classify.Classify(e.Content))) > 0 {
		s.saveEntries()
		s.events.emit(Event{Type: EventUpdated, EntryID: e.ID})
	}
	return slices.Clone(e.Tags), nil
}

// RetagAll retags every text entry and returns how many gained tags.
func (s *Session) RetagAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := 0
	for i := range s.entries {
		e := &s.entries[i]
		if e.IsText() && len(e.addTags(classify.Classify(e.Content))) > 0 {
			changed++
		}
	}
	if changed > 0 {
		s.saveEntries()
	}
	return changed
}
