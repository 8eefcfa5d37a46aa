package history

import (
	"bytes"

	"clipkeep/internal/classify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Capture records new clipboard text. Auto-rules run first, then the result
// is tagged and inserted at the head. Content equal to the current head,
// before or after the rules, is dropped and ok is false.
func (s *Session) Capture(content string, kind Kind) (id string, ok bool) {
	if content == "" {
		return "", false
	}
	if kind == KindImage {
		kind = KindText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	processed := s.rules.Apply(content)
	if len(s.entries) > 0 {
		head := s.entries[0]
		if head.IsText() && (head.Content == content || head.Content == processed) {
			return "", false
		}
	}

	e := Entry{
		ID:        uuid.NewString(),
		Kind:      kind,
		CreatedAt: s.now(),
	}
	e.setContent(processed)
	e.addTags(classify.Classify(processed))

	s.insert(e)

	st := s.statsFor(e.ID)
	st.ExtractedLinks = classify.ExtractLinks(processed)
	st.Language = classify.DetectLanguage(processed)

	s.saveEntries()
	s.saveStats()
	s.logger.Debug("captured entry",
		zap.String("id", e.ID),
		zap.String("kind", string(kind)),
		zap.Int("bytes", e.SizeBytes),
		zap.Strings("tags", e.Tags))
	s.events.emit(Event{Type: EventCaptured, EntryID: e.ID})
	return e.ID, true
}

// CaptureImage records an image payload. Images skip auto-rules and tagging.
func (s *Session) CaptureImage(data []byte) (id string, ok bool) {
	if len(data) == 0 {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) > 0 {
		head := s.entries[0]
		if head.Kind == KindImage && bytes.Equal(head.Image, data) {
			return "", false
		}
	}

	e := Entry{
		ID:        uuid.NewString(),
		Kind:      KindImage,
		Image:     bytes.Clone(data),
		CreatedAt: s.now(),
		Preview:   imagePreview,
		SizeBytes: len(data),
	}
	s.insert(e)
	s.saveEntries()
	s.logger.Debug("captured image", zap.String("id", e.ID), zap.Int("bytes", e.SizeBytes))
	s.events.emit(Event{Type: EventCaptured, EntryID: e.ID})
	return e.ID, true
}

func (s *Session) insert(e Entry) {
	s.entries = append(s.entries, Entry{})
	copy(s.entries[1:], s.entries)
	s.entries[0] = e
	if n := s.evict(); n > 0 {
		s.logger.Debug("evicted entries", zap.Int("count", n))
	}
}

// evict trims the history to the cap. Entries that are neither pinned nor
// locked go first, oldest first; protected entries are only dropped when
// nothing else is left. The head is never chosen while anything older exists.
func (s *Session) evict() int {
	removed := 0
	for len(s.entries) > s.max {
		victim := -1
		for i := len(s.entries) - 1; i >= 1; i-- {
			if !s.entries[i].Pinned && !s.entries[i].Locked {
				victim = i
				break
			}
		}
		if victim < 0 {
			victim = len(s.entries) - 1
		}
		s.entries = append(s.entries[:victim], s.entries[victim+1:]...)
		removed++
	}
	return removed
}
