package history

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"clipkeep/internal/rules"

	"github.com/google/uuid"
)

// SaveSnippet stores the text of entry i under name, replacing any snippet
// with the same name.
func (s *Session) SaveSnippet(name string, i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.at(i)
	if err != nil {
		return err
	}
	if !e.IsText() {
		return ErrNotText
	}
	s.snippets[name] = e.Content
	s.saveSnippets()
	s.touch(e.ID)
	s.logAction("snippet save "+name, e.ID, "saved")
	return nil
}

func (s *Session) Snippet(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.snippets[name]
	if !ok {
		return "", fmt.Errorf("snippet %q: %w", name, ErrNotFound)
	}
	return body, nil
}

// PasteSnippet copies the snippet to the clipboard and triggers a paste.
func (s *Session) PasteSnippet(name string) error {
	s.mu.Lock()
	body, ok := s.snippets[name]
	if !ok {
		s.logAction("snippet paste "+name, "", "not found")
		s.mu.Unlock()
		return fmt.Errorf("snippet %q: %w", name, ErrNotFound)
	}
	err := s.writeText(body)
	if err == nil {
		s.logAction("snippet paste "+name, "", "ok")
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.triggerPaste()
	return nil
}

func (s *Session) DeleteSnippet(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snippets[name]; !ok {
		return fmt.Errorf("snippet %q: %w", name, ErrNotFound)
	}
	delete(s.snippets, name)
	s.saveSnippets()
	s.logAction("snippet delete "+name, "", "deleted")
	return nil
}

func (s *Session) SnippetNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.snippets))
}

// ImportSnippets merges snippets into the collection and returns how many
// were added or replaced.
func (s *Session) ImportSnippets(in map[string]string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	maps.Copy(s.snippets, in)
	s.saveSnippets()
	s.logAction("import", "", fmt.Sprintf("%d snippets", len(in)))
	return len(in)
}

// InsertTemplate copies a template to the clipboard. Templates are never
// modified from the command line.
func (s *Session) InsertTemplate(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.templates[name]
	if !ok {
		s.logAction("template insert "+name, "", "not found")
		return fmt.Errorf("template %q: %w", name, ErrNotFound)
	}
	if err := s.writeText(body); err != nil {
		return err
	}
	s.logAction("template insert "+name, "", "inserted")
	return nil
}

func (s *Session) Template(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.templates[name]
	if !ok {
		return "", fmt.Errorf("template %q: %w", name, ErrNotFound)
	}
	return body, nil
}

func (s *Session) TemplateNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.templates))
}

// SetTemplates merges templates from configuration into the stored set.
func (s *Session) SetTemplates(in map[string]string) {
	if len(in) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	maps.Copy(s.templates, in)
	s.saveTemplates()
}

func (s *Session) AddRule(name, pattern string, action rules.Action) (rules.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.rules.Add(name, pattern, action, s.now())
	if err != nil {
		return rules.Rule{}, err
	}
	s.saveRules()
	s.logAction("auto-copy add "+name, "", "added")
	return r, nil
}

func (s *Session) RemoveRule(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rules.Remove(name); err != nil {
		return err
	}
	s.saveRules()
	return nil
}

func (s *Session) EnableRule(name string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rules.SetEnabled(name, enabled); err != nil {
		return err
	}
	s.saveRules()
	return nil
}

func (s *Session) Rules() []rules.Rule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules.Rules()
}

func (s *Session) AddReminder(i int, message string, at time.Time) (Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.at(i)
	if err != nil {
		return Reminder{}, err
	}
	r := Reminder{ID: uuid.NewString(), EntryID: e.ID, Message: message, At: at}
	s.reminders = append(s.reminders, r)
	s.saveReminders()
	s.logAction(fmt.Sprintf("reminder %d", i), e.ID, message)
	return r, nil
}

func (s *Session) Reminders() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.reminders)
}

func (s *Session) SchedulePaste(i int, at time.Time) (ScheduledPaste, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.at(i)
	if err != nil {
		return ScheduledPaste{}, err
	}
	p := ScheduledPaste{ID: uuid.NewString(), EntryID: e.ID, At: at}
	s.scheduled = append(s.scheduled, p)
	s.saveScheduled()
	s.logAction(fmt.Sprintf("schedule %d", i), e.ID, at.Format(time.RFC3339))
	return p, nil
}

func (s *Session) Scheduled() []ScheduledPaste {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.scheduled)
}

// Now is the session clock.
func (s *Session) Now() time.Time {
	return s.now()
}
