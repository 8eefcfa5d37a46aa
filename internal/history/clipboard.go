package history

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Paste puts entry i on the clipboard and asks the platform to paste it.
// It returns once the clipboard is written; the paste keystroke happens
// later and its outcome is not observed.
func (s *Session) Paste(i int) error {
	if err := s.copyOut("paste", i); err != nil {
		return err
	}
	s.triggerPaste()
	return nil
}

// Copy puts entry i on the clipboard without pasting.
func (s *Session) Copy(i int) error {
	return s.copyOut("copy", i)
}

func (s *Session) copyOut(verb string, i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.at(i)
	if err != nil {
		return err
	}
	action := fmt.Sprintf("%s %d", verb, i)
	if e.Locked {
		s.logAction(action, e.ID, "locked")
		return ErrLocked
	}
	if err := s.write(*e); err != nil {
		s.logAction(action, e.ID, "clipboard write failed")
		return err
	}
	s.touch(e.ID)
	s.logAction(action, e.ID, "ok")
	return nil
}

// Append adds entry i to the end of whatever text is on the clipboard,
// separated by a space.
func (s *Session) Append(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.at(i)
	if err != nil {
		return err
	}
	action := fmt.Sprintf("append %d", i)
	if e.Locked {
		s.logAction(action, e.ID, "locked")
		return ErrLocked
	}
	if !e.IsText() {
		return ErrNotText
	}

	current, err := s.port.ReadText()
	if err != nil {
		s.logger.Warn("read clipboard for append", zap.Error(err))
		current = ""
	}
	next := e.Content
	if current != "" {
		next = current + " " + e.Content
	}
	if err := s.port.Write(next); err != nil {
		s.logger.Warn("write clipboard", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	s.touch(e.ID)
	s.logAction(action, e.ID, "ok")
	return nil
}

func (s *Session) write(e Entry) error {
	var err error
	if e.Kind == KindImage {
		err = s.port.WriteImage(e.Image)
	} else {
		err = s.port.Write(e.Content)
	}
	if err != nil {
		s.logger.Warn("write clipboard", zap.String("id", e.ID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	return nil
}

func (s *Session) writeText(text string) error {
	if err := s.port.Write(text); err != nil {
		s.logger.Warn("write clipboard", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	return nil
}

// triggerPaste fires the paste executor after a short delay so the target
// application sees the new clipboard contents. Never waited on.
func (s *Session) triggerPaste() {
	if s.paster == nil {
		return
	}
	paster, logger := s.paster, s.logger
	time.AfterFunc(s.pasteDelay, func() {
		if !paster.TriggerPaste() {
			logger.Debug("paste executor reported failure")
		}
	})
}
