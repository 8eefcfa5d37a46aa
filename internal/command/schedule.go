package command

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var errBadTime = errors.New("unrecognised time")

// parseWhen reads the TIME argument of reminder and schedule. It accepts a
// duration from now ("90m"), a clock time today or tomorrow ("15:04"), or an
// absolute local or RFC 3339 timestamp.
func parseWhen(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		if d <= 0 {
			return time.Time{}, fmt.Errorf("%w: %q is not in the future", errBadTime, s)
		}
		return now.Add(d), nil
	}
	if t, err := time.ParseInLocation("15:04", s, now.Location()); err == nil {
		at := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
		if !at.After(now) {
			at = at.AddDate(0, 0, 1)
		}
		return at, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errBadTime, s)
}

// splitAt separates "... at TIME" into the part before "at" and the time.
func splitAt(tokens []string) ([]string, string, bool) {
	for i := len(tokens) - 1; i >= 0; i-- {
		if strings.EqualFold(tokens[i], "at") && i+1 < len(tokens) {
			return tokens[:i], strings.Join(tokens[i+1:], " "), true
		}
	}
	return nil, "", false
}

// reminder N "message" at TIME | reminder list
func (d *Dispatcher) reminder(c call) string {
	const form = `reminder N "message" at TIME`
	if strings.EqualFold(c.arg(0), "list") {
		rs := d.session.Reminders()
		if len(rs) == 0 {
			return "⏰ No reminders"
		}
		lines := make([]string, len(rs))
		for i, r := range rs {
			lines[i] = fmt.Sprintf("• %s  %s", r.At.Format("2006-01-02 15:04"), r.Message)
		}
		return "⏰ Reminders:\n" + strings.Join(lines, "\n")
	}

	tokens := quotedFields(c.rest)
	head, when, ok := splitAt(tokens)
	if !ok || len(head) < 2 {
		return usage(form)
	}
	i, ok := call{args: head}.index(0)
	if !ok {
		return usage(form)
	}
	at, err := parseWhen(when, d.session.Now())
	if err != nil {
		return "❌ " + err.Error()
	}
	message := strings.Join(head[1:], " ")
	if _, err := d.session.AddReminder(i, message, at); err != nil {
		return d.fail(err)
	}
	return fmt.Sprintf("⏰ Reminder set for item %d: %s", i, message)
}

// schedule N at TIME | schedule list
func (d *Dispatcher) schedule(c call) string {
	const form = "schedule N at TIME"
	if strings.EqualFold(c.arg(0), "list") {
		ps := d.session.Scheduled()
		if len(ps) == 0 {
			return "⏰ No scheduled pastes"
		}
		lines := make([]string, len(ps))
		for i, p := range ps {
			lines[i] = fmt.Sprintf("• %s  entry %s", p.At.Format("2006-01-02 15:04"), p.EntryID)
		}
		return "⏰ Scheduled pastes:\n" + strings.Join(lines, "\n")
	}

	head, when, ok := splitAt(c.args)
	if !ok || len(head) != 1 {
		return usage(form)
	}
	i, ok := c.index(0)
	if !ok {
		return usage(form)
	}
	at, err := parseWhen(when, d.session.Now())
	if err != nil {
		return "❌ " + err.Error()
	}
	p, err := d.session.SchedulePaste(i, at)
	if err != nil {
		return d.fail(err)
	}
	return fmt.Sprintf("⏰ Scheduled paste for item %d at %s", i, p.At.Format("2006-01-02 15:04"))
}
