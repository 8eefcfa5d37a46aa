// Package command turns a line of text into an operation on the clipboard
// history and answers with a short status string.
package command

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"clipkeep/internal/history"
	"clipkeep/internal/platform"
	"clipkeep/internal/rules"
	"clipkeep/internal/transform"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"
)

// call is one parsed command line.
type call struct {
	verb string
	args []string
	// rest is the raw text after the verb.
	rest string
}

func (c call) index(pos int) (int, bool) {
	if pos >= len(c.args) {
		return 0, false
	}
	n, err := strconv.Atoi(c.args[pos])
	return n, err == nil
}

func (c call) arg(pos int) string {
	if pos >= len(c.args) {
		return ""
	}
	return c.args[pos]
}

type handler func(c call) string

type Dispatcher struct {
	session *history.Session
	opener  platform.Opener
	logger  *zap.Logger

	verbs map[string]handler
	names []string
}

func New(session *history.Session, opener platform.Opener, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{session: session, opener: opener, logger: logger}
	d.verbs = map[string]handler{
		"paste":         d.paste,
		"append":        d.appendTo,
		"copy":          d.copy,
		"pin":           d.flag(history.FlagPinned, true),
		"unpin":         d.flag(history.FlagPinned, false),
		"favorite":      d.flag(history.FlagFavorite, true),
		"unfavorite":    d.flag(history.FlagFavorite, false),
		"lock":          d.lock,
		"delete":        d.delete,
		"clear":         d.clear,
		"undo":          d.undo,
		"list":          d.list,
		"preview":       d.preview,
		"open":          d.open,
		"edit":          d.edit,
		"trim":          d.transform("Trimmed", transform.Trim),
		"uppercase":     d.transform("Uppercased", transform.Uppercase),
		"lowercase":     d.transform("Lowercased", transform.Lowercase),
		"titlecase":     d.transform("Titlecased", transform.Titlecase),
		"compress":      d.transform("Compressed", transform.Compress),
		"format":        d.format,
		"convert":       d.convert,
		"snippet":       d.snippet,
		"template":      d.template,
		"search":        d.search,
		"log":           d.log,
		"ocr":           d.ocr,
		"auto-tag":      d.autoTag,
		"summarize":     d.summarize,
		"translate":     d.translate,
		"detect-lang":   d.detectLang,
		"shorten-url":   d.shortenURL,
		"extract-links": d.extractLinks,
		"auto-copy":     d.autoCopy,
		"stats":         d.stats,
		"reminder":      d.reminder,
		"schedule":      d.schedule,
		"export":        d.export,
		"import":        d.importSnippets,
		"help":          d.help,
	}
	for _, name := range []string{
		"macro", "shortcut", "group", "merge", "sync", "expire",
		"auto-paste", "trigger", "rule", "send", "webhook", "ai-format",
	} {
		d.verbs[name] = notImplemented(name)
	}
	for name := range d.verbs {
		d.names = append(d.names, name)
	}
	slices.Sort(d.names)
	return d
}

// Verbs lists every command the dispatcher understands.
func (d *Dispatcher) Verbs() []string {
	return slices.Clone(d.names)
}

// Execute runs one command line. It never panics; every outcome, including
// malformed input, comes back as a status string. Blank input yields "".
func (d *Dispatcher) Execute(line string) (out string) {
	trimmed := strings.TrimSpace(line)
	parts := strings.Fields(trimmed)
	if len(parts) == 0 {
		return ""
	}
	c := call{
		verb: strings.ToLower(parts[0]),
		args: parts[1:],
		rest: strings.TrimSpace(trimmed[len(parts[0]):]),
	}

	h, ok := d.verbs[c.verb]
	if !ok {
		return d.unknown(parts[0])
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("command panicked", zap.String("verb", c.verb), zap.Any("panic", r))
			out = "❌ Internal error while running " + c.verb
		}
	}()
	out = h(c)
	d.logger.Debug("command executed", zap.String("verb", c.verb), zap.Strings("args", c.args))
	return out
}

func (d *Dispatcher) unknown(verb string) string {
	msg := fmt.Sprintf("❌ Unknown command: %s. Type 'help' for available commands.", verb)
	if matches := fuzzy.Find(strings.ToLower(verb), d.names); len(matches) > 0 {
		msg += fmt.Sprintf(" Did you mean '%s'?", matches[0].Str)
	}
	return msg
}

// fail renders an error from the session as a status line.
func (d *Dispatcher) fail(err error) string {
	switch {
	case errors.Is(err, history.ErrInvalidIndex):
		return "❌ Invalid index"
	case errors.Is(err, history.ErrLocked):
		return "🔒 Entry is locked"
	case errors.Is(err, history.ErrNotText):
		return "❌ Entry has no text content"
	case errors.Is(err, history.ErrClipboard):
		d.logger.Warn("clipboard operation failed", zap.Error(err))
		return "❌ Clipboard unavailable"
	case errors.Is(err, rules.ErrDuplicate), errors.Is(err, rules.ErrBadPattern):
		return "❌ Rule rejected: " + err.Error()
	default:
		return "❌ " + err.Error()
	}
}

func usage(form string) string {
	return "❌ Usage: " + form
}

func notImplemented(name string) handler {
	return func(call) string {
		return fmt.Sprintf("⚠️ %s is not implemented yet", name)
	}
}

// quotedFields splits on whitespace but keeps double-quoted runs together,
// without the quotes.
func quotedFields(s string) []string {
	var (
		out     []string
		b       strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case unicode.IsSpace(r) && !quoted:
			if started {
				out = append(out, b.String())
				b.Reset()
				started = false
			}
		default:
			b.WriteRune(r)
			started = true
		}
	}
	if started {
		out = append(out, b.String())
	}
	return out
}
