package command

import (
	"fmt"
	"strings"

	"clipkeep/internal/history"
	"clipkeep/internal/platform"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

const defaultListLength = 10

func (d *Dispatcher) paste(c call) string {
	i, ok := c.index(0)
	if !ok {
		return usage("paste N")
	}
	if err := d.session.Paste(i); err != nil {
		return d.fail(err)
	}
	return fmt.Sprintf("✅ Pasted item %d", i)
}

func (d *Dispatcher) appendTo(c call) string {
	i, ok := c.index(0)
	if !ok {
		return usage("append N")
	}
	if err := d.session.Append(i); err != nil {
		return d.fail(err)
	}
	return fmt.Sprintf("✅ Appended item %d", i)
}

func (d *Dispatcher) copy(c call) string {
	i, ok := c.index(0)
	if !ok {
		return usage("copy N")
	}
	if err := d.session.Copy(i); err != nil {
		return d.fail(err)
	}
	return fmt.Sprintf("✅ Copied item %d", i)
}

func (d *Dispatcher) flag(f history.Flag, v bool) handler {
	verb := f.String()
	past := map[history.Flag]string{history.FlagPinned: "Pinned", history.FlagFavorite: "Favorited"}[f]
	if !v {
		verb = "un" + verb
		past = "Un" + strings.ToLower(past)
	}
	return func(c call) string {
		i, ok := c.index(0)
		if !ok {
			return usage(verb + " N")
		}
		if err := d.session.SetFlag(i, f, v); err != nil {
			return d.fail(err)
		}
		return fmt.Sprintf("✅ %s item %d", past, i)
	}
}

func (d *Dispatcher) lock(c call) string {
	i, ok := c.index(0)
	if !ok {
		return usage("lock N")
	}
	locked, err := d.session.Toggle(i, history.FlagLocked)
	if err != nil {
		return d.fail(err)
	}
	if locked {
		return fmt.Sprintf("🔒 Locked item %d", i)
	}
	return fmt.Sprintf("🔓 Unlocked item %d", i)
}

func (d *Dispatcher) delete(c call) string {
	i, ok := c.index(0)
	if !ok {
		return usage("delete N")
	}
	if err := d.session.Delete(i); err != nil {
		return d.fail(err)
	}
	return fmt.Sprintf("✅ Deleted item %d", i)
}

// clear needs --force. --all also drops pinned entries; locked entries are
// always kept.
func (d *Dispatcher) clear(c call) string {
	var force, all bool
	for _, a := range c.args {
		switch a {
		case "--force":
			force = true
		case "--all":
			all = true
		}
	}
	if !force {
		return "⚠️ Clear all non-pinned entries? Type 'clear --force' to confirm."
	}
	n := d.session.Clear(!all)
	if all {
		return fmt.Sprintf("✅ Cleared %d entries", n)
	}
	return fmt.Sprintf("✅ Cleared %d non-pinned entries", n)
}

func (d *Dispatcher) undo(call) string {
	e, err := d.session.Undo()
	if err != nil {
		return "❌ Nothing to undo"
	}
	return fmt.Sprintf("↩️ Restored %q", e.Preview)
}

func (d *Dispatcher) list(c call) string {
	n := defaultListLength
	if len(c.args) > 0 {
		v, ok := c.index(0)
		if !ok || v <= 0 {
			return usage("list [N]")
		}
		n = v
	}
	entries := d.session.List(history.Filter{})
	if len(entries) == 0 {
		return "📋 History is empty"
	}
	now := d.session.Now()
	var b strings.Builder
	fmt.Fprintf(&b, "📋 %d of %d entries:", min(n, len(entries)), len(entries))
	for i, e := range entries {
		if i >= n {
			break
		}
		fmt.Fprintf(&b, "\n%3d %s %s  (%s)", i, markers(e), oneLine(e.Preview), humanize.RelTime(e.CreatedAt, now, "ago", "from now"))
	}
	return b.String()
}

func markers(e history.Entry) string {
	m := []rune("   ")
	if e.Pinned {
		m[0] = '*'
	}
	if e.Favorite {
		m[1] = '+'
	}
	if e.Locked {
		m[2] = '#'
	}
	return string(m)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (d *Dispatcher) preview(c call) string {
	i, ok := c.index(0)
	if !ok {
		return usage("preview N")
	}
	e, err := d.session.Get(i)
	if err != nil {
		return d.fail(err)
	}
	body := e.Content
	if !e.IsText() {
		body = fmt.Sprintf("[Image, %s]", humanize.Bytes(uint64(e.SizeBytes)))
	}
	return fmt.Sprintf("📄 Preview of item %d:\n%s", i, body)
}

func (d *Dispatcher) open(c call) string {
	i, ok := c.index(0)
	if !ok {
		return usage("open N")
	}
	e, err := d.session.Get(i)
	if err != nil {
		return d.fail(err)
	}
	u, ok := platform.ParseURL(e.Content)
	if !ok {
		return "❌ Not a valid URL"
	}
	if d.opener == nil {
		return "❌ Opening URLs is not supported here"
	}
	if err := d.opener.Open(u); err != nil {
		d.logger.Warn("open url", zap.String("url", u.String()), zap.Error(err))
		return "❌ Could not open URL: " + err.Error()
	}
	return "✅ Opened URL"
}

func (d *Dispatcher) edit(c call) string {
	if _, ok := c.index(0); !ok {
		return usage("edit N")
	}
	return "⚠️ edit is not implemented yet"
}
