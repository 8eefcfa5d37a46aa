package command

import (
	"fmt"
	"strings"

	"clipkeep/internal/rules"
)

const (
	defaultLogLength    = 10
	maxSearchResultRows = 10
)

// snippet save NAME [from] N | list | paste NAME | delete NAME
func (d *Dispatcher) snippet(c call) string {
	switch strings.ToLower(c.arg(0)) {
	case "save":
		name := c.arg(1)
		pos := 2
		if strings.EqualFold(c.arg(2), "from") {
			pos = 3
		}
		i, ok := c.index(pos)
		if name == "" || !ok {
			return usage("snippet save NAME from N")
		}
		if err := d.session.SaveSnippet(name, i); err != nil {
			return d.fail(err)
		}
		return fmt.Sprintf("✅ Saved snippet '%s'", name)
	case "list":
		names := d.session.SnippetNames()
		if len(names) == 0 {
			return "📋 No snippets saved"
		}
		return "📋 Snippets: " + strings.Join(names, ", ")
	case "paste":
		name := c.arg(1)
		if name == "" {
			return usage("snippet paste NAME")
		}
		if err := d.session.PasteSnippet(name); err != nil {
			return d.fail(err)
		}
		return fmt.Sprintf("✅ Pasted snippet '%s'", name)
	case "delete":
		name := c.arg(1)
		if name == "" {
			return usage("snippet delete NAME")
		}
		if err := d.session.DeleteSnippet(name); err != nil {
			return d.fail(err)
		}
		return fmt.Sprintf("✅ Deleted snippet '%s'", name)
	case "":
		return usage("snippet save|list|paste|delete")
	default:
		return "❌ Unknown snippet action: " + c.arg(0)
	}
}

// template insert NAME | list
func (d *Dispatcher) template(c call) string {
	switch strings.ToLower(c.arg(0)) {
	case "insert":
		name := c.arg(1)
		if name == "" {
			return usage("template insert NAME")
		}
		if err := d.session.InsertTemplate(name); err != nil {
			return d.fail(err)
		}
		return fmt.Sprintf("✅ Inserted template '%s'", name)
	case "list":
		names := d.session.TemplateNames()
		if len(names) == 0 {
			return "📋 No templates configured"
		}
		return "📋 Templates: " + strings.Join(names, ", ")
	default:
		return usage("template insert NAME")
	}
}

func (d *Dispatcher) search(c call) string {
	if c.rest == "" {
		return usage("search QUERY")
	}
	results, err := d.session.Search(c.rest)
	if err != nil {
		return "❌ " + err.Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Found %d items matching '%s'", len(results), c.rest)
	for i, e := range results {
		if i == maxSearchResultRows {
			fmt.Fprintf(&b, "\n  … %d more", len(results)-i)
			break
		}
		fmt.Fprintf(&b, "\n  • %s", oneLine(e.Preview))
	}
	return b.String()
}

// log show [N]
func (d *Dispatcher) log(c call) string {
	if !strings.EqualFold(c.arg(0), "show") {
		if c.arg(0) == "" {
			return usage("log show N")
		}
		return "❌ Unknown log action"
	}
	n := defaultLogLength
	if len(c.args) > 1 {
		if v, ok := c.index(1); ok {
			n = v
		}
	}
	actions := d.session.Log(n)
	if len(actions) == 0 {
		return "📋 No recent actions"
	}
	lines := make([]string, len(actions))
	for i, a := range actions {
		lines[i] = fmt.Sprintf("%s - %s: %s", a.Timestamp.Format("2006-01-02 15:04:05"), a.Action, a.Result)
	}
	return "📋 Recent actions:\n" + strings.Join(lines, "\n")
}

// auto-copy [add NAME PATTERN ACTION | remove NAME | enable NAME | disable NAME]
func (d *Dispatcher) autoCopy(c call) string {
	const form = "auto-copy [add NAME PATTERN ACTION | remove NAME | enable NAME | disable NAME]"
	if len(c.args) == 0 {
		rs := d.session.Rules()
		if len(rs) == 0 {
			return "📋 No auto-copy rules"
		}
		lines := make([]string, len(rs))
		for i, r := range rs {
			state := ""
			if !r.Enabled {
				state = " (disabled)"
			}
			lines[i] = fmt.Sprintf("• %s: %s → %s%s", r.Name, r.Pattern, r.Action, state)
		}
		return "📋 Auto-copy rules:\n" + strings.Join(lines, "\n")
	}

	name := c.arg(1)
	switch strings.ToLower(c.arg(0)) {
	case "add":
		if len(c.args) < 4 {
			return usage(form)
		}
		if _, err := d.session.AddRule(name, c.args[2], rules.Action(strings.ToLower(c.args[3]))); err != nil {
			return d.fail(err)
		}
		return "✅ Added auto-copy rule: " + name
	case "remove":
		if name == "" {
			return usage(form)
		}
		if err := d.session.RemoveRule(name); err != nil {
			return d.fail(err)
		}
		return "✅ Removed auto-copy rule: " + name
	case "enable", "disable":
		if name == "" {
			return usage(form)
		}
		enable := strings.EqualFold(c.arg(0), "enable")
		if err := d.session.EnableRule(name, enable); err != nil {
			return d.fail(err)
		}
		if enable {
			return "✅ Enabled auto-copy rule: " + name
		}
		return "✅ Disabled auto-copy rule: " + name
	default:
		return usage(form)
	}
}
