package command

import (
	"fmt"
	"strings"

	"clipkeep/internal/transform"
)

func (d *Dispatcher) transform(past string, kind transform.Kind) handler {
	return func(c call) string {
		i, ok := c.index(0)
		if !ok {
			return usage(string(kind) + " N")
		}
		if _, err := d.session.Transform(i, kind); err != nil {
			return d.fail(err)
		}
		return fmt.Sprintf("✅ %s item %d", past, i)
	}
}

// format N as json|yaml. The "as" is optional.
func (d *Dispatcher) format(c call) string {
	if len(c.args) < 2 {
		return usage("format N as json|yaml")
	}
	i, ok := c.index(0)
	if !ok {
		return usage("format N as json|yaml")
	}
	target := strings.ToLower(c.args[len(c.args)-1])
	var kind transform.Kind
	switch target {
	case "json":
		kind = transform.FormatJSON
	case "yaml":
		kind = transform.FormatYAML
	default:
		return "❌ Unknown format: " + target
	}
	if _, err := d.session.Transform(i, kind); err != nil {
		return d.fail(err)
	}
	return fmt.Sprintf("✅ Formatted item %d as %s", i, strings.ToUpper(target))
}

func (d *Dispatcher) convert(c call) string {
	if len(c.args) < 3 || !strings.EqualFold(c.args[1], "to") {
		return usage("convert N to markdown|plain")
	}
	i, ok := c.index(0)
	if !ok {
		return usage("convert N to markdown|plain")
	}
	target := strings.ToLower(c.args[2])
	var (
		kind  transform.Kind
		label string
	)
	switch target {
	case "markdown":
		kind, label = transform.ToMarkdown, "Markdown"
	case "plain":
		kind, label = transform.ToPlain, "plain text"
	default:
		return "❌ Unknown format: " + target
	}
	if _, err := d.session.Transform(i, kind); err != nil {
		return d.fail(err)
	}
	return fmt.Sprintf("✅ Converted item %d to %s", i, label)
}
