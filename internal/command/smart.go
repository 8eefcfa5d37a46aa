package command

import (
	"fmt"
	"strings"

	"clipkeep/internal/classify"
	"clipkeep/internal/history"

	"github.com/dustin/go-humanize"
)

func (d *Dispatcher) ocr(c call) string {
	i, ok := c.index(0)
	if !ok {
		return usage("ocr N")
	}
	e, err := d.session.Get(i)
	if err != nil {
		return d.fail(err)
	}
	if e.Kind != history.KindImage {
		return fmt.Sprintf("❌ Item %d is not an image", i)
	}
	return "⚠️ ocr is not implemented yet"
}

// auto-tag [N]
func (d *Dispatcher) autoTag(c call) string {
	if len(c.args) == 0 {
		n := d.session.RetagAll()
		return fmt.Sprintf("✅ Auto-tagged all items (%d changed)", n)
	}
	i, ok := c.index(0)
	if !ok {
		return usage("auto-tag [N]")
	}
	tags, err := d.session.Retag(i)
	if err != nil {
		return d.fail(err)
	}
	if len(tags) == 0 {
		return fmt.Sprintf("✅ Auto-tagged item %d: no tags", i)
	}
	return fmt.Sprintf("✅ Auto-tagged item %d: %s", i, strings.Join(tags, ", "))
}

func (d *Dispatcher) summarize(c call) string {
	i, ok := c.index(0)
	if !ok {
		return usage("summarize N")
	}
	summary, err := d.session.Summarize(i)
	if err != nil {
		return d.fail(err)
	}
	return "📝 Summary: " + summary
}

// translate N to LANG
func (d *Dispatcher) translate(c call) string {
	i, ok := c.index(0)
	if !ok || len(c.args) < 3 {
		return usage("translate N to LANG")
	}
	if _, err := d.session.Get(i); err != nil {
		return d.fail(err)
	}
	return fmt.Sprintf("🌐 Translation to %s: [translation service not implemented]", c.args[2])
}

func (d *Dispatcher) detectLang(c call) string {
	i, ok := c.index(0)
	if !ok {
		return usage("detect-lang N")
	}
	lang, err := d.session.DetectLanguage(i)
	if err != nil {
		return d.fail(err)
	}
	return "🌍 Detected language: " + lang
}

func (d *Dispatcher) shortenURL(c call) string {
	i, ok := c.index(0)
	if !ok {
		return usage("shorten-url N")
	}
	e, err := d.session.Get(i)
	if err != nil {
		return d.fail(err)
	}
	return "🔗 Shortened URL: " + classify.ShortenURL(e.Content)
}

func (d *Dispatcher) extractLinks(c call) string {
	i, ok := c.index(0)
	if !ok {
		return usage("extract-links N")
	}
	links, err := d.session.ExtractLinks(i)
	if err != nil {
		return d.fail(err)
	}
	if len(links) == 0 {
		return "🔗 No links found"
	}
	return "🔗 Extracted links: " + strings.Join(links, ", ")
}

func (d *Dispatcher) stats(c call) string {
	i, ok := c.index(0)
	if !ok {
		return usage("stats N")
	}
	e, st, err := d.session.Stats(i)
	if err != nil {
		return d.fail(err)
	}

	lastUsed := "Never"
	if !st.LastUsed.IsZero() {
		lastUsed = humanize.RelTime(st.LastUsed, d.session.Now(), "ago", "from now")
	}
	lang := st.Language
	if lang == "" {
		lang = classify.UnknownLanguage
	}
	tags := "None"
	if len(e.Tags) > 0 {
		tags = strings.Join(e.Tags, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Stats for item %d:\n", i)
	fmt.Fprintf(&b, "• Use count: %d\n", st.UseCount)
	fmt.Fprintf(&b, "• Last used: %s\n", lastUsed)
	fmt.Fprintf(&b, "• Language: %s\n", lang)
	fmt.Fprintf(&b, "• Links: %d\n", len(st.ExtractedLinks))
	fmt.Fprintf(&b, "• Size: %s (~%d tokens)\n", humanize.Bytes(uint64(e.SizeBytes)), classify.EstimateTokens(e.Content, e.Tags))
	fmt.Fprintf(&b, "• Tags: %s", tags)
	return b.String()
}
