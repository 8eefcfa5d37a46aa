package command

import (
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"clipkeep/internal/history"
	"clipkeep/internal/platform"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 10, 18, 9, 0, 0, 0, time.UTC)

type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) Open(u *url.URL) error {
	o.opened = append(o.opened, u.String())
	return o.err
}

type fixture struct {
	d      *Dispatcher
	s      *history.Session
	port   *platform.MemoryPort
	opener *fakeOpener
}

func newFixture(t *testing.T, contents ...string) *fixture {
	t.Helper()
	port := platform.NewMemoryPort()
	s := history.New(history.Options{
		Clipboard:  port,
		PasteDelay: time.Hour,
		Paster:     platform.PasterFunc(func() bool { return true }),
		Now:        func() time.Time { return epoch },
	})
	for _, c := range contents {
		_, ok := s.Capture(c, history.KindText)
		require.True(t, ok)
	}
	opener := &fakeOpener{}
	return &fixture{d: New(s, opener, nil), s: s, port: port, opener: opener}
}

func (f *fixture) content(t *testing.T, i int) string {
	t.Helper()
	e, err := f.s.Get(i)
	require.NoError(t, err)
	return e.Content
}

func TestExecute_Blank(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "", f.d.Execute("   "))
}

func TestExecute_UnknownVerb(t *testing.T) {
	f := newFixture(t)
	out := f.d.Execute("frobnicate 1")
	assert.True(t, strings.HasPrefix(out, "❌ Unknown command: frobnicate. Type 'help' for available commands."), out)

	out = f.d.Execute("pste 0")
	assert.Contains(t, out, "Unknown command: pste")
	assert.Contains(t, out, "Did you mean 'paste'?")
}

func TestExecute_VerbIsCaseInsensitive(t *testing.T) {
	f := newFixture(t, "hello")
	assert.Equal(t, "✅ Copied item 0", f.d.Execute("COPY 0"))
}

func TestExecute_UsageErrors(t *testing.T) {
	f := newFixture(t, "x")
	cases := map[string]string{
		"paste":           "❌ Usage: paste N",
		"paste abc":       "❌ Usage: paste N",
		"append":          "❌ Usage: append N",
		"copy":            "❌ Usage: copy N",
		"pin":             "❌ Usage: pin N",
		"unfavorite":      "❌ Usage: unfavorite N",
		"delete x":        "❌ Usage: delete N",
		"lock":            "❌ Usage: lock N",
		"trim":            "❌ Usage: trim N",
		"format 0":        "❌ Usage: format N as json|yaml",
		"convert 0 plain": "❌ Usage: convert N to markdown|plain",
		"snippet":         "❌ Usage: snippet save|list|paste|delete",
		"snippet save a":  "❌ Usage: snippet save NAME from N",
		"template":        "❌ Usage: template insert NAME",
		"search":          "❌ Usage: search QUERY",
		"log":             "❌ Usage: log show N",
		"stats":           "❌ Usage: stats N",
		"schedule 0":      "❌ Usage: schedule N at TIME",
		"reminder 0":      `❌ Usage: reminder N "message" at TIME`,
		"export":          "❌ Usage: export json|csv PATH",
		"import":          "❌ Usage: import PATH",
		"edit":            "❌ Usage: edit N",
	}
	for line, want := range cases {
		assert.Equal(t, want, f.d.Execute(line), line)
	}
}

func TestExecute_PasteOnEmptyHistory(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "❌ Invalid index", f.d.Execute("paste 0"))
	assert.Equal(t, "❌ Invalid index", f.d.Execute("paste -1"))
}

func TestExecute_PasteCopyAppend(t *testing.T) {
	f := newFixture(t, "world", "hello")

	assert.Equal(t, "✅ Pasted item 1", f.d.Execute("paste 1"))
	assert.Equal(t, "world", f.port.Text())

	assert.Equal(t, "✅ Copied item 0", f.d.Execute("copy 0"))
	assert.Equal(t, "hello", f.port.Text())

	assert.Equal(t, "✅ Appended item 1", f.d.Execute("append 1"))
	assert.Equal(t, "hello world", f.port.Text())
}

func TestExecute_ClipboardFailure(t *testing.T) {
	f := newFixture(t, "x")
	f.port.FailWith(errors.New("gone"))
	assert.Equal(t, "❌ Clipboard unavailable", f.d.Execute("copy 0"))
}

func TestExecute_Flags(t *testing.T) {
	f := newFixture(t, "x")

	assert.Equal(t, "✅ Pinned item 0", f.d.Execute("pin 0"))
	assert.Equal(t, "✅ Favorited item 0", f.d.Execute("favorite 0"))
	e, _ := f.s.Get(0)
	assert.True(t, e.Pinned)
	assert.True(t, e.Favorite)

	assert.Equal(t, "✅ Unpinned item 0", f.d.Execute("unpin 0"))
	assert.Equal(t, "✅ Unfavorited item 0", f.d.Execute("unfavorite 0"))
	e, _ = f.s.Get(0)
	assert.False(t, e.Pinned)
	assert.False(t, e.Favorite)

	assert.Equal(t, "🔒 Locked item 0", f.d.Execute("lock 0"))
	assert.Equal(t, "🔓 Unlocked item 0", f.d.Execute("lock 0"))
	assert.Equal(t, "❌ Invalid index", f.d.Execute("pin 3"))
}

func TestExecute_LockedEntryRefusesMutation(t *testing.T) {
	f := newFixture(t, "  secret  ")
	f.d.Execute("lock 0")

	assert.Equal(t, "🔒 Entry is locked", f.d.Execute("trim 0"))
	assert.Equal(t, "🔒 Entry is locked", f.d.Execute("delete 0"))
	assert.Equal(t, "🔒 Entry is locked", f.d.Execute("paste 0"))
	assert.Equal(t, "🔒 Entry is locked", f.d.Execute("append 0"))
	assert.Equal(t, "  secret  ", f.content(t, 0))

	assert.Equal(t, "✅ Pinned item 0", f.d.Execute("pin 0"))
}

func TestExecute_Transforms(t *testing.T) {
	f := newFixture(t, `{"b":1,"a":[1,2]}`, "<p>hi</p>", "hello big world", "  hi  ")

	assert.Equal(t, "✅ Trimmed item 0", f.d.Execute("trim 0"))
	assert.Equal(t, "hi", f.content(t, 0))

	assert.Equal(t, "✅ Titlecased item 1", f.d.Execute("titlecase 1"))
	assert.Equal(t, "Hello Big World", f.content(t, 1))

	assert.Equal(t, "✅ Converted item 2 to plain text", f.d.Execute("convert 2 to plain"))
	assert.Equal(t, "hi", f.content(t, 2))

	assert.Equal(t, "✅ Formatted item 3 as JSON", f.d.Execute("format 3 as json"))
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    1,\n    2\n  ]\n}", f.content(t, 3))

	assert.Equal(t, "❌ Unknown format: xml", f.d.Execute("format 3 as xml"))
	assert.Equal(t, "❌ Usage: format N as json|yaml", f.d.Execute("format x as json"))
	assert.Equal(t, "❌ Usage: convert N to markdown|plain", f.d.Execute("convert x to plain"))
	assert.Equal(t, "❌ Invalid index", f.d.Execute("format 99 as json"))
}

func TestExecute_DeleteClearUndo(t *testing.T) {
	f := newFixture(t, "a", "b", "c")

	assert.Equal(t, "✅ Deleted item 0", f.d.Execute("delete 0"))
	assert.Equal(t, 2, f.s.Len())
	assert.Equal(t, `↩️ Restored "c"`, f.d.Execute("undo"))
	assert.Equal(t, 3, f.s.Len())

	f.d.Execute("pin 2")
	assert.Contains(t, f.d.Execute("clear"), "clear --force")
	assert.Equal(t, 3, f.s.Len())

	assert.Equal(t, "✅ Cleared 2 non-pinned entries", f.d.Execute("clear --force"))
	assert.Equal(t, "a", f.content(t, 0))
	assert.Equal(t, "✅ Cleared 1 entries", f.d.Execute("clear --force --all"))
	assert.Equal(t, "❌ Nothing to undo", f.d.Execute("undo"))
}

func TestExecute_PreviewAndOpen(t *testing.T) {
	f := newFixture(t, "https://example.com/x", "not a url")

	assert.Equal(t, "📄 Preview of item 0:\nnot a url", f.d.Execute("preview 0"))
	assert.Equal(t, "❌ Not a valid URL", f.d.Execute("open 0"))
	assert.Equal(t, "✅ Opened URL", f.d.Execute("open 1"))
	assert.Equal(t, []string{"https://example.com/x"}, f.opener.opened)

	f.opener.err = errors.New("no browser")
	assert.Contains(t, f.d.Execute("open 1"), "Could not open URL")
}

func TestExecute_Snippets(t *testing.T) {
	f := newFixture(t, "Best regards")

	assert.Equal(t, "✅ Saved snippet 'sig'", f.d.Execute("snippet save sig from 0"))
	assert.Equal(t, "✅ Saved snippet 'short'", f.d.Execute("snippet save short 0"))
	assert.Equal(t, "📋 Snippets: short, sig", f.d.Execute("snippet list"))

	f.port.SetText("")
	assert.Equal(t, "✅ Pasted snippet 'sig'", f.d.Execute("snippet paste sig"))
	assert.Equal(t, "Best regards", f.port.Text())

	assert.Equal(t, "✅ Deleted snippet 'sig'", f.d.Execute("snippet delete sig"))
	assert.Equal(t, `❌ snippet "sig": not found`, f.d.Execute("snippet paste sig"))
	assert.Equal(t, "❌ Unknown snippet action: rename", f.d.Execute("snippet rename a b"))
}

func TestExecute_Templates(t *testing.T) {
	f := newFixture(t)
	f.s.SetTemplates(map[string]string{"bug": "Steps:"})

	assert.Equal(t, "📋 Templates: bug", f.d.Execute("template list"))
	assert.Equal(t, "✅ Inserted template 'bug'", f.d.Execute("template insert bug"))
	assert.Equal(t, "Steps:", f.port.Text())
	assert.Equal(t, `❌ template "nope": not found`, f.d.Execute("template insert nope"))
}

func TestExecute_Search(t *testing.T) {
	f := newFixture(t, "abc123", "xyzabc", "Hello World")

	assert.True(t, strings.HasPrefix(f.d.Execute("search re:^abc"), "🔍 Found 1 items matching 're:^abc'"))
	assert.True(t, strings.HasPrefix(f.d.Execute(`search "Hello World"`), `🔍 Found 1 items matching '"Hello World"'`))
	assert.True(t, strings.HasPrefix(f.d.Execute("search ABC"), "🔍 Found 2 items"))
	assert.Contains(t, f.d.Execute("search re:("), "search pattern")
}

func TestExecute_AutoCopyRules(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "📋 No auto-copy rules", f.d.Execute("auto-copy"))
	assert.Equal(t, "✅ Added auto-copy rule: shout", f.d.Execute("auto-copy add shout ^todo uppercase"))
	assert.Contains(t, f.d.Execute("auto-copy add shout x trim"), "Rule rejected")
	assert.Contains(t, f.d.Execute("auto-copy add bad ( trim"), "Rule rejected")

	_, ok := f.s.Capture("todo: ship it", history.KindText)
	require.True(t, ok)
	assert.Equal(t, "TODO: SHIP IT", f.content(t, 0))

	assert.Equal(t, "✅ Disabled auto-copy rule: shout", f.d.Execute("auto-copy disable shout"))
	assert.Contains(t, f.d.Execute("auto-copy"), "shout: ^todo → uppercase (disabled)")
	assert.Equal(t, "✅ Removed auto-copy rule: shout", f.d.Execute("auto-copy remove shout"))
	assert.Equal(t, "❌ shout: rule not found", f.d.Execute("auto-copy enable shout"))
}

func TestExecute_SmartContent(t *testing.T) {
	long := "https://example.com/a/very/long/path/that/keeps/going/and/going"
	f := newFixture(t, long, "mail me at user@example.com or visit https://go.dev")

	assert.Equal(t, "🔗 Extracted links: user@example.com, https://go.dev", f.d.Execute("extract-links 0"))
	assert.Equal(t, "🔗 Shortened URL: https://example.com/...", f.d.Execute("shorten-url 1"))
	assert.Equal(t, "✅ Auto-tagged item 0: URL, Email", f.d.Execute("auto-tag 0"))
	assert.Equal(t, "✅ Auto-tagged all items (0 changed)", f.d.Execute("auto-tag"))
	assert.Equal(t, "📝 Summary: "+long, f.d.Execute("summarize 1"))
	assert.Contains(t, f.d.Execute("translate 0 to fr"), "Translation to fr")
	assert.Equal(t, "❌ Invalid index", f.d.Execute("translate 9 to fr"))
	assert.True(t, strings.HasPrefix(f.d.Execute("detect-lang 0"), "🌍 Detected language: "))
	assert.Equal(t, "❌ Item 0 is not an image", f.d.Execute("ocr 0"))
}

func TestExecute_Stats(t *testing.T) {
	f := newFixture(t, "see https://go.dev")
	f.d.Execute("copy 0")

	out := f.d.Execute("stats 0")
	assert.Contains(t, out, "📊 Stats for item 0:")
	assert.Contains(t, out, "• Use count: 1")
	assert.Contains(t, out, "• Last used: now")
	assert.Contains(t, out, "• Links: 1")
	assert.Contains(t, out, "• Tags: URL")
}

func TestExecute_Log(t *testing.T) {
	f := newFixture(t, "a")
	f.d.Execute("copy 0")
	f.d.Execute("pin 0")

	out := f.d.Execute("log show 1")
	assert.Equal(t, "📋 Recent actions:\n2025-10-18 09:00:00 - pin 0: pin=true", out)
	assert.Equal(t, "❌ Unknown log action", f.d.Execute("log tail"))
}

func TestExecute_ReminderAndSchedule(t *testing.T) {
	f := newFixture(t, "call back")

	assert.Equal(t, "⏰ Reminder set for item 0: ring the office", f.d.Execute(`reminder 0 "ring the office" at 30m`))
	rs := f.s.Reminders()
	require.Len(t, rs, 1)
	assert.Equal(t, epoch.Add(30*time.Minute), rs[0].At)

	assert.Equal(t, "⏰ Scheduled paste for item 0 at 2025-10-18 15:04", f.d.Execute("schedule 0 at 15:04"))
	assert.Contains(t, f.d.Execute("schedule list"), "2025-10-18 15:04")
	assert.Contains(t, f.d.Execute("reminder list"), "ring the office")
	assert.Contains(t, f.d.Execute("schedule 0 at someday"), "unrecognised time")
	assert.Equal(t, "❌ Invalid index", f.d.Execute("schedule 4 at 1h"))
}

func TestExecute_NotImplementedStubs(t *testing.T) {
	f := newFixture(t)
	for _, verb := range []string{"macro", "sync", "webhook", "ai-format", "auto-paste"} {
		assert.Equal(t, "⚠️ "+verb+" is not implemented yet", f.d.Execute(verb), verb)
	}
}

func TestExecute_ExportImport(t *testing.T) {
	dir := t.TempDir()
	f := newFixture(t, "one", "two, with comma")

	jsonPath := filepath.Join(dir, "out", "history.json")
	assert.Contains(t, f.d.Execute("export json "+jsonPath), "✅ Exported 2 entries")
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var got []exportedEntry
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "two, with comma", got[0].Content)

	csvPath := filepath.Join(dir, "history.csv")
	assert.Contains(t, f.d.Execute("export csv "+csvPath), "✅ Exported 2 entries")
	data, err = os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"two, with comma"`)

	assert.Equal(t, "❌ Usage: export json|csv PATH", f.d.Execute("export xml "+csvPath))

	snipPath := filepath.Join(dir, "snippets.json")
	require.NoError(t, os.WriteFile(snipPath, []byte(`{"hi":"hello","bye":"goodbye"}`), 0644))
	assert.Equal(t, "✅ Imported 2 snippets", f.d.Execute("import "+snipPath))
	assert.Equal(t, []string{"bye", "hi"}, f.s.SnippetNames())

	require.NoError(t, os.WriteFile(snipPath, []byte(`[1,2]`), 0644))
	assert.Contains(t, f.d.Execute("import "+snipPath), "Import failed")
}

func TestExecute_ListAndHelp(t *testing.T) {
	f := newFixture(t, "first", "second")
	f.d.Execute("pin 1")

	out := f.d.Execute("list")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "📋 2 of 2 entries:", lines[0])
	assert.Contains(t, lines[1], "second")
	assert.Contains(t, lines[2], "*")

	help := f.d.Execute("help")
	for _, verb := range []string{"paste N", "snippet save NAME from N", "format N as json|yaml", "export json|csv PATH"} {
		assert.Contains(t, help, verb)
	}
}

func TestVerbs_CoverCommandSurface(t *testing.T) {
	f := newFixture(t)
	want := []string{
		"ai-format", "append", "auto-copy", "auto-paste", "auto-tag", "clear", "compress",
		"convert", "copy", "delete", "detect-lang", "edit", "expire", "export", "extract-links",
		"favorite", "format", "group", "help", "import", "list", "lock", "log", "lowercase",
		"macro", "merge", "ocr", "open", "paste", "pin", "preview", "reminder", "rule",
		"schedule", "search", "send", "shortcut", "shorten-url", "snippet", "stats",
		"summarize", "sync", "template", "titlecase", "translate", "trigger", "trim",
		"undo", "unfavorite", "unpin", "uppercase", "webhook",
	}
	if diff := cmp.Diff(want, f.d.Verbs()); diff != "" {
		t.Errorf("verbs mismatch (-want +got):\n%s", diff)
	}
}

func TestParseWhen(t *testing.T) {
	now := time.Date(2025, 10, 18, 16, 0, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want time.Time
	}{
		{"90m", now.Add(90 * time.Minute)},
		{"17:30", time.Date(2025, 10, 18, 17, 30, 0, 0, time.UTC)},
		{"08:15", time.Date(2025, 10, 19, 8, 15, 0, 0, time.UTC)},
		{"2025-12-01T09:00", time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)},
		{"2025-12-01 09:00", time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)},
		{"2025-12-01T09:00:00Z", time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := parseWhen(tc.in, now)
		require.NoError(t, err, tc.in)
		assert.True(t, tc.want.Equal(got), "%s: got %v", tc.in, got)
	}

	_, err := parseWhen("-5m", now)
	assert.ErrorIs(t, err, errBadTime)
	_, err = parseWhen("tomorrowish", now)
	assert.ErrorIs(t, err, errBadTime)
}

func TestQuotedFields(t *testing.T) {
	got := quotedFields(`0 "call  the office" at 15:04`)
	assert.Equal(t, []string{"0", "call  the office", "at", "15:04"}, got)
	assert.Equal(t, []string{""}, quotedFields(`""`))
}
