package command

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"clipkeep/internal/history"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// exportedEntry is the file shape of one history entry. Image payloads stay
// out of exports.
type exportedEntry struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Pinned    bool      `json:"pinned"`
	Favorite  bool      `json:"favorite"`
	Locked    bool      `json:"locked"`
	Tags      []string  `json:"tags"`
}

func toExported(e history.Entry) exportedEntry {
	content := e.Content
	if !e.IsText() {
		content = e.Preview
	}
	return exportedEntry{
		ID:        e.ID,
		Kind:      string(e.Kind),
		Content:   content,
		CreatedAt: e.CreatedAt,
		Pinned:    e.Pinned,
		Favorite:  e.Favorite,
		Locked:    e.Locked,
		Tags:      e.Tags,
	}
}

// export json|csv PATH
func (d *Dispatcher) export(c call) string {
	const form = "export json|csv PATH"
	if len(c.args) < 2 {
		return usage(form)
	}
	format := strings.ToLower(c.args[0])
	path := strings.Join(c.args[1:], " ")

	entries := d.session.List(history.Filter{})
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = exportJSON(entries)
	case "csv":
		data, err = exportCSV(entries)
	default:
		return usage(form)
	}
	if err != nil {
		return "❌ Export failed: " + err.Error()
	}

	if err := writeFile(path, data); err != nil {
		d.logger.Warn("export", zap.String("path", path), zap.Error(err))
		return "❌ Export failed: " + err.Error()
	}
	return fmt.Sprintf("✅ Exported %d entries to %s (%s)", len(entries), path, humanize.Bytes(uint64(len(data))))
}

func exportJSON(entries []history.Entry) ([]byte, error) {
	out := make([]exportedEntry, len(entries))
	for i, e := range entries {
		out[i] = toExported(e)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return data, nil
}

func exportCSV(entries []history.Entry) ([]byte, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "kind", "created_at", "pinned", "favorite", "locked", "tags", "content"})
	for _, e := range entries {
		x := toExported(e)
		_ = w.Write([]string{
			x.ID,
			x.Kind,
			x.CreatedAt.Format(time.RFC3339),
			strconv.FormatBool(x.Pinned),
			strconv.FormatBool(x.Favorite),
			strconv.FormatBool(x.Locked),
			strings.Join(x.Tags, ";"),
			x.Content,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return []byte(b.String()), nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// import PATH reads a JSON object of snippet name to text.
func (d *Dispatcher) importSnippets(c call) string {
	if c.rest == "" {
		return usage("import PATH")
	}
	data, err := os.ReadFile(c.rest)
	if err != nil {
		return "❌ Import failed: " + err.Error()
	}
	var snippets map[string]string
	if err := json.Unmarshal(data, &snippets); err != nil {
		return "❌ Import failed: expected a JSON object of snippet names to text"
	}
	n := d.session.ImportSnippets(snippets)
	return fmt.Sprintf("✅ Imported %d snippets", n)
}
