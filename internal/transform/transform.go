// Package transform implements the text-to-text conversions that can be
// applied to a history entry.
package transform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Kind string

const (
	Trim       Kind = "trim"
	Uppercase  Kind = "uppercase"
	Lowercase  Kind = "lowercase"
	Titlecase  Kind = "titlecase"
	Compress   Kind = "compress"
	FormatJSON Kind = "formatJSON"
	FormatYAML Kind = "formatYAML"
	ToMarkdown Kind = "toMarkdown"
	ToPlain    Kind = "toPlain"
)

var kinds = []Kind{Trim, Uppercase, Lowercase, Titlecase, Compress, FormatJSON, FormatYAML, ToMarkdown, ToPlain}

var tagRe = regexp.MustCompile(`<[^>]+>`)

// Kinds lists every supported transform.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

func Parse(s string) (Kind, error) {
	for _, k := range kinds {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown transform %q", s)
}

// Apply runs one transform. Unknown kinds return content untouched.
func Apply(content string, kind Kind) string {
	switch kind {
	case Trim:
		return strings.TrimSpace(content)
	case Uppercase:
		return strings.ToUpper(content)
	case Lowercase:
		return strings.ToLower(content)
	case Titlecase:
		return cases.Title(language.Und).String(content)
	case Compress:
		return compressLines(content)
	case FormatJSON:
		return formatJSON(content)
	case FormatYAML, ToMarkdown:
		// not implemented
		return content
	case ToPlain:
		return tagRe.ReplaceAllString(content, "")
	default:
		return content
	}
}

// compressLines drops blank lines and repeated lines, keeping the first
// occurrence of each.
func compressLines(content string) string {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	seen := make(map[string]bool)
	var kept []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" || seen[line] {
			continue
		}
		seen[line] = true
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// formatJSON re-indents valid JSON, keeping keys in their original order.
// Invalid input comes back unchanged.
func formatJSON(content string) string {
	src := []byte(content)
	if !json.Valid(src) {
		return content
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, src); err != nil {
		return content
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return content
	}
	return out.String()
}
