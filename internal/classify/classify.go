// Package classify holds the stateless content heuristics: shape tags, link
// extraction, language detection and summaries.
package classify

import (
	"regexp"
	"strings"
	"unicode"
)

type Tag = string

const (
	TagURL      Tag = "URL"
	TagEmail    Tag = "Email"
	TagPhone    Tag = "Phone"
	TagCode     Tag = "Code"
	TagJSON     Tag = "JSON"
	TagMarkdown Tag = "Markdown"
	TagHTML     Tag = "HTML"
	TagOTP      Tag = "OTP"
	TagNumber   Tag = "Number"
)

var phoneRe = regexp.MustCompile(`(\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)

type detector struct {
	tag   Tag
	match func(s string) bool
}

// detectors run in a fixed order against lower-cased content.
var detectors = []detector{
	{TagURL, func(s string) bool {
		return strings.Contains(s, "http://") || strings.Contains(s, "https://") || strings.Contains(s, "www.")
	}},
	{TagEmail, func(s string) bool {
		return strings.Contains(s, "@") && strings.Contains(s, ".")
	}},
	{TagPhone, phoneRe.MatchString},
	{TagCode, func(s string) bool {
		return (strings.Contains(s, "{") && strings.Contains(s, "}")) ||
			strings.Contains(s, "function") || strings.Contains(s, "class") ||
			strings.Contains(s, "import ") || strings.Contains(s, "def ")
	}},
	{TagJSON, func(s string) bool {
		return (strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")) ||
			(strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"))
	}},
	{TagMarkdown, func(s string) bool {
		return strings.Contains(s, "# ") || strings.Contains(s, "## ") || strings.Contains(s, "*")
	}},
	{TagHTML, func(s string) bool {
		return strings.Contains(s, "<") && strings.Contains(s, ">")
	}},
	{TagOTP, isOTP},
	{TagNumber, isNumber},
}

// Classify returns the tags that apply to content, in detector order.
// An empty result means no pattern matched.
func Classify(content string) []Tag {
	lower := strings.ToLower(content)
	var tags []Tag
	for _, d := range detectors {
		if d.match(lower) {
			tags = append(tags, d.tag)
		}
	}
	return tags
}

func isOTP(s string) bool {
	n := 0
	for _, r := range s {
		if !unicode.IsNumber(r) {
			return false
		}
		n++
	}
	return n == 6
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsNumber(r) && r != '.' && r != ',' {
			return false
		}
	}
	return true
}
