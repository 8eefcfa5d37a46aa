package classify

import (
	"strings"

	"mvdan.cc/xurls/v2"
)

var linkRe = xurls.Relaxed()

// ExtractLinks returns every link-looking substring of content in order of
// appearance. Repeated links are kept.
func ExtractLinks(content string) []string {
	return linkRe.FindAllString(content, -1)
}

// ShortenURL collapses long URLs to scheme and host.
func ShortenURL(u string) string {
	if len(u) <= 50 {
		return u
	}
	parts := strings.Split(u, "/")
	if len(parts) > 3 {
		return parts[0] + "//" + parts[2] + "/..."
	}
	return u
}
