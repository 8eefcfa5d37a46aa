package classify

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

const UnknownLanguage = "Unknown"

// DetectLanguage returns the ISO 639-1 code of the dominant language, or
// UnknownLanguage when the detector is not confident.
func DetectLanguage(content string) string {
	if strings.TrimSpace(content) == "" {
		return UnknownLanguage
	}
	info := whatlanggo.Detect(content)
	if !info.IsReliable() {
		return UnknownLanguage
	}
	code := info.Lang.Iso6391()
	if code == "" {
		return UnknownLanguage
	}
	return code
}
