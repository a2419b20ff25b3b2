// Package textnorm cleans quiz titles and derives topic keywords from them.
//
// The passes are plain string-to-string functions meant to be composed in
// order: markup stripping, Unicode normalization, prefix cleanup and keyword
// segmentation.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	paragraphTagRE = regexp.MustCompile(`(?i)</?p[^>]*>`)
	anyTagRE       = regexp.MustCompile(`<[^>]*>`)
)

// StripParagraphTags removes opening and closing paragraph tags and trims
// the result. Other markup is left in place.
func StripParagraphTags(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(paragraphTagRE.ReplaceAllString(text, ""))
}

// StripTags removes every angle-bracket delimited token and trims the result.
func StripTags(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(anyTagRE.ReplaceAllString(text, ""))
}
