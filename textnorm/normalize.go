package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns text in NFKC form with surrounding whitespace trimmed.
// Full-width brackets, digits and spaces fold to their ASCII forms here, so it
// must run before any pattern matching.
func Normalize(text string) string {
	return strings.TrimSpace(norm.NFKC.String(text))
}

var (
	questionNumberRE = regexp.MustCompile(`^\[\d+\]\s*`)
	// "다음 중" has to go before the bare "다음" or the latter eats half of it.
	amongFollowingRE = regexp.MustCompile(`(^|\]\s*)다음\s*중\s*`)
	followingRE      = regexp.MustCompile(`(^|\]\s*)다음\s*`)
)

// CleanPrefix strips the leading "[n]" question number and the "다음 중" /
// "다음" filler found at the start of the text or right after a closing
// bracket. Chained prefixes such as "[1] [2] 다음 다음 중" are removed
// together, so cleaning a cleaned title returns it unchanged.
func CleanPrefix(text string) string {
	text = Normalize(text)
	for {
		cleaned := stripPrefixOnce(text)
		if cleaned == text {
			return text
		}
		text = cleaned
	}
}

// stripPrefixOnce only ever shortens its input.
func stripPrefixOnce(text string) string {
	text = questionNumberRE.ReplaceAllString(text, "")
	text = amongFollowingRE.ReplaceAllString(text, "${1}")
	text = followingRE.ReplaceAllString(text, "${1}")
	return strings.TrimSpace(text)
}
