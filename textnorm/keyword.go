package textnorm

import (
	"regexp"
	"strings"
)

// keywordRE captures the shortest leading span followed by one of the
// connective cues. Alternatives are tried in this order at each position:
//   - 에 대한 / 에 관한
//   - 과/와 관련된 / 관련한 / 관련하여
//   - 의 내용 중
//   - 에 해당하는 / 에 해당하지
//   - 로만 묶은
//   - 으로
var keywordRE = regexp.MustCompile(
	`(.+?)(?:` +
		`에\s+(?:대한|관한)` +
		`|[과와]\s*관련(?:된|한|하여)` +
		`|의\s*내용\s*중` +
		`|에\s*해당(?:하는|하지)` +
		`|로만\s*묶은` +
		`|으로` +
		`)`,
)

// Subject returns the part of a question title that names its topic, before
// prefix cleanup. Titles without a connective cue are returned whole.
func Subject(title string) string {
	normalized := Normalize(title)
	if m := keywordRE.FindStringSubmatch(normalized); m != nil {
		return strings.TrimSpace(m[1])
	}
	return normalized
}

// ExtractKeyword derives a coarse topic key from a question title, e.g.
// "[7] 다음 중 세포 호흡에 대한 설명으로 옳은 것은?" yields "세포 호흡".
// It never fails: a title without a cue yields the whole cleaned title.
func ExtractKeyword(title string) string {
	return CleanPrefix(Subject(title))
}
