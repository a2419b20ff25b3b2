// Package dedupe cleans flattened answer lists: it drops answers that carry
// no content and collapses exact or near duplicates.
package dedupe

import (
	"regexp"
	"strings"

	"github.com/jamesainslie/go-qna/dataset"
)

var (
	// "ㄱ, ㄴ, ㄷ" style lists of initial consonants.
	jamoListRE = regexp.MustCompile(`^[\sㆍ,]*[ㄱ-ㅎ](?:\s*[ㆍ,]\s*[ㄱ-ㅎ])*[\sㆍ,]*$`)
	// a bare count such as "3개" or the placeholder "xx개".
	countRE = regexp.MustCompile(`^(?:\d+|xx)개$`)
	// leading "[id]" label.
	labelPrefixRE = regexp.MustCompile(`^\[.*?\]\s*`)
)

// Body returns the answer text without its leading "[...]" label.
func Body(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(labelPrefixRE.ReplaceAllString(text, ""))
}

// Meaningless reports whether an answer has no usable content: an empty
// body, a list of initial consonants, or a bare count.
func Meaningless(text string) bool {
	body := Body(text)
	return body == "" || jamoListRE.MatchString(body) || countRE.MatchString(body)
}

// Filter splits answers into those worth keeping and those Meaningless
// rejects. Both keep input order.
func Filter(answers []dataset.AnswerEntry) (kept, removed []dataset.AnswerEntry) {
	kept = make([]dataset.AnswerEntry, 0, len(answers))
	removed = make([]dataset.AnswerEntry, 0)
	for _, a := range answers {
		if Meaningless(a.Answer) {
			removed = append(removed, a)
		} else {
			kept = append(kept, a)
		}
	}
	return kept, removed
}
