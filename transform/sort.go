package transform

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jamesainslie/go-qna/dataset"
)

// DefaultLocale is the collation locale used when none is configured.
const DefaultLocale = "ko"

// SortByCategory returns a copy of questions stable-sorted by category title
// under the collation rules of locale. An empty or unparsable locale falls
// back to DefaultLocale.
func SortByCategory(questions []dataset.Question, locale string) []dataset.Question {
	sorted := slices.Clone(questions)
	c := collate.New(parseLocale(locale))
	slices.SortStableFunc(sorted, func(a, b dataset.Question) int {
		return c.CompareString(a.CategoryTitle, b.CategoryTitle)
	})
	return sorted
}

func parseLocale(locale string) language.Tag {
	if tag, err := language.Parse(strings.TrimSpace(locale)); err == nil {
		return tag
	}
	return language.Korean
}
