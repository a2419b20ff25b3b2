package dedupe

import (
	"slices"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/jamesainslie/go-qna/dataset"
)

// DuplicateGroup records the answers dropped in favour of a survivor.
type DuplicateGroup struct {
	SurvivorID     int                   `json:"survivorId"`
	SurvivorAnswer string                `json:"survivorAnswer"`
	Duplicates     []dataset.AnswerEntry `json:"duplicates"`
}

// RemoveDuplicates collapses answers whose trimmed text is identical. The
// first answer of each text survives; when it had duplicates it carries the
// group size in DuplicateCount and the rest are reported in a
// DuplicateGroup. Survivors are ordered by DuplicateCount, largest first,
// keeping first-seen order among equals.
func RemoveDuplicates(answers []dataset.AnswerEntry) (unique []dataset.AnswerEntry, removed []DuplicateGroup) {
	buckets := orderedmap.New[string, []dataset.AnswerEntry]()
	for _, a := range answers {
		key := strings.TrimSpace(a.Answer)
		bucket, _ := buckets.Get(key)
		buckets.Set(key, append(bucket, a))
	}

	unique = make([]dataset.AnswerEntry, 0, buckets.Len())
	removed = make([]DuplicateGroup, 0)
	for pair := buckets.Oldest(); pair != nil; pair = pair.Next() {
		group := pair.Value
		survivor := group[0]
		if len(group) > 1 {
			survivor.DuplicateCount = len(group)
			removed = append(removed, DuplicateGroup{
				SurvivorID:     survivor.ID,
				SurvivorAnswer: survivor.Answer,
				Duplicates:     group[1:],
			})
		}
		unique = append(unique, survivor)
	}

	slices.SortStableFunc(unique, func(a, b dataset.AnswerEntry) int {
		return b.DuplicateCount - a.DuplicateCount
	})
	return unique, removed
}

// RemovedCount returns how many answers the groups dropped in total.
func RemovedCount(groups []DuplicateGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Duplicates)
	}
	return n
}
