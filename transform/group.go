package transform

import (
	"fmt"
	"regexp"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/jamesainslie/go-qna/dataset"
)

// Uncategorized is the bucket for records with an empty grouping key.
const Uncategorized = "uncategorized"

// Groups maps a category key to its records in first-seen key order.
type Groups[T any] = orderedmap.OrderedMap[string, []T]

// NestedGroups maps an outer category key to the inner groups beneath it.
type NestedGroups[T any] = orderedmap.OrderedMap[string, *Groups[T]]

// Group buckets items by key. Buckets appear in the order their key is first
// seen and keep the input order of their items.
func Group[T any](items []T, key func(T) string) *Groups[T] {
	groups := orderedmap.New[string, []T]()
	for _, item := range items {
		k := key(item)
		if k == "" {
			k = Uncategorized
		}
		bucket, _ := groups.Get(k)
		groups.Set(k, append(bucket, item))
	}
	return groups
}

// Nest groups items by outer key, then each bucket by inner key.
func Nest[T any](items []T, outer, inner func(T) string) *NestedGroups[T] {
	nested := orderedmap.New[string, *Groups[T]]()
	for pair := Group(items, outer).Oldest(); pair != nil; pair = pair.Next() {
		nested.Set(pair.Key, Group(pair.Value, inner))
	}
	return nested
}

// Record is a flat JSON object whose field order is kept on output.
type Record = orderedmap.OrderedMap[string, any]

// RecordKey returns the grouping key stored under field, or "" when the
// field is absent or null.
func RecordKey(r *Record, field string) string {
	v, ok := r.Get(field)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// GroupRecords groups arbitrary flat records by one or two fields. It
// returns *Groups[*Record] for one field and *NestedGroups[*Record] for two.
func GroupRecords(records []*Record, fields []string) (any, error) {
	switch len(fields) {
	case 1:
		return Group(records, func(r *Record) string {
			return RecordKey(r, fields[0])
		}), nil
	case 2:
		return Nest(records,
			func(r *Record) string { return RecordKey(r, fields[0]) },
			func(r *Record) string { return RecordKey(r, fields[1]) },
		), nil
	default:
		return nil, fmt.Errorf("%w: group by %d fields, want 1 or 2", ErrInvalidSpec, len(fields))
	}
}

var (
	spaceRunRE = regexp.MustCompile(`\s+`)
	labelRE    = regexp.MustCompile(`\[(.*?)\] \[(.*?)\]`)
)

func collapseSpaces(s string) string {
	return strings.TrimSpace(spaceRunRE.ReplaceAllString(s, " "))
}

func count(keys []string) *orderedmap.OrderedMap[string, int] {
	counts := orderedmap.New[string, int]()
	for _, k := range keys {
		n, _ := counts.Get(k)
		counts.Set(k, n+1)
	}
	return counts
}

// CountCategories counts questions per category title.
func CountCategories(questions []dataset.Question) *orderedmap.OrderedMap[string, int] {
	keys := make([]string, 0, len(questions))
	for _, q := range questions {
		keys = append(keys, collapseSpaces(q.CategoryTitle))
	}
	return count(keys)
}

// CountLabeledCategories counts the categories of "[id] [category] title"
// lines. Lines without that label are skipped.
func CountLabeledCategories(lines []string) *orderedmap.OrderedMap[string, int] {
	keys := make([]string, 0, len(lines))
	for _, line := range lines {
		m := labelRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		keys = append(keys, collapseSpaces(m[2]))
	}
	return count(keys)
}
