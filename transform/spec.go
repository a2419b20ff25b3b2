package transform

import (
	"errors"
	"fmt"

	"github.com/jamesainslie/go-qna/dataset"
)

// ErrInvalidSpec indicates a Spec names an unknown kind or format, or a
// nesting depth the kind cannot produce.
var ErrInvalidSpec = errors.New("transform: invalid spec")

// Kind selects the shape of a derived document.
type Kind string

const (
	KindQuestions     Kind = "questions"
	KindAnswers       Kind = "answers"
	KindPairs         Kind = "pairs"
	KindSimplePairs   Kind = "simple-pairs"
	KindFlatAnswers   Kind = "flat-answers"
	KindCategoryCount Kind = "category-count"
)

// Format selects how list items are rendered for the questions and answers
// kinds.
type Format string

const (
	FormatText    Format = "text"
	FormatLabeled Format = "labeled"
	FormatObject  Format = "object"
)

// MaxNestingDepth is the deepest grouping Apply produces.
const MaxNestingDepth = 2

// Spec describes one derived document.
type Spec struct {
	Kind   Kind
	Format Format

	// FilterNonGradable drops ETC questions before anything else.
	FilterNonGradable bool
	// StripMarkup removes paragraph tags from answer titles.
	StripMarkup bool
	// IncludeKeyword fills category2 of pairs with the title keyword.
	IncludeKeyword bool
	// SortByCategory stable-sorts questions by category title.
	SortByCategory bool
	// NestingDepth groups pairs and flat answers by category1 (1) or by
	// category1 then category2 (2). Zero leaves them flat.
	NestingDepth int
	// Locale drives the category collation; empty means DefaultLocale.
	Locale string
}

// Validate checks that the kind, format and depth fit together.
func (s Spec) Validate() error {
	switch s.Kind {
	case KindQuestions:
		if s.Format != "" && s.Format != FormatText && s.Format != FormatLabeled {
			return fmt.Errorf("%w: format %q not supported for %s", ErrInvalidSpec, s.Format, s.Kind)
		}
	case KindAnswers:
		if s.Format != "" && s.Format != FormatText && s.Format != FormatLabeled && s.Format != FormatObject {
			return fmt.Errorf("%w: format %q not supported for %s", ErrInvalidSpec, s.Format, s.Kind)
		}
	case KindPairs, KindSimplePairs, KindFlatAnswers, KindCategoryCount:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidSpec, s.Kind)
	}

	if s.NestingDepth < 0 || s.NestingDepth > MaxNestingDepth {
		return fmt.Errorf("%w: nesting depth %d out of range 0..%d", ErrInvalidSpec, s.NestingDepth, MaxNestingDepth)
	}
	if s.NestingDepth > 0 && s.Kind != KindPairs && s.Kind != KindFlatAnswers {
		return fmt.Errorf("%w: %s cannot be nested", ErrInvalidSpec, s.Kind)
	}
	return nil
}

// Apply derives the document described by spec from questions. The input
// slice is never modified.
func Apply(questions []dataset.Question, spec Spec) (any, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	qs := questions
	if spec.FilterNonGradable {
		qs = Gradable(qs)
	}
	if spec.SortByCategory {
		qs = SortByCategory(qs, spec.Locale)
	}

	switch spec.Kind {
	case KindQuestions:
		if spec.Format == FormatLabeled {
			return LabeledTitles(qs), nil
		}
		return Titles(qs), nil

	case KindAnswers:
		switch spec.Format {
		case FormatLabeled:
			return LabeledAnswers(qs, spec.StripMarkup), nil
		case FormatObject:
			return AnswerObjects(qs, spec.StripMarkup), nil
		default:
			return AnswerTexts(qs, spec.StripMarkup), nil
		}

	case KindSimplePairs:
		return SimplePairs(qs), nil

	case KindCategoryCount:
		return CountCategories(qs), nil

	case KindPairs:
		pairs := Pairs(qs, PairOptions{StripMarkup: spec.StripMarkup, IncludeKeyword: spec.IncludeKeyword})
		return nestByCategory(pairs, spec.NestingDepth,
			func(p Pair) string { return p.Category1 },
			func(p Pair) string { return p.Category2 },
		), nil

	default: // KindFlatAnswers
		pairs := Pairs(qs, PairOptions{StripMarkup: spec.StripMarkup, IncludeKeyword: spec.IncludeKeyword})
		return nestByCategory(FlattenPairs(pairs), spec.NestingDepth,
			func(e dataset.AnswerEntry) string { return e.Category1 },
			func(e dataset.AnswerEntry) string { return e.Category2 },
		), nil
	}
}

func nestByCategory[T any](items []T, depth int, outer, inner func(T) string) any {
	switch depth {
	case 0:
		return items
	case 1:
		return Group(items, outer)
	default:
		return Nest(items, outer, inner)
	}
}
