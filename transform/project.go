// Package transform reshapes quiz records into the derived documents:
// question and answer lists, question/answer pairs, category groupings and
// counts.
package transform

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-qna/dataset"
	"github.com/jamesainslie/go-qna/textnorm"
)

// AnswerObject is an answer reduced to its id and text.
type AnswerObject struct {
	ID     int    `json:"id"`
	Answer string `json:"answer"`
}

// SimplePair is a question title with its answer titles.
type SimplePair struct {
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
}

// Pair is a question with identifiers, its category and graded answers.
type Pair struct {
	ID        int          `json:"id"`
	Category1 string       `json:"category1"`
	Category2 string       `json:"category2,omitempty"`
	Question  string       `json:"question"`
	Answers   []PairAnswer `json:"answers"`
}

// PairAnswer is one answer of a Pair. IsTrue reports whether the answer is
// the expected one given the question's polarity.
type PairAnswer struct {
	ID        int    `json:"id"`
	Answer    string `json:"answer"`
	IsCorrect bool   `json:"isCorrect"`
	IsTrue    bool   `json:"isTrue"`
}

// PairOptions controls how Pairs renders each record.
type PairOptions struct {
	StripMarkup    bool
	IncludeKeyword bool
}

// Gradable drops questions tagged ETC, keeping the order of the rest.
func Gradable(questions []dataset.Question) []dataset.Question {
	return lo.Filter(questions, func(q dataset.Question, _ int) bool {
		return q.TitleType.Gradable()
	})
}

// Titles projects questions to their titles.
func Titles(questions []dataset.Question) []string {
	return lo.Map(questions, func(q dataset.Question, _ int) string {
		return q.Title
	})
}

// LabeledTitles renders each question as "[id] [category] title".
func LabeledTitles(questions []dataset.Question) []string {
	return lo.Map(questions, func(q dataset.Question, _ int) string {
		return "[" + strconv.Itoa(q.ID) + "] [" + q.CategoryTitle + "] " + q.Title
	})
}

func answerText(a dataset.Answer, strip bool) string {
	if strip {
		return textnorm.StripParagraphTags(a.Title)
	}
	return a.Title
}

// AnswerTexts flattens the answer titles of all questions.
func AnswerTexts(questions []dataset.Question, strip bool) []string {
	return lo.FlatMap(questions, func(q dataset.Question, _ int) []string {
		return lo.Map(q.AnswerSet, func(a dataset.Answer, _ int) string {
			return answerText(a, strip)
		})
	})
}

// LabeledAnswers renders each answer as "[questionId-answerId] text".
func LabeledAnswers(questions []dataset.Question, strip bool) []string {
	return lo.FlatMap(questions, func(q dataset.Question, _ int) []string {
		return lo.Map(q.AnswerSet, func(a dataset.Answer, _ int) string {
			return "[" + strconv.Itoa(q.ID) + "-" + strconv.Itoa(a.ID) + "] " + answerText(a, strip)
		})
	})
}

// AnswerObjects flattens answers to id/text objects.
func AnswerObjects(questions []dataset.Question, strip bool) []AnswerObject {
	return lo.FlatMap(questions, func(q dataset.Question, _ int) []AnswerObject {
		return lo.Map(q.AnswerSet, func(a dataset.Answer, _ int) AnswerObject {
			return AnswerObject{ID: a.ID, Answer: answerText(a, strip)}
		})
	})
}

// SimplePairs pairs every question title with its raw answer titles.
func SimplePairs(questions []dataset.Question) []SimplePair {
	return lo.Map(questions, func(q dataset.Question, _ int) SimplePair {
		return SimplePair{
			Question: q.Title,
			Answers: lo.Map(q.AnswerSet, func(a dataset.Answer, _ int) string {
				return a.Title
			}),
		}
	})
}

// Pairs builds graded question/answer records.
func Pairs(questions []dataset.Question, opts PairOptions) []Pair {
	return lo.Map(questions, func(q dataset.Question, _ int) Pair {
		p := Pair{
			ID:        q.ID,
			Category1: q.CategoryTitle,
			Question:  q.Title,
			Answers: lo.Map(q.AnswerSet, func(a dataset.Answer, _ int) PairAnswer {
				return PairAnswer{
					ID:        a.ID,
					Answer:    answerText(a, opts.StripMarkup),
					IsCorrect: a.IsCorrect(),
					IsTrue:    a.MatchesPolarity(q.TitleType),
				}
			}),
		}
		if opts.IncludeKeyword {
			p.Category2 = textnorm.ExtractKeyword(q.Title)
		}
		return p
	})
}

// FlattenPairs emits one answer entry per answer, carrying the question and
// its categories along.
func FlattenPairs(pairs []Pair) []dataset.AnswerEntry {
	return lo.FlatMap(pairs, func(p Pair, _ int) []dataset.AnswerEntry {
		return lo.Map(p.Answers, func(a PairAnswer, _ int) dataset.AnswerEntry {
			return dataset.AnswerEntry{
				ID:         a.ID,
				QuestionID: p.ID,
				Category1:  p.Category1,
				Category2:  p.Category2,
				Question:   p.Question,
				Answer:     a.Answer,
				IsCorrect:  lo.ToPtr(a.IsCorrect),
				IsTrue:     lo.ToPtr(a.IsTrue),
			}
		})
	})
}
