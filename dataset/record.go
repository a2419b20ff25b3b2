// Package dataset defines the quiz record schema and reads and writes the
// JSON documents the transforms operate on.
package dataset

import "encoding/json"

// TitleType is the polarity tag of a question.
type TitleType string

const (
	// Positive questions ask for the true statement; an "O" answer is correct.
	Positive TitleType = "POSITIVE"
	// Negative questions ask for the false statement; an "X" answer is correct.
	Negative TitleType = "NEGATIVE"
	// Etc marks a question that cannot be graded.
	Etc TitleType = "ETC"
)

// Gradable reports whether questions of this type take part in grading.
func (t TitleType) Gradable() bool {
	return t != Etc
}

// AnswerKind is the two-valued marker carried by every answer.
type AnswerKind string

const (
	KindO AnswerKind = "O"
	KindX AnswerKind = "X"
)

// Question is one record of the source dataset.
type Question struct {
	AnswerRate     float64         `json:"answerRate"`
	ID             int             `json:"id"`
	Order          int             `json:"order"`
	Title          string          `json:"title"`
	Text           string          `json:"text"`
	TextCommentary *string         `json:"textCommentary"`
	FullCommentary string          `json:"fullCommentary"`
	ReviewType     string          `json:"reviewType"`
	HasSmartNote   bool            `json:"hasSmartNote"`
	TitleType      TitleType       `json:"titleType"`
	Solve          string          `json:"solve"`
	CategoryTitle  string          `json:"categoryTitle"`
	AnswerSet      []Answer        `json:"answerSet"`
	History        json.RawMessage `json:"history,omitempty"`
}

// Answer is one choice of a question.
type Answer struct {
	QuestionID    int             `json:"questionId"`
	ID            int             `json:"id"`
	Order         int             `json:"order"`
	Title         string          `json:"title"`
	Commentary    string          `json:"commentary"`
	AnswerKind    AnswerKind      `json:"answerKind"`
	BookmarkCount int             `json:"bookmarkCount"`
	BookmarkRate  float64         `json:"bookmarkRate"`
	History       json.RawMessage `json:"history,omitempty"`
}

// IsCorrect reports whether the answer carries the "O" marker.
func (a Answer) IsCorrect() bool {
	return a.AnswerKind == KindO
}

// MatchesPolarity reports whether the answer is the expected one for a
// question of polarity t: "O" under POSITIVE, "X" otherwise.
func (a Answer) MatchesPolarity(t TitleType) bool {
	if t == Positive {
		return a.AnswerKind == KindO
	}
	return a.AnswerKind == KindX
}

// AnswerEntry is a flattened answer. It is the record the answer cleanup
// passes read and write, so the annotation fields are optional.
type AnswerEntry struct {
	ID         int    `json:"id"`
	QuestionID int    `json:"questionId,omitempty"`
	Category1  string `json:"category1,omitempty"`
	Category2  string `json:"category2,omitempty"`
	Category3  string `json:"category3,omitempty"`
	Question   string `json:"question,omitempty"`
	Answer     string `json:"answer"`
	IsCorrect  *bool  `json:"isCorrect,omitempty"`
	IsTrue     *bool  `json:"isTrue,omitempty"`

	DuplicateCount  int      `json:"duplicateCount,omitempty"`
	SimilarityCount int      `json:"similarityCount,omitempty"`
	AvgSimilarity   *float64 `json:"avgSimilarity,omitempty"`
}
