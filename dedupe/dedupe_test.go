package dedupe

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-qna/dataset"
)

func entry(id int, answer string) dataset.AnswerEntry {
	return dataset.AnswerEntry{ID: id, Answer: answer}
}

func ids(entries []dataset.AnswerEntry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMeaningless(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{name: "consonant list", in: "ㄱ, ㄴ, ㄷ", want: true},
		{name: "middle dot list", in: "ㄱㆍㄴㆍㄹ", want: true},
		{name: "labeled consonant list", in: "[12-3] ㄱ, ㄷ", want: true},
		{name: "bare count", in: "3개", want: true},
		{name: "placeholder count", in: "xx개", want: true},
		{name: "empty after label", in: "[1] ", want: true},
		{name: "empty", in: "", want: true},
		{name: "sentence", in: "세포 호흡은 미토콘드리아에서 일어난다.", want: false},
		{name: "count in sentence", in: "3개의 세포", want: false},
		{name: "labeled sentence", in: "[4-1] 엽록체", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Meaningless(tc.in))
		})
	}
}

func TestFilter(t *testing.T) {
	answers := []dataset.AnswerEntry{
		entry(1, "ㄱ, ㄴ"),
		entry(2, "광합성"),
		entry(3, "5개"),
		entry(4, "호흡"),
	}

	kept, removed := Filter(answers)

	assert.Equal(t, []int{2, 4}, ids(kept))
	assert.Equal(t, []int{1, 3}, ids(removed))
}

func TestRemoveDuplicates(t *testing.T) {
	answers := []dataset.AnswerEntry{
		entry(1, "A"),
		entry(2, "B"),
		entry(3, " A "),
		entry(4, "C"),
		entry(5, "B"),
		entry(6, "A"),
	}

	unique, removed := RemoveDuplicates(answers)

	require.Equal(t, []int{1, 2, 4}, ids(unique))
	assert.Equal(t, 3, unique[0].DuplicateCount)
	assert.Equal(t, 2, unique[1].DuplicateCount)
	assert.Zero(t, unique[2].DuplicateCount)

	require.Len(t, removed, 2)
	assert.Equal(t, 1, removed[0].SurvivorID)
	assert.Equal(t, "A", removed[0].SurvivorAnswer)
	assert.Equal(t, []int{3, 6}, ids(removed[0].Duplicates))
	assert.Equal(t, []int{5}, ids(removed[1].Duplicates))
	assert.Equal(t, 3, RemovedCount(removed))

	assert.Zero(t, answers[0].DuplicateCount, "input must not be modified")
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "numbers masked and ending simplified",
			in:   "<p>1999년에 2번 문제는 20% 증가했습니다</p>",
			want: []string{"YEAR년에", "NUMBER번", "문제는", "PERCENT", "증가했다"},
		},
		{
			name: "punctuation and short tokens dropped",
			in:   "A, B. 그리고 C",
			want: []string{"그리고"},
		},
		{name: "empty", in: "", want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Tokenize(tc.in))
		})
	}
}

func TestCosine(t *testing.T) {
	docs := [][]string{{"세포", "호흡"}, {"세포", "호흡"}, {"광합성", "엽록체"}}
	idf := inverseDocumentFrequency(docs)

	a := newVector(docs[0], idf)
	b := newVector(docs[1], idf)
	c := newVector(docs[2], idf)

	assert.InDelta(t, 1.0, cosine(a, b), 1e-9)
	assert.InDelta(t, 0.0, cosine(a, c), 1e-9)
	assert.Zero(t, cosine(vector{}, a))
}

func TestSkipComparison(t *testing.T) {
	assert.True(t, skipComparison("짧다", "이것은 아주 아주 긴 문장입니다", []string{"짧다"}, []string{"이것은", "아주", "아주", "문장이다"}))
	assert.True(t, skipComparison("세포 호흡", "광합성 과정", []string{"세포", "호흡"}, []string{"광합성", "과정"}))
	assert.False(t, skipComparison("세포 호흡", "세포 호흡!", []string{"세포", "호흡"}, []string{"세포", "호흡"}))
}

func TestDeduplicator_Run(t *testing.T) {
	answers := []dataset.AnswerEntry{
		{ID: 1, Category1: "생물", Category2: "세포", Answer: "세포 호흡은 미토콘드리아에서 일어난다"},
		{ID: 2, Category1: "생물", Category2: "세포", Answer: "세포 호흡은 미토콘드리아에서 일어난다!!"},
		{ID: 3, Category1: "생물", Category2: "광합성", Answer: "광합성은 엽록체에서 일어나는 과정이다"},
		{ID: 4, Answer: "ㄱ"},
	}

	res, err := New(WithLogger(quietLogger())).Run(context.Background(), answers)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Stats.Input)
	assert.Equal(t, 3, res.Stats.Valid, "answers without tokens are dropped")
	require.Equal(t, []int{2, 3}, ids(res.Unique))
	assert.Equal(t, 2, res.Unique[0].SimilarityCount)
	require.NotNil(t, res.Unique[0].AvgSimilarity)
	assert.InDelta(t, 1.0, *res.Unique[0].AvgSimilarity, 1e-9)
	assert.Zero(t, res.Unique[1].SimilarityCount)

	require.Len(t, res.Groups, 1)
	g := res.Groups[0]
	assert.Equal(t, 2, g.RepresentativeID, "longest answer represents the group")
	assert.Equal(t, []int{1}, ids(g.RemovedAnswers))
	assert.Equal(t, 1, res.Stats.Removed)
	assert.Empty(t, res.Triples)
}

func TestDeduplicator_Triples(t *testing.T) {
	answers := []dataset.AnswerEntry{
		{ID: 1, Category1: "역사", Answer: "훈민정음은 세종 때 창제되었다"},
		{ID: 2, Category1: "역사", Answer: "훈민정음은 세종 때 창제되었다"},
		{ID: 3, Category1: "역사", Answer: "훈민정음은 세종 때 창제되었다"},
		{ID: 4, Category1: "생물", Answer: "광합성은 엽록체에서 일어나는 과정이다"},
	}

	res, err := New(WithLogger(quietLogger()), WithThreshold(0.9)).Run(context.Background(), answers)
	require.NoError(t, err)

	require.Len(t, res.Triples, 1)
	assert.Equal(t, 1, res.Triples[0].ID)
	assert.Equal(t, 3, res.Triples[0].SimilarityCount)
	assert.Equal(t, 2, res.Stats.Removed)
}

func TestDeduplicator_SingleValid(t *testing.T) {
	res, err := New(WithLogger(quietLogger())).Run(context.Background(), []dataset.AnswerEntry{entry(1, "광합성 과정")})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(res.Unique))
	assert.Empty(t, res.Groups)
}

func TestDeduplicator_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	answers := []dataset.AnswerEntry{entry(1, "세포 호흡"), entry(2, "광합성 과정")}
	_, err := New(WithLogger(quietLogger())).Run(ctx, answers)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithThreshold_IgnoresOutOfRange(t *testing.T) {
	assert.Equal(t, DefaultThreshold, New(WithThreshold(0)).Threshold())
	assert.Equal(t, DefaultThreshold, New(WithThreshold(1.5)).Threshold())
	assert.Equal(t, 0.5, New(WithThreshold(0.5)).Threshold())
}

func TestRate(t *testing.T) {
	assert.Zero(t, Rate(3, 0))
	assert.InDelta(t, 25.0, Rate(1, 4), 1e-9)
}
