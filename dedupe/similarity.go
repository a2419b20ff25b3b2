package dedupe

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-qna/dataset"
)

// SimilarityGroup describes answers merged into a representative.
type SimilarityGroup struct {
	RepresentativeID     int                   `json:"representativeId"`
	Category1            string                `json:"category1"`
	Category2            string                `json:"category2"`
	Question             string                `json:"question"`
	RepresentativeAnswer string                `json:"representativeAnswer"`
	SimilarityCount      int                   `json:"similarityCount"`
	AvgSimilarity        float64               `json:"avgSimilarity"`
	RemovedAnswers       []dataset.AnswerEntry `json:"removedAnswers"`
}

// Result holds the outcome of a similarity run.
type Result struct {
	// Unique are the surviving answers, most merged first.
	Unique []dataset.AnswerEntry
	// Groups lists every merge, in the same order as Unique.
	Groups []SimilarityGroup
	// Triples are the survivors that absorbed exactly two other answers,
	// ordered by category.
	Triples []dataset.AnswerEntry
	Stats   Stats
}

// Stats summarizes a similarity run.
type Stats struct {
	Input          int
	Valid          int
	VocabularySize int
	Comparisons    int
	Removed        int
	AvgSimilarity  float64
	Elapsed        time.Duration
}

// Deduplicator merges answers whose TF-IDF vectors are close.
type Deduplicator struct {
	threshold float64
	logger    *slog.Logger
}

// New creates a Deduplicator.
func New(opts ...Option) *Deduplicator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Deduplicator{
		threshold: cfg.threshold,
		logger:    cfg.logger,
	}
}

// Threshold returns the similarity threshold in use.
func (d *Deduplicator) Threshold() float64 {
	return d.threshold
}

// Run groups similar answers. Answers that reduce to no tokens are dropped.
// Each unmerged answer in input order absorbs every later unmerged answer at
// or above the threshold; the longest answer of a group represents it.
func (d *Deduplicator) Run(ctx context.Context, answers []dataset.AnswerEntry) (*Result, error) {
	start := time.Now()
	d.logger.Info("finding similar answers", "threshold", d.threshold, "answers", len(answers))

	var (
		valid  []dataset.AnswerEntry
		tokens [][]string
	)
	for _, a := range answers {
		if toks := Tokenize(a.Answer); len(toks) > 0 {
			valid = append(valid, a)
			tokens = append(tokens, toks)
		}
	}

	res := &Result{
		Groups: make([]SimilarityGroup, 0),
		Stats:  Stats{Input: len(answers), Valid: len(valid)},
	}
	if len(valid) <= 1 {
		res.Unique = append(make([]dataset.AnswerEntry, 0, len(valid)), valid...)
		res.Triples = make([]dataset.AnswerEntry, 0)
		res.Stats.Elapsed = time.Since(start)
		return res, nil
	}

	idf := inverseDocumentFrequency(tokens)
	res.Stats.VocabularySize = len(idf)
	vectors := make([]vector, len(valid))
	for i, toks := range tokens {
		vectors[i] = newVector(toks, idf)
	}
	d.logger.Debug("vectorized answers", "valid", len(valid), "vocabulary", len(idf))

	processed := make([]bool, len(valid))
	unique := make([]dataset.AnswerEntry, 0, len(valid))
	for i := range valid {
		if processed[i] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i%100 == 0 {
			d.logger.Debug("grouping", "position", i, "total", len(valid), "groups", len(unique))
		}

		group := []int{i}
		var similarities []float64
		for j := i + 1; j < len(valid); j++ {
			if processed[j] {
				continue
			}
			if skipComparison(valid[i].Answer, valid[j].Answer, tokens[i], tokens[j]) {
				continue
			}
			res.Stats.Comparisons++
			if sim := cosine(vectors[i], vectors[j]); sim >= d.threshold {
				group = append(group, j)
				similarities = append(similarities, sim)
				processed[j] = true
			}
		}
		processed[i] = true

		rep := group[0]
		for _, idx := range group[1:] {
			if utf8.RuneCountInString(valid[idx].Answer) > utf8.RuneCountInString(valid[rep].Answer) {
				rep = idx
			}
		}
		representative := valid[rep]

		if len(group) > 1 {
			avg := lo.Sum(similarities) / float64(len(similarities))
			representative.SimilarityCount = len(group)
			representative.AvgSimilarity = lo.ToPtr(avg)

			removed := make([]dataset.AnswerEntry, 0, len(group)-1)
			for _, idx := range group {
				if idx != rep {
					removed = append(removed, valid[idx])
				}
			}
			res.Groups = append(res.Groups, SimilarityGroup{
				RepresentativeID:     representative.ID,
				Category1:            representative.Category1,
				Category2:            representative.Category2,
				Question:             representative.Question,
				RepresentativeAnswer: representative.Answer,
				SimilarityCount:      len(group),
				AvgSimilarity:        avg,
				RemovedAnswers:       removed,
			})
			res.Stats.Removed += len(removed)
		}
		unique = append(unique, representative)
	}

	slices.SortStableFunc(unique, func(a, b dataset.AnswerEntry) int {
		return cmp.Or(
			cmp.Compare(b.SimilarityCount, a.SimilarityCount),
			strings.Compare(a.Category1, b.Category1),
			strings.Compare(a.Category2, b.Category2),
		)
	})
	slices.SortStableFunc(res.Groups, func(a, b SimilarityGroup) int {
		return cmp.Or(
			cmp.Compare(b.SimilarityCount, a.SimilarityCount),
			strings.Compare(a.Category1, b.Category1),
			strings.Compare(a.Category2, b.Category2),
		)
	})

	triples := lo.Filter(unique, func(a dataset.AnswerEntry, _ int) bool {
		return a.SimilarityCount == 3
	})
	slices.SortStableFunc(triples, func(a, b dataset.AnswerEntry) int {
		return cmp.Or(
			strings.Compare(a.Category1, b.Category1),
			strings.Compare(a.Category2, b.Category2),
		)
	})

	res.Unique = unique
	res.Triples = triples
	if len(res.Groups) > 0 {
		res.Stats.AvgSimilarity = lo.SumBy(res.Groups, func(g SimilarityGroup) float64 {
			return g.AvgSimilarity
		}) / float64(len(res.Groups))
	}
	res.Stats.Elapsed = time.Since(start)

	d.logger.Info("similarity grouping finished",
		"comparisons", res.Stats.Comparisons,
		"unique", len(res.Unique),
		"groups", len(res.Groups),
		"removed", res.Stats.Removed,
		"elapsed", res.Stats.Elapsed,
	)
	return res, nil
}

// Rate returns part/whole as a percentage, or 0 for an empty whole.
func Rate(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
