// Package bench measures how the similarity threshold changes answer
// deduplication on a given answer set.
package bench

import (
	"context"
	"log/slog"

	"github.com/jamesainslie/go-qna/dataset"
	"github.com/jamesainslie/go-qna/dedupe"
)

// SweepResult holds the outcome of one threshold value.
type SweepResult struct {
	Threshold     float64
	Unique        int
	Groups        int
	Removed       int
	RemovalRate   float64 // percent of valid answers
	Comparisons   int
	AvgSimilarity float64
}

// SweepThresholds generates threshold values from min up to, but excluding,
// max with the given step. Values are computed from the index so rounding
// does not accumulate.
func SweepThresholds(min, max, step float64) []float64 {
	if step <= 0 || min >= max {
		return nil
	}
	var thresholds []float64
	for i := 0; ; i++ {
		t := min + float64(i)*step
		if t >= max-step/1e6 {
			break
		}
		thresholds = append(thresholds, t)
	}
	return thresholds
}

// Sweep runs the similarity deduplication once per threshold and returns the
// results in threshold order.
func Sweep(ctx context.Context, answers []dataset.AnswerEntry, thresholds []float64, logger *slog.Logger) ([]SweepResult, error) {
	results := make([]SweepResult, 0, len(thresholds))

	for _, threshold := range thresholds {
		d := dedupe.New(dedupe.WithThreshold(threshold), dedupe.WithLogger(logger))
		res, err := d.Run(ctx, answers)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			Threshold:     threshold,
			Unique:        len(res.Unique),
			Groups:        len(res.Groups),
			Removed:       res.Stats.Removed,
			RemovalRate:   dedupe.Rate(res.Stats.Removed, res.Stats.Valid),
			Comparisons:   res.Stats.Comparisons,
			AvgSimilarity: res.Stats.AvgSimilarity,
		})
	}

	return results, nil
}
