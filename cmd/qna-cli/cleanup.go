package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-qna/dataset"
	"github.com/jamesainslie/go-qna/dedupe"
	"github.com/jamesainslie/go-qna/internal/bench"
)

// cleanupFlags are shared by the answer cleanup commands.
type cleanupFlags struct {
	input     string
	outputDir string
}

func (f *cleanupFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "flattened answers JSON file")
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", ".", "directory for the result files")
	_ = cmd.MarkFlagRequired("input")
}

func (f *cleanupFlags) path(name string) string {
	return filepath.Join(f.outputDir, name)
}

// writeAll writes each document in order, stopping at the first failure.
func writeAll(docs ...namedDoc) error {
	for _, d := range docs {
		if err := dataset.WriteJSON(d.path, d.value); err != nil {
			return err
		}
	}
	return nil
}

type namedDoc struct {
	path  string
	value any
}

func printRule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", 50))
}

func newFilterAnswersCmd(a *app) *cobra.Command {
	var flags cleanupFlags

	cmd := &cobra.Command{
		Use:   "filter-answers",
		Short: "Drop answers without content such as consonant lists or bare counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			answers, err := dataset.LoadAnswers(flags.input)
			if err != nil {
				return err
			}

			kept, removed := dedupe.Filter(answers)
			a.logger.Info("filtered answers", "input", len(answers), "kept", len(kept), "removed", len(removed))

			if err := writeAll(
				namedDoc{flags.path("answers_filtered.json"), kept},
				namedDoc{flags.path("answers_removed.json"), removed},
			); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printRule(w)
			fmt.Fprintf(w, "Input:   %d\n", len(answers))
			fmt.Fprintf(w, "Kept:    %d\n", len(kept))
			fmt.Fprintf(w, "Removed: %d (%.2f%%)\n", len(removed), dedupe.Rate(len(removed), len(answers)))
			printRule(w)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newDedupeCmd(a *app) *cobra.Command {
	var flags cleanupFlags

	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Collapse answers with identical text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			answers, err := dataset.LoadAnswers(flags.input)
			if err != nil {
				return err
			}

			unique, removed := dedupe.RemoveDuplicates(answers)
			dropped := dedupe.RemovedCount(removed)
			a.logger.Info("removed exact duplicates", "input", len(answers), "unique", len(unique), "removed", dropped)

			if err := writeAll(
				namedDoc{flags.path("answers_unique.json"), unique},
				namedDoc{flags.path("answers_removed.json"), removed},
			); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printRule(w)
			fmt.Fprintf(w, "Input:            %d\n", len(answers))
			fmt.Fprintf(w, "Unique:           %d\n", len(unique))
			fmt.Fprintf(w, "Duplicate groups: %d\n", len(removed))
			fmt.Fprintf(w, "Removed:          %d (%.2f%%)\n", dropped, dedupe.Rate(dropped, len(answers)))
			printRule(w)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newSimilarCmd(a *app) *cobra.Command {
	var (
		flags     cleanupFlags
		threshold float64
	)

	cmd := &cobra.Command{
		Use:   "similar",
		Short: "Merge answers whose TF-IDF cosine similarity reaches the threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.Similarity.Threshold
			}
			if threshold <= 0 || threshold > 1 {
				return fmt.Errorf("threshold %.2f out of range (0, 1]", threshold)
			}

			answers, err := dataset.LoadAnswers(flags.input)
			if err != nil {
				return err
			}
			kept, meaningless := dedupe.Filter(answers)
			a.logger.Info("filtered answers", "input", len(answers), "removed", len(meaningless))

			d := dedupe.New(dedupe.WithThreshold(threshold), dedupe.WithLogger(a.logger))
			res, err := d.Run(cmd.Context(), kept)
			if err != nil {
				return err
			}

			if err := writeAll(
				namedDoc{flags.path("answers_similarity_unique.json"), res.Unique},
				namedDoc{flags.path("answers_similarity_removed.json"), res.Groups},
				namedDoc{flags.path("answers_similarity_count_3.json"), res.Triples},
			); err != nil {
				return err
			}

			s := res.Stats
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Similarity Results (threshold=%.2f)\n", d.Threshold())
			printRule(w)
			fmt.Fprintf(w, "%-22s %d\n", "Input", len(answers))
			fmt.Fprintf(w, "%-22s %d\n", "Meaningless", len(meaningless))
			fmt.Fprintf(w, "%-22s %d\n", "Valid", s.Valid)
			fmt.Fprintf(w, "%-22s %d\n", "Vocabulary", s.VocabularySize)
			fmt.Fprintf(w, "%-22s %d\n", "Comparisons", s.Comparisons)
			fmt.Fprintf(w, "%-22s %d\n", "Unique", len(res.Unique))
			fmt.Fprintf(w, "%-22s %d\n", "Groups", len(res.Groups))
			fmt.Fprintf(w, "%-22s %d (%.2f%%)\n", "Removed", s.Removed, dedupe.Rate(s.Removed, s.Valid))
			fmt.Fprintf(w, "%-22s %d\n", "Groups of three", len(res.Triples))
			fmt.Fprintf(w, "%-22s %.4f\n", "Avg similarity", s.AvgSimilarity)
			fmt.Fprintf(w, "%-22s %s\n", "Elapsed", s.Elapsed.Round(time.Millisecond))
			printRule(w)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", dedupe.DefaultThreshold, "cosine similarity threshold (overrides config)")
	return cmd
}

func newSweepCmd(a *app) *cobra.Command {
	var (
		input                         string
		sweepMin, sweepMax, sweepStep float64
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare similarity deduplication across a range of thresholds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			thresholds := bench.SweepThresholds(sweepMin, sweepMax, sweepStep)
			if len(thresholds) == 0 {
				return fmt.Errorf("empty threshold range [%.2f, %.2f) step %.2f", sweepMin, sweepMax, sweepStep)
			}

			answers, err := dataset.LoadAnswers(input)
			if err != nil {
				return err
			}
			kept, _ := dedupe.Filter(answers)

			results, err := bench.Sweep(cmd.Context(), kept, thresholds, a.logger)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Threshold Sweep Results (%d answers)\n", len(kept))
			printRule(w)
			fmt.Fprintf(w, "%-8s %-8s %-8s %-8s %-8s\n", "Thresh", "Unique", "Groups", "Removed", "AvgSim")
			for _, r := range results {
				fmt.Fprintf(w, "%-8.2f %-8d %-8d %-8s %-8.4f\n",
					r.Threshold, r.Unique, r.Groups, fmt.Sprintf("%.1f%%", r.RemovalRate), r.AvgSimilarity)
			}
			printRule(w)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "flattened answers JSON file")
	cmd.Flags().Float64Var(&sweepMin, "min", 0.5, "smallest threshold")
	cmd.Flags().Float64Var(&sweepMax, "max", 1.0, "threshold to stop before")
	cmd.Flags().Float64Var(&sweepStep, "step", 0.05, "threshold step")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
