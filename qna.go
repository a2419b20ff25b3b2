package qna

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jamesainslie/go-qna/dataset"
	"github.com/jamesainslie/go-qna/transform"
)

// Output is one derived document: the transform that builds it and the file
// it is written to, relative to the output directory.
type Output struct {
	Name string
	File string
	Spec transform.Spec
}

// DefaultOutputs returns the documents produced when nothing else is
// configured: the titles and the answers (as stripped {id, answer} objects) of
// every gradable question, plus the gradable questions as category-sorted
// pairs carrying the title keyword.
func DefaultOutputs() []Output {
	return []Output{
		{
			Name: "questions",
			File: "questions.json",
			Spec: transform.Spec{
				Kind:              transform.KindQuestions,
				Format:            transform.FormatText,
				FilterNonGradable: true,
			},
		},
		{
			Name: "answers",
			File: "answers.json",
			Spec: transform.Spec{
				Kind:              transform.KindAnswers,
				Format:            transform.FormatObject,
				FilterNonGradable: true,
				StripMarkup:       true,
			},
		},
		{
			Name: "qna-pairs",
			File: "qna_pairs.json",
			Spec: transform.Spec{
				Kind:              transform.KindPairs,
				FilterNonGradable: true,
				StripMarkup:       true,
				IncludeKeyword:    true,
				SortByCategory:    true,
			},
		},
	}
}

// Pipeline derives a fixed set of documents from one dataset file.
type Pipeline struct {
	input     string
	outputDir string
	outputs   []Output
	logger    *slog.Logger
}

// New creates a Pipeline reading input and writing outputs under outputDir.
func New(input, outputDir string, outputs []Output, opts ...Option) (*Pipeline, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, err := os.Stat(input); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, input)
		}
		return nil, fmt.Errorf("checking input file: %w", err)
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("%w: no outputs", ErrInvalidSpec)
	}

	resolved := make([]Output, len(outputs))
	seen := make(map[string]string, len(outputs))
	for i, out := range outputs {
		if out.File == "" {
			return nil, fmt.Errorf("%w: output %q has no file", ErrInvalidSpec, out.Name)
		}
		if prev, ok := seen[out.File]; ok {
			return nil, fmt.Errorf("%w: outputs %q and %q both write %s", ErrInvalidSpec, prev, out.Name, out.File)
		}
		seen[out.File] = out.Name

		if out.Spec.Locale == "" {
			out.Spec.Locale = cfg.locale
		}
		if err := out.Spec.Validate(); err != nil {
			return nil, fmt.Errorf("output %q: %w", out.Name, err)
		}
		resolved[i] = out
	}

	return &Pipeline{
		input:     input,
		outputDir: outputDir,
		outputs:   resolved,
		logger:    cfg.logger,
	}, nil
}

// Run loads the dataset and writes every output. It stops at the first
// error, or before the next output once ctx is done, and returns the paths
// written so far.
func (p *Pipeline) Run(ctx context.Context) ([]string, error) {
	start := time.Now()

	questions, err := dataset.LoadQuestions(p.input)
	if err != nil {
		return nil, err
	}
	p.logger.Info("loaded dataset", "input", p.input, "questions", len(questions))

	written := make([]string, 0, len(p.outputs))
	for _, out := range p.outputs {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		doc, err := transform.Apply(questions, out.Spec)
		if err != nil {
			return written, fmt.Errorf("output %q: %w", out.Name, err)
		}

		path := filepath.Join(p.outputDir, out.File)
		if err := dataset.WriteJSON(path, doc); err != nil {
			return written, fmt.Errorf("output %q: %w", out.Name, err)
		}
		written = append(written, path)
		p.logger.Info("wrote output", "name", out.Name, "kind", out.Spec.Kind, "path", path)
	}

	p.logger.Info("pipeline finished", "outputs", len(written), "elapsed", time.Since(start))
	return written, nil
}

// Outputs returns the resolved outputs in run order.
func (p *Pipeline) Outputs() []Output {
	out := make([]Output, len(p.outputs))
	copy(out, p.outputs)
	return out
}
