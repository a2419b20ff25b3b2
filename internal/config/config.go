// Package config loads the pipeline configuration: built-in defaults, then an
// optional YAML file, then QNA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	qna "github.com/jamesainslie/go-qna"
	"github.com/jamesainslie/go-qna/dedupe"
	"github.com/jamesainslie/go-qna/transform"
)

// DefaultPath is read when neither a path nor QNA_CONFIG is given and the
// file exists.
const DefaultPath = "configs/qna.yaml"

// Config aggregates everything a pipeline run needs.
type Config struct {
	Input      string           `yaml:"input" validate:"required"`
	OutputDir  string           `yaml:"outputDir" validate:"required"`
	Locale     string           `yaml:"locale" validate:"required"`
	Logging    LoggingConfig    `yaml:"logging"`
	Similarity SimilarityConfig `yaml:"similarity"`
	Outputs    []OutputConfig   `yaml:"outputs" validate:"required,min=1,dive"`
}

// LoggingConfig controls the run logger.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=text json"`
	File   string `yaml:"file"`
}

// SimilarityConfig controls the TF-IDF answer deduplication.
type SimilarityConfig struct {
	Threshold float64 `yaml:"threshold" validate:"gt=0,lte=1"`
}

// OutputConfig describes one derived document.
type OutputConfig struct {
	Name              string `yaml:"name" validate:"required"`
	File              string `yaml:"file" validate:"required"`
	Kind              string `yaml:"kind" validate:"required,oneof=questions answers pairs simple-pairs flat-answers category-count"`
	Format            string `yaml:"format" validate:"omitempty,oneof=text labeled object"`
	FilterNonGradable bool   `yaml:"filterNonGradable"`
	StripMarkup       bool   `yaml:"stripMarkup"`
	IncludeKeyword    bool   `yaml:"includeKeyword"`
	SortByCategory    bool   `yaml:"sortByCategory"`
	NestingDepth      int    `yaml:"nestingDepth" validate:"min=0,max=2"`
	Locale            string `yaml:"locale"`
}

// Spec converts the entry into the transform it describes.
func (o OutputConfig) Spec() transform.Spec {
	return transform.Spec{
		Kind:              transform.Kind(o.Kind),
		Format:            transform.Format(o.Format),
		FilterNonGradable: o.FilterNonGradable,
		StripMarkup:       o.StripMarkup,
		IncludeKeyword:    o.IncludeKeyword,
		SortByCategory:    o.SortByCategory,
		NestingDepth:      o.NestingDepth,
		Locale:            o.Locale,
	}
}

// PipelineOutputs returns the configured outputs in pipeline form.
func (c *Config) PipelineOutputs() []qna.Output {
	outputs := make([]qna.Output, 0, len(c.Outputs))
	for _, o := range c.Outputs {
		outputs = append(outputs, qna.Output{Name: o.Name, File: o.File, Spec: o.Spec()})
	}
	return outputs
}

// Load builds the configuration. path takes precedence over QNA_CONFIG, which
// takes precedence over DefaultPath. A .env file in the working directory is
// loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv("QNA_CONFIG")
	}
	if path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(DefaultPath); err == nil {
		if err := hydrateFromFile(cfg, DefaultPath); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: parse %s: %w", qna.ErrInvalidConfig, path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("QNA_INPUT"); v != "" {
		cfg.Input = v
	}
	if v := os.Getenv("QNA_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("QNA_LOCALE"); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv("QNA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("QNA_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("QNA_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	if v := os.Getenv("QNA_SIMILARITY_THRESHOLD"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: QNA_SIMILARITY_THRESHOLD: %w", qna.ErrInvalidConfig, err)
		}
		cfg.Similarity.Threshold = parsed
	}
	return nil
}

func defaultConfig() *Config {
	cfg := &Config{
		Input:     "data/input.json",
		OutputDir: "data/output",
		Locale:    transform.DefaultLocale,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Similarity: SimilarityConfig{
			Threshold: dedupe.DefaultThreshold,
		},
	}
	for _, out := range qna.DefaultOutputs() {
		cfg.Outputs = append(cfg.Outputs, OutputConfig{
			Name:              out.Name,
			File:              out.File,
			Kind:              string(out.Spec.Kind),
			Format:            string(out.Spec.Format),
			FilterNonGradable: out.Spec.FilterNonGradable,
			StripMarkup:       out.Spec.StripMarkup,
			IncludeKeyword:    out.Spec.IncludeKeyword,
			SortByCategory:    out.Spec.SortByCategory,
			NestingDepth:      out.Spec.NestingDepth,
		})
	}
	return cfg
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and that every output describes a
// transform that can be built.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("%w: %s failed %q", qna.ErrInvalidConfig, first.Namespace(), first.Tag())
		}
		return fmt.Errorf("%w: %w", qna.ErrInvalidConfig, err)
	}

	seen := make(map[string]bool, len(c.Outputs))
	for _, o := range c.Outputs {
		if seen[o.File] {
			return fmt.Errorf("%w: file %s written by more than one output", qna.ErrInvalidConfig, o.File)
		}
		seen[o.File] = true
		if err := o.Spec().Validate(); err != nil {
			return fmt.Errorf("%w: output %q: %w", qna.ErrInvalidConfig, o.Name, err)
		}
	}
	return nil
}
