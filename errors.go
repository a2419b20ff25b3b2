package qna

import (
	"errors"

	"github.com/jamesainslie/go-qna/dataset"
	"github.com/jamesainslie/go-qna/transform"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInputNotFound indicates the source dataset does not exist.
	ErrInputNotFound = dataset.ErrNotFound

	// ErrInvalidInput indicates the source dataset is not a JSON array of
	// question records.
	ErrInvalidInput = dataset.ErrMalformed

	// ErrInvalidSpec indicates an output names an unknown kind, format or
	// nesting depth.
	ErrInvalidSpec = transform.ErrInvalidSpec

	// ErrInvalidConfig indicates the pipeline configuration failed validation.
	ErrInvalidConfig = errors.New("qna: invalid configuration")
)
