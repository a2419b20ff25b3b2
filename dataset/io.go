package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrNotFound indicates the input document does not exist.
	ErrNotFound = errors.New("dataset: input file not found")

	// ErrMalformed indicates the input document is not the expected JSON.
	ErrMalformed = errors.New("dataset: malformed input")
)

// ReadJSON decodes the JSON document at path into a value of type T.
func ReadJSON[T any](path string) (T, error) {
	var v T

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return v, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return v, fmt.Errorf("read file: %w", err)
	}

	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %w", ErrMalformed, path, err)
	}
	return v, nil
}

// LoadQuestions reads the source dataset, a JSON array of questions.
func LoadQuestions(path string) ([]Question, error) {
	return ReadJSON[[]Question](path)
}

// LoadAnswers reads a JSON array of flattened answers.
func LoadAnswers(path string) ([]AnswerEntry, error) {
	return ReadJSON[[]AnswerEntry](path)
}

// Marshal renders v as two-space indented UTF-8 JSON with a trailing newline.
// Markup characters are written as-is rather than escaped, including those
// inside values that marshal themselves, such as ordered maps.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return unescapeHTML(buf.Bytes()), nil
}

var htmlEscapes = map[string]byte{
	`\u003c`: '<',
	`\u003e`: '>',
	`\u0026`: '&',
}

// unescapeHTML turns the \u003c, \u003e and \u0026 escapes of encoded JSON
// back into the characters they stand for. Escaped backslashes are skipped
// whole, so a literal "\\u003c" in a string survives.
func unescapeHTML(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u00`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if i+6 <= len(data) {
			if c, ok := htmlEscapes[string(data[i:i+6])]; ok {
				out = append(out, c)
				i += 5
				continue
			}
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}

// WriteJSON writes v to path, creating the parent directory when missing.
func WriteJSON(path string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
