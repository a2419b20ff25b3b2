package dedupe

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

// Applied in order. Numbers are masked before punctuation is dropped so
// "3." and "20%" survive as tokens.
var tokenRewrites = []rewrite{
	{regexp.MustCompile(`<[^>]+>`), ""},
	{regexp.MustCompile(`\d{4}년`), "YEAR년"},
	{regexp.MustCompile(`\d+%`), "PERCENT"},
	{regexp.MustCompile(`\d+번`), "NUMBER번"},
	{regexp.MustCompile(`\d+\.`), "NUMBER."},
	{regexp.MustCompile(`[^\p{L}\p{N}_\s]`), " "},
	{regexp.MustCompile(`\s+`), " "},
	{regexp.MustCompile(`입니다$`), "이다"},
	{regexp.MustCompile(`습니다$`), "다"},
	{regexp.MustCompile(`에서$`), "에"},
}

// Tokenize reduces an answer to the tokens compared for similarity. Tokens of
// a single character are dropped.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	for _, rw := range tokenRewrites {
		text = rw.re.ReplaceAllString(text, rw.repl)
	}

	var tokens []string
	for _, tok := range strings.Fields(text) {
		if utf8.RuneCountInString(tok) > 1 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// termFrequency returns each token's share of the document.
func termFrequency(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	if len(tokens) == 0 {
		return tf
	}
	for _, tok := range tokens {
		tf[tok]++
	}
	total := float64(len(tokens))
	for tok := range tf {
		tf[tok] /= total
	}
	return tf
}

// inverseDocumentFrequency returns ln(N/df) for every token of the corpus.
func inverseDocumentFrequency(docs [][]string) map[string]float64 {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, tok := range doc {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for tok, count := range df {
		idf[tok] = math.Log(n / float64(count))
	}
	return idf
}

// vector is a sparse TF-IDF vector with its precomputed magnitude.
type vector struct {
	weights   map[string]float64
	magnitude float64
}

func newVector(tokens []string, idf map[string]float64) vector {
	tf := termFrequency(tokens)
	v := vector{weights: make(map[string]float64, len(tf))}
	var sum float64
	for tok, f := range tf {
		w := f * idf[tok]
		v.weights[tok] = w
		sum += w * w
	}
	v.magnitude = math.Sqrt(sum)
	return v
}

// cosine returns the cosine similarity of a and b, or 0 when either is a
// zero vector.
func cosine(a, b vector) float64 {
	if a.magnitude == 0 || b.magnitude == 0 {
		return 0
	}
	if len(a.weights) > len(b.weights) {
		a, b = b, a
	}
	var dot float64
	for tok, w := range a.weights {
		dot += w * b.weights[tok]
	}
	return dot / (a.magnitude * b.magnitude)
}

const (
	maxLengthRatio = 3.0
	maxTokenRatio  = 2.5
	minTokenShare  = 0.3
)

// skipComparison rules out pairs that cannot reach the threshold: very
// different lengths, very different token counts, or little token overlap.
func skipComparison(answer1, answer2 string, tokens1, tokens2 []string) bool {
	len1, len2 := utf8.RuneCountInString(answer1), utf8.RuneCountInString(answer2)
	if len1 == 0 || len2 == 0 {
		return true
	}
	if ratio(len1, len2) > maxLengthRatio {
		return true
	}

	if len(tokens1) == 0 || len(tokens2) == 0 {
		return true
	}
	if ratio(len(tokens1), len(tokens2)) > maxTokenRatio {
		return true
	}

	set1 := make(map[string]struct{}, len(tokens1))
	for _, tok := range tokens1 {
		set1[tok] = struct{}{}
	}
	union := len(set1)
	common := 0
	seen := make(map[string]struct{}, len(tokens2))
	for _, tok := range tokens2 {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		if _, ok := set1[tok]; ok {
			common++
		} else {
			union++
		}
	}
	return union > 0 && float64(common)/float64(union) < minTokenShare
}

func ratio(a, b int) float64 {
	return float64(max(a, b)) / float64(min(a, b))
}
