// Package grading implements the exam grading engine: answer normalization,
// per-question checking, test aggregation, CEFR band scoring and writing
// word-count validation. Every function here is pure; grading never aborts a
// submission because one question or answer is malformed.
package grading

import "strings"

// Normalize canonicalizes a raw answer for comparison: leading/trailing
// whitespace is trimmed, the text is lower-cased and internal whitespace runs
// collapse to a single space. Idempotent; empty input stays empty.
func Normalize(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
