package grading

import (
	"sort"
	"strings"

	"github.com/rafkix/cefr-exam-service/internal/models"
)

// Check reports whether a submitted answer matches the question's key.
// It fails closed: a nil question, empty submission, missing key or a type
// that cannot be auto-graded all yield false, never an error.
func Check(q *models.Question, submitted string) bool {
	if q == nil || !q.Type.AutoGradable() {
		return false
	}
	if Normalize(submitted) == "" || Normalize(q.CorrectAnswer) == "" {
		return false
	}

	switch q.Type {
	case models.GapFill:
		return checkGapFill(q, submitted)
	case models.MultipleSelect:
		return checkMultipleSelect(q.CorrectAnswer, submitted)
	case models.MultipleChoice,
		models.TrueFalseNotGiven,
		models.TextMatch,
		models.HeadingsMatch,
		models.Matching,
		models.MapLabeling,
		models.SentenceCompletion,
		models.ShortAnswer:
		return checkExact(q, submitted)
	case models.Essay, models.Speaking:
		return false
	}
	return false
}

// checkExact compares normalized strings. When the question carries options,
// the submission may be an option's display label or underlying value rather
// than the key token itself; resolve it to the option's canonical value
// first, and only fall back to direct equality when nothing resolves.
func checkExact(q *models.Question, submitted string) bool {
	key := Normalize(q.CorrectAnswer)
	sub := Normalize(submitted)

	for _, opt := range q.OptionList() {
		if Normalize(opt.Value) == sub || Normalize(opt.Label) == sub {
			return Normalize(opt.Value) == key
		}
	}
	return sub == key
}

// checkGapFill accepts any of the key's alternatives ("colour/color",
// "bus; train"). A declared word limit rejects over-long submissions before
// correctness is considered.
func checkGapFill(q *models.Question, submitted string) bool {
	if q.WordLimit != nil && len(strings.Fields(submitted)) > *q.WordLimit {
		return false
	}

	sub := Normalize(submitted)
	for _, alt := range splitAlternatives(q.CorrectAnswer) {
		if Normalize(alt) == sub {
			return true
		}
	}
	return false
}

func splitAlternatives(key string) []string {
	return strings.FieldsFunc(key, func(r rune) bool {
		return r == '/' || r == ';'
	})
}

// checkMultipleSelect compares comma-separated selections independent of
// order. Tokens are trimmed, sorted and rejoined; duplicates are kept as
// given so an over-selected duplicate still counts as wrong.
func checkMultipleSelect(key, submitted string) bool {
	return canonicalSelection(submitted) == canonicalSelection(key)
}

func canonicalSelection(s string) string {
	tokens := strings.Split(s, ",")
	for i := range tokens {
		tokens[i] = Normalize(tokens[i])
	}
	sort.Strings(tokens)
	return strings.Join(tokens, ",")
}
