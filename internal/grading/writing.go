package grading

import (
	"strings"

	"github.com/rafkix/cefr-exam-service/internal/models"
)

// WordCount counts non-empty whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ValidateWriting checks a free-text submission against a task's word-count
// bounds. Unset bounds always pass. This gates or flags a submission; it
// never grades content.
func ValidateWriting(task *models.WritingTask, text string) models.WritingValidation {
	count := WordCount(text)

	v := models.WritingValidation{
		WordCount:      count,
		MeetsMinWords:  true,
		WithinMaxWords: true,
	}
	if task == nil {
		return v
	}
	if task.MinWords != nil {
		v.MeetsMinWords = count >= *task.MinWords
	}
	if task.MaxWords != nil {
		v.WithinMaxWords = count <= *task.MaxWords
	}
	return v
}
