package grading

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rafkix/cefr-exam-service/internal/models"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   \n\t "))
	assert.Equal(t, 3, WordCount("one two three"))
	assert.Equal(t, 3, WordCount("  one\t two \n three  "))
}

func TestValidateWritingBounds(t *testing.T) {
	min, max := 50, 60
	task := &models.WritingTask{MinWords: &min, MaxWords: &max}

	v := ValidateWriting(task, words(50))
	assert.Equal(t, 50, v.WordCount)
	assert.True(t, v.MeetsMinWords)
	assert.True(t, v.WithinMaxWords)

	v = ValidateWriting(task, words(49))
	assert.False(t, v.MeetsMinWords)
	assert.True(t, v.WithinMaxWords)

	v = ValidateWriting(task, words(61))
	assert.True(t, v.MeetsMinWords)
	assert.False(t, v.WithinMaxWords)

	v = ValidateWriting(task, words(60))
	assert.True(t, v.MeetsMinWords)
	assert.True(t, v.WithinMaxWords)
}

func TestValidateWritingUnsetBounds(t *testing.T) {
	v := ValidateWriting(&models.WritingTask{}, words(3))
	assert.Equal(t, 3, v.WordCount)
	assert.True(t, v.MeetsMinWords)
	assert.True(t, v.WithinMaxWords)

	v = ValidateWriting(nil, "")
	assert.Equal(t, 0, v.WordCount)
	assert.True(t, v.MeetsMinWords)
	assert.True(t, v.WithinMaxWords)
}
