package grading

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/rafkix/cefr-exam-service/internal/models"
)

func question(qt models.QuestionType, key string) *models.Question {
	return &models.Question{ID: 1, Type: qt, Prompt: "q", CorrectAnswer: key}
}

func withOptions(q *models.Question, opts []models.Option) *models.Question {
	raw, err := json.Marshal(opts)
	if err != nil {
		panic(err)
	}
	q.Options = datatypes.JSON(raw)
	return q
}

func intPtr(n int) *int { return &n }

func TestCheckFailsClosed(t *testing.T) {
	q := question(models.ShortAnswer, "Paris")

	assert.False(t, Check(nil, "paris"), "nil question")
	assert.False(t, Check(q, ""), "empty submission")
	assert.False(t, Check(q, "   "), "blank submission")
	assert.False(t, Check(question(models.ShortAnswer, ""), "paris"), "missing key")
	assert.False(t, Check(question(models.Essay, "anything"), "anything"), "essay never auto-graded")
	assert.False(t, Check(question(models.Speaking, "anything"), "anything"), "speaking never auto-graded")
}

func TestCheckExactMatchNormalizes(t *testing.T) {
	for _, qt := range []models.QuestionType{
		models.MultipleChoice,
		models.TrueFalseNotGiven,
		models.TextMatch,
		models.HeadingsMatch,
		models.Matching,
		models.MapLabeling,
		models.SentenceCompletion,
		models.ShortAnswer,
	} {
		t.Run(string(qt), func(t *testing.T) {
			q := question(qt, "Paris")
			assert.True(t, Check(q, "paris"))
			assert.True(t, Check(q, "  Paris  "))
			assert.True(t, Check(q, "PARIS"))
			assert.False(t, Check(q, "London"))
		})
	}
}

func TestCheckResolvesOptionLabels(t *testing.T) {
	q := withOptions(question(models.MultipleChoice, "B"), []models.Option{
		{Value: "A", Label: "True"},
		{Value: "B", Label: "False"},
		{Value: "C", Label: "Not Given"},
	})

	assert.True(t, Check(q, "B"), "key token itself")
	assert.True(t, Check(q, "False"), "display label resolves to value")
	assert.True(t, Check(q, "  false "), "label resolution is normalized")
	assert.False(t, Check(q, "True"), "label of a wrong option")
	assert.False(t, Check(q, "A"))
}

func TestCheckOptionResolutionFallsBack(t *testing.T) {
	// A submission matching no option compares directly against the key.
	q := withOptions(question(models.HeadingsMatch, "iv"), []models.Option{
		{Value: "i"}, {Value: "ii"}, {Value: "iii"},
	})
	assert.True(t, Check(q, "iv"))
	assert.False(t, Check(q, "v"))
}

func TestCheckGapFillAlternatives(t *testing.T) {
	q := question(models.GapFill, "colour/color")
	assert.True(t, Check(q, "colour"))
	assert.True(t, Check(q, "Color"))
	assert.False(t, Check(q, "colors"))

	q = question(models.GapFill, "bus; train")
	assert.True(t, Check(q, "bus"))
	assert.True(t, Check(q, "train"))
	assert.False(t, Check(q, "tram"))
}

func TestCheckGapFillWordLimit(t *testing.T) {
	q := question(models.GapFill, "one two three")
	q.WordLimit = intPtr(2)
	assert.False(t, Check(q, "one two three"), "over the limit even when matching")

	q.WordLimit = intPtr(3)
	assert.True(t, Check(q, "one two three"))
	assert.True(t, Check(q, "ONE  two   THREE"))
}

func TestCheckMultipleSelectOrderIndependent(t *testing.T) {
	q := question(models.MultipleSelect, "A,B")
	assert.True(t, Check(q, "A,B"))
	assert.True(t, Check(q, "B,A"))
	assert.True(t, Check(q, " b , a "))
	assert.False(t, Check(q, "A"))
	assert.False(t, Check(q, "A,B,C"))
}

func TestCheckMultipleSelectKeepsDuplicates(t *testing.T) {
	q := question(models.MultipleSelect, "A,B")
	assert.False(t, Check(q, "A,A,B"), "duplicates are not deduplicated")
}

func TestCheckUnrecognizedType(t *testing.T) {
	q := question(models.QuestionType("drag_and_drop"), "x")
	assert.False(t, Check(q, "x"))
}

func TestEveryDeclaredTypeDispatches(t *testing.T) {
	// Each known type must have a defined outcome for a trivially matching
	// submission: true for gradable types, false for essay/speaking.
	for _, qt := range models.AllQuestionTypes {
		q := question(qt, "x")
		got := Check(q, "x")
		if qt.AutoGradable() {
			require.True(t, got, "type %s should grade a matching submission", qt)
		} else {
			require.False(t, got, "type %s must never auto-grade", qt)
		}
	}
}
