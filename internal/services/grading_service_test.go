package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rafkix/cefr-exam-service/internal/events"
	"github.com/rafkix/cefr-exam-service/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readingExamContent() *models.Exam {
	return &models.Exam{
		ID:     1,
		Slug:   "reading-1",
		Title:  "Reading Test 1",
		Skill:  models.SkillReading,
		Status: models.ExamStatusActive,
		Parts: []models.ExamPart{
			{
				ID:     1,
				ExamID: 1,
				Order:  1,
				Questions: []models.Question{
					{ID: 1, Type: models.ShortAnswer, CorrectAnswer: "Paris"},
					{ID: 2, Type: models.TrueFalseNotGiven, CorrectAnswer: "true"},
					{ID: 3, Type: models.GapFill, CorrectAnswer: "colour/color"},
				},
			},
		},
	}
}

func submittedAttempt(answers map[uint]string) *models.Attempt {
	raw, _ := json.Marshal(answers)
	return &models.Attempt{
		ID:      7,
		ExamID:  1,
		UserID:  "u1",
		Status:  models.AttemptStatusSubmitted,
		Answers: raw,
	}
}

func TestGradeAttemptPersistsAndPublishes(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewGradingService(repo, publisher, testLogger())

	attempt := submittedAttempt(map[uint]string{1: "paris", 2: "false", 3: "color"})
	repo.attempt.On("GetByID", mock.Anything, uint(7)).Return(attempt, nil)
	repo.result.On("GetByAttempt", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)
	repo.exam.On("GetByIDWithContent", mock.Anything, uint(1)).Return(readingExamContent(), nil)
	repo.result.On("Create", mock.Anything, mock.AnythingOfType("*models.Result")).Return(nil)

	result, err := svc.GradeAttempt(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Correct)
	assert.Equal(t, 1, result.Wrong)
	assert.Equal(t, 67, result.Percent)
	require.Len(t, result.Details, 3)

	repo.result.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(r *models.Result) bool {
		return r.AttemptID == 7 && r.Correct == 2 && r.Total == 3
	}))

	require.Len(t, publisher.Events, 1)
	event := publisher.Events[0]
	assert.Equal(t, events.EventAttemptGraded, event.Type)
	assert.Equal(t, uint(7), event.AttemptID)
	assert.Equal(t, 67, event.Percent)
	assert.Equal(t, models.SkillReading, event.Skill)
}

func TestGradeAttemptIsIdempotent(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewGradingService(repo, publisher, testLogger())

	attempt := submittedAttempt(map[uint]string{1: "paris"})
	details, _ := json.Marshal([]models.QuestionResult{})
	stored := &models.Result{
		AttemptID:   7,
		Total:       3,
		Correct:     1,
		Wrong:       2,
		Percent:     33,
		ScaledScore: 7.5,
		CEFRLevel:   models.C1,
		Details:     details,
	}

	repo.attempt.On("GetByID", mock.Anything, uint(7)).Return(attempt, nil)
	repo.result.On("GetByAttempt", mock.Anything, uint(7)).Return(stored, nil)

	result, err := svc.GradeAttempt(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 33, result.Percent)
	assert.Equal(t, models.C1, result.CEFRLevel)
	repo.result.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, publisher.Events, "re-grading must not publish again")
}

func TestGradeAttemptRequiresSubmission(t *testing.T) {
	repo := newMockRepository()
	svc := NewGradingService(repo, events.NewMockEventPublisher(testLogger()), testLogger())

	attempt := &models.Attempt{ID: 7, ExamID: 1, Status: models.AttemptStatusInProgress}
	repo.attempt.On("GetByID", mock.Anything, uint(7)).Return(attempt, nil)

	_, err := svc.GradeAttempt(context.Background(), 7)
	assert.ErrorIs(t, err, ErrAttemptNotEnded)
}

func TestGradeAttemptNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := NewGradingService(repo, events.NewMockEventPublisher(testLogger()), testLogger())

	repo.attempt.On("GetByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GradeAttempt(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAttemptNotFound)
}

func TestScoreBand(t *testing.T) {
	repo := newMockRepository()
	svc := NewGradingService(repo, events.NewMockEventPublisher(testLogger()), testLogger())

	band, err := svc.ScoreBand(models.SkillReading, 39)
	require.NoError(t, err)
	assert.Equal(t, 9.0, band.ScaledScore)
	assert.Equal(t, models.C2, band.CEFRLevel)

	band, err = svc.ScoreBand(models.SkillReading, 5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, band.ScaledScore)
	assert.Equal(t, models.BelowA1, band.CEFRLevel)

	_, err = svc.ScoreBand(models.SkillReading, -1)
	assert.Error(t, err)
	assert.True(t, IsValidation(err))
}
