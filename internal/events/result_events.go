package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/rafkix/cefr-exam-service/internal/models"
)

type EventType string

const (
	EventAttemptGraded EventType = "attempt.graded"
	EventAttemptReset  EventType = "attempt.reset"
)

// ResultEvent is published to downstream consumers (notifications, analytics,
// certificates) whenever an attempt reaches a terminal grading state.
type ResultEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`

	AttemptID uint             `json:"attempt_id"`
	ExamID    uint             `json:"exam_id"`
	UserID    string           `json:"user_id"`
	Skill     models.SkillType `json:"skill"`

	Total       int              `json:"total"`
	Correct     int              `json:"correct"`
	Percent     int              `json:"percent"`
	ScaledScore float64          `json:"scaled_score"`
	CEFRLevel   models.CEFRLevel `json:"cefr_level"`
}

// NewAttemptGradedEvent builds the event for a freshly graded attempt.
func NewAttemptGradedEvent(attempt *models.Attempt, skill models.SkillType, result *models.TestResult) *ResultEvent {
	return &ResultEvent{
		ID:          uuid.NewString(),
		Type:        EventAttemptGraded,
		Source:      "cefr-exam-service",
		Version:     "1.0",
		Timestamp:   time.Now(),
		AttemptID:   attempt.ID,
		ExamID:      attempt.ExamID,
		UserID:      attempt.UserID,
		Skill:       skill,
		Total:       result.Total,
		Correct:     result.Correct,
		Percent:     result.Percent,
		ScaledScore: result.ScaledScore,
		CEFRLevel:   result.CEFRLevel,
	}
}
