package models

import (
	"time"

	"gorm.io/datatypes"
)

type CEFRLevel string

const (
	BelowA1 CEFRLevel = "Below A1"
	A1      CEFRLevel = "A1"
	A2      CEFRLevel = "A2"
	B1      CEFRLevel = "B1"
	B2      CEFRLevel = "B2"
	C1      CEFRLevel = "C1"
	C2      CEFRLevel = "C2"
)

// Rank orders levels from Below A1 (0) to C2 (6) so band tables can be
// checked for monotonicity.
func (l CEFRLevel) Rank() int {
	switch l {
	case A1:
		return 1
	case A2:
		return 2
	case B1:
		return 3
	case B2:
		return 4
	case C1:
		return 5
	case C2:
		return 6
	default:
		return 0
	}
}

// QuestionResult is the graded outcome of one question. IsCorrect is nil for
// types that are not auto-gradable (essay, speaking).
type QuestionResult struct {
	QuestionID    uint    `json:"question_id"`
	Submitted     string  `json:"submitted,omitempty"`
	CorrectAnswer string  `json:"correct_answer,omitempty"`
	IsCorrect     *bool   `json:"is_correct,omitempty"`
	Feedback      *string `json:"feedback,omitempty"`
}

// TestResult aggregates one grading pass over a full exam.
// Invariants: Correct+Wrong == Total, 0 <= Percent <= 100, and ScaledScore /
// CEFRLevel are a monotonic function of Percent.
type TestResult struct {
	Total       int              `json:"total"`
	Correct     int              `json:"correct"`
	Wrong       int              `json:"wrong"`
	Percent     int              `json:"percent"`
	ScaledScore float64          `json:"scaled_score"`
	CEFRLevel   CEFRLevel        `json:"cefr_level"`
	Details     []QuestionResult `json:"details"`
}

// Result is the persisted form of a TestResult, one row per graded attempt.
type Result struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	AttemptID uint `json:"attempt_id" gorm:"not null;uniqueIndex"`

	Total       int       `json:"total" gorm:"not null"`
	Correct     int       `json:"correct" gorm:"not null"`
	Wrong       int       `json:"wrong" gorm:"not null"`
	Percent     int       `json:"percent" gorm:"not null" validate:"min=0,max=100"`
	ScaledScore float64   `json:"scaled_score" gorm:"not null"`
	CEFRLevel   CEFRLevel `json:"cefr_level" gorm:"not null;size:16"`

	// Details holds []QuestionResult in the exam's declared order (jsonb).
	Details datatypes.JSON `json:"details" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`

	Attempt Attempt `json:"-" gorm:"foreignKey:AttemptID"`
}

func (Result) TableName() string {
	return "results"
}
