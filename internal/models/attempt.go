package models

import (
	"time"

	"gorm.io/datatypes"
)

type AttemptStatus string

const (
	AttemptStatusInProgress AttemptStatus = "in_progress"
	AttemptStatusSubmitted  AttemptStatus = "submitted"
	AttemptStatusAbandoned  AttemptStatus = "abandoned"
)

// Attempt is the durable record of one user's pass through an exam. The live
// answer/flag state is held in the session store while the attempt is in
// progress; the snapshot columns are written once at finish time.
type Attempt struct {
	ID     uint          `json:"id" gorm:"primaryKey"`
	ExamID uint          `json:"exam_id" gorm:"not null;index:idx_attempts_exam_user"`
	UserID string        `json:"user_id" gorm:"not null;size:64;index:idx_attempts_exam_user"`
	Status AttemptStatus `json:"status" gorm:"not null;default:in_progress;index"`

	StartedAt  time.Time  `json:"started_at" gorm:"not null"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	// Answers holds map[questionID]answer, Flags map[questionID]bool (jsonb).
	Answers datatypes.JSON `json:"answers,omitempty" gorm:"type:jsonb"`
	Flags   datatypes.JSON `json:"flags,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Exam   Exam    `json:"-" gorm:"foreignKey:ExamID"`
	Result *Result `json:"result,omitempty" gorm:"foreignKey:AttemptID"`
}

func (Attempt) TableName() string {
	return "attempts"
}
