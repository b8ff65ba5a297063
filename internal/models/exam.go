package models

import (
	"time"

	"gorm.io/gorm"
)

type SkillType string

const (
	SkillReading   SkillType = "reading"
	SkillListening SkillType = "listening"
	SkillWriting   SkillType = "writing"
	SkillSpeaking  SkillType = "speaking"
)

type ExamStatus string

const (
	ExamStatusDraft    ExamStatus = "draft"
	ExamStatusActive   ExamStatus = "active"
	ExamStatusArchived ExamStatus = "archived"
)

// Exam is an immutable test definition supplied by the content side. The
// grading engine only ever reads it.
type Exam struct {
	ID       uint       `json:"id" gorm:"primaryKey"`
	Slug     string     `json:"slug" gorm:"not null;size:100;uniqueIndex" validate:"required,min=1,max=100"`
	Title    string     `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Skill    SkillType  `json:"skill" gorm:"not null;size:16;index" validate:"required,skill"`
	Status   ExamStatus `json:"status" gorm:"default:draft;index" validate:"omitempty,oneof=draft active archived"`
	Duration int        `json:"duration" gorm:"not null" validate:"required,min=5,max=300"` // minutes

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Parts       []ExamPart   `json:"parts" gorm:"foreignKey:ExamID"`
	WritingTask *WritingTask `json:"writing_task,omitempty" gorm:"foreignKey:ExamID"`
}

func (Exam) TableName() string {
	return "exams"
}

// QuestionCount is the total across all parts.
func (e *Exam) QuestionCount() int {
	n := 0
	for i := range e.Parts {
		n += len(e.Parts[i].Questions)
	}
	return n
}

type ExamPart struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	ExamID uint   `json:"exam_id" gorm:"not null;index"`
	Title  string `json:"title" gorm:"size:200"`
	Order  int    `json:"order" gorm:"not null;default:0"`

	Questions []Question `json:"questions" gorm:"foreignKey:ExamPartID"`
}

func (ExamPart) TableName() string {
	return "exam_parts"
}
