package models

// WritingTask configures the structural bounds of a free-text submission.
// Nil bounds mean unconstrained.
type WritingTask struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	ExamID   uint   `json:"exam_id" gorm:"not null;index"`
	Prompt   string `json:"prompt" gorm:"type:text;not null" validate:"required"`
	MinWords *int   `json:"min_words,omitempty" validate:"omitempty,min=1"`
	MaxWords *int   `json:"max_words,omitempty" validate:"omitempty,min=1"`
}

func (WritingTask) TableName() string {
	return "writing_tasks"
}

// WritingValidation reports word-count compliance. It never grades content.
type WritingValidation struct {
	WordCount      int  `json:"word_count"`
	MeetsMinWords  bool `json:"meets_min_words"`
	WithinMaxWords bool `json:"within_max_words"`
}
