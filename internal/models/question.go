package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	MultipleChoice     QuestionType = "multiple_choice"
	TrueFalseNotGiven  QuestionType = "true_false_ng"
	GapFill            QuestionType = "gap_fill"
	TextMatch          QuestionType = "text_match"
	HeadingsMatch      QuestionType = "headings_match"
	MultipleSelect     QuestionType = "multiple_select"
	Matching           QuestionType = "matching"
	MapLabeling        QuestionType = "map_labeling"
	SentenceCompletion QuestionType = "sentence_completion"
	ShortAnswer        QuestionType = "short_answer"
	Essay              QuestionType = "essay"
	Speaking           QuestionType = "speaking"
)

// AllQuestionTypes lists every type the checker knows how to dispatch on.
var AllQuestionTypes = []QuestionType{
	MultipleChoice,
	TrueFalseNotGiven,
	GapFill,
	TextMatch,
	HeadingsMatch,
	MultipleSelect,
	Matching,
	MapLabeling,
	SentenceCompletion,
	ShortAnswer,
	Essay,
	Speaking,
}

// AutoGradable reports whether answers of this type can be checked against a
// key. Essay and speaking submissions are collected but never auto-graded.
func (t QuestionType) AutoGradable() bool {
	switch t {
	case Essay, Speaking:
		return false
	default:
		return true
	}
}

// Option is one selectable value of an option-bearing question. Value is the
// canonical answer token; Label is what the UI renders and may differ.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

type Question struct {
	ID         uint         `json:"id" gorm:"primaryKey"`
	ExamPartID uint         `json:"exam_part_id" gorm:"not null;index"`
	Type       QuestionType `json:"type" gorm:"not null;size:32" validate:"required,question_type"`
	Prompt     string       `json:"prompt" gorm:"type:text;not null" validate:"required"`
	Order      int          `json:"order" gorm:"not null;default:0"`

	// Options holds []Option for option-bearing types (jsonb).
	Options datatypes.JSON `json:"options,omitempty" gorm:"type:jsonb"`

	// CorrectAnswer is the answer key, never serialized to clients. Gap-fill
	// keys may encode accepted alternatives separated by "/" or ";"
	// ("colour/color"). Multiple-select keys are comma-separated token lists.
	// Empty means not auto-gradable.
	CorrectAnswer string `json:"-" gorm:"type:text"`

	WordLimit   *int    `json:"word_limit,omitempty"`
	Explanation *string `json:"explanation,omitempty" gorm:"type:text"`
}

func (Question) TableName() string {
	return "questions"
}

// OptionList decodes the jsonb options column. A missing or malformed column
// yields an empty list so grading can fall back to direct string comparison.
func (q *Question) OptionList() []Option {
	if len(q.Options) == 0 {
		return nil
	}
	var opts []Option
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil
	}
	return opts
}
