// Package session owns the mutable state of an in-progress exam attempt:
// start/finish timestamps and the per-question answer and flag bookkeeping.
// A session has a single logical writer (the taking user's interaction
// stream), so sessions themselves carry no locking; the Store that hands
// them out is safe for concurrent lookups.
package session

import (
	"errors"
	"sort"
	"time"
)

// ErrSessionFinished is returned for mutations after Finish. Finishing twice
// is not an error (silent no-op, the first timestamp wins); editing answers
// or flags afterwards is a caller bug and is rejected.
var ErrSessionFinished = errors.New("attempt session already finished")

// AnswerPayload is one entry of the submission wire shape.
type AnswerPayload struct {
	QuestionID uint   `json:"question_id"`
	Answer     string `json:"answer"`
}

// Session tracks one in-progress attempt. A freshly created session is
// immediately editable.
type Session struct {
	ExamID     uint
	UserID     string
	StartedAt  time.Time
	FinishedAt *time.Time

	answers map[uint]string
	flagged map[uint]bool
}

func New(examID uint, userID string) *Session {
	return &Session{
		ExamID:    examID,
		UserID:    userID,
		StartedAt: time.Now(),
		answers:   make(map[uint]string),
		flagged:   make(map[uint]bool),
	}
}

func (s *Session) Finished() bool {
	return s.FinishedAt != nil
}

// SetAnswer records the answer for a question, overwriting any prior value.
// Repeated identical calls are idempotent.
func (s *Session) SetAnswer(questionID uint, answer string) error {
	if s.Finished() {
		return ErrSessionFinished
	}
	s.answers[questionID] = answer
	return nil
}

// Answer returns the stored answer for a question, if any.
func (s *Session) Answer(questionID uint) (string, bool) {
	a, ok := s.answers[questionID]
	return a, ok
}

// ToggleFlag flips the "review later" marker; an unset flag counts as false.
func (s *Session) ToggleFlag(questionID uint) error {
	if s.Finished() {
		return ErrSessionFinished
	}
	s.flagged[questionID] = !s.flagged[questionID]
	return nil
}

func (s *Session) Flagged(questionID uint) bool {
	return s.flagged[questionID]
}

// Finish stamps the finish time exactly once. Calling it again leaves the
// original timestamp untouched.
func (s *Session) Finish() {
	if s.Finished() {
		return
	}
	now := time.Now()
	s.FinishedAt = &now
}

// SubmissionPayload projects the answer map into the wire shape: one entry
// per answered question, ordered by question id, unanswered questions
// omitted.
func (s *Session) SubmissionPayload() []AnswerPayload {
	payload := make([]AnswerPayload, 0, len(s.answers))
	for id, answer := range s.answers {
		payload = append(payload, AnswerPayload{QuestionID: id, Answer: answer})
	}
	sort.Slice(payload, func(i, j int) bool {
		return payload[i].QuestionID < payload[j].QuestionID
	})
	return payload
}

// Answers returns a copy of the answer map keyed by question id.
func (s *Session) Answers() map[uint]string {
	out := make(map[uint]string, len(s.answers))
	for id, a := range s.answers {
		out[id] = a
	}
	return out
}

// Flags returns a copy of the flag map, set entries only.
func (s *Session) Flags() map[uint]bool {
	out := make(map[uint]bool, len(s.flagged))
	for id, f := range s.flagged {
		if f {
			out[id] = true
		}
	}
	return out
}
