package grading

import (
	"math"

	"github.com/rafkix/cefr-exam-service/internal/models"
)

// Grade runs one full grading pass over an exam: every question of every part
// exactly once, in the exam's declared part/question order. That order is
// preserved in Details and is the canonical ordering for display and storage.
// Unanswered questions and ungradable types count toward Total but never
// toward Correct. Pure with respect to its inputs.
func Grade(exam *models.Exam, answers map[uint]string) *models.TestResult {
	result := &models.TestResult{
		Details: make([]models.QuestionResult, 0, exam.QuestionCount()),
	}

	for pi := range exam.Parts {
		part := &exam.Parts[pi]
		for qi := range part.Questions {
			q := &part.Questions[qi]
			submitted := answers[q.ID]

			qr := models.QuestionResult{
				QuestionID:    q.ID,
				Submitted:     submitted,
				CorrectAnswer: q.CorrectAnswer,
				Feedback:      q.Explanation,
			}
			if q.Type.AutoGradable() {
				correct := Check(q, submitted)
				qr.IsCorrect = &correct
				if correct {
					result.Correct++
				}
			}

			result.Total++
			result.Details = append(result.Details, qr)
		}
	}

	result.Wrong = result.Total - result.Correct
	if result.Total > 0 {
		result.Percent = int(math.Round(100 * float64(result.Correct) / float64(result.Total)))
	}

	// Score errors out only on negative input, which the arithmetic above
	// cannot produce.
	scaled, level, _ := TableForSkill(exam.Skill).Score(result.Percent)
	result.ScaledScore = scaled
	result.CEFRLevel = level

	return result
}
