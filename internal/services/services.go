package services

import (
	"context"
	"log/slog"

	"github.com/rafkix/cefr-exam-service/internal/cache"
	"github.com/rafkix/cefr-exam-service/internal/events"
	"github.com/rafkix/cefr-exam-service/internal/grading"
	"github.com/rafkix/cefr-exam-service/internal/models"
	"github.com/rafkix/cefr-exam-service/internal/repositories"
	"github.com/rafkix/cefr-exam-service/internal/session"
	"github.com/rafkix/cefr-exam-service/internal/utils"
)

// ===== SERVICE INTERFACES =====

type ExamService interface {
	GetByID(ctx context.Context, id uint) (*models.Exam, error)
	GetWithContent(ctx context.Context, id uint) (*models.Exam, error)
	List(ctx context.Context, filters repositories.ExamFilters) ([]*models.Exam, int64, error)
}

type AttemptService interface {
	Start(ctx context.Context, examID uint, userID string) (*AttemptState, error)
	SaveAnswer(ctx context.Context, examID uint, userID string, req *SaveAnswerRequest) error
	ToggleFlag(ctx context.Context, examID uint, userID string, questionID uint) (bool, error)
	Finish(ctx context.Context, examID uint, userID string) (*models.TestResult, error)
	Reset(ctx context.Context, examID uint, userID string) (*AttemptState, error)
	GetCurrent(ctx context.Context, examID uint, userID string) (*AttemptState, error)
	SubmissionPayload(ctx context.Context, examID uint, userID string) ([]session.AnswerPayload, error)
}

type GradingService interface {
	GradeAttempt(ctx context.Context, attemptID uint) (*models.TestResult, error)
	GetResult(ctx context.Context, attemptID uint) (*models.Result, error)
	ScoreBand(skill models.SkillType, percent int) (*BandScore, error)
}

type WritingService interface {
	Validate(ctx context.Context, examID uint, text string) (*models.WritingValidation, error)
}

type ExportService interface {
	ExportExamResults(ctx context.Context, examID uint) ([]byte, error)
}

// ===== SHARED REQUEST/RESPONSE SHAPES =====

type SaveAnswerRequest struct {
	QuestionID uint   `json:"question_id" validate:"required"`
	Answer     string `json:"answer"`
}

type BandScore struct {
	ScaledScore float64          `json:"scaled_score"`
	CEFRLevel   models.CEFRLevel `json:"cefr_level"`
}

// AttemptState is the view of a live or finished attempt handed to the UI.
type AttemptState struct {
	AttemptID  uint                    `json:"attempt_id"`
	ExamID     uint                    `json:"exam_id"`
	Status     models.AttemptStatus    `json:"status"`
	StartedAt  string                  `json:"started_at"`
	FinishedAt *string                 `json:"finished_at,omitempty"`
	Answers    []session.AnswerPayload `json:"answers"`
	Flagged    []uint                  `json:"flagged"`
}

// ===== SERVICE MANAGER =====

// Manager bundles the constructed services for handler wiring.
type Manager struct {
	Exam    ExamService
	Attempt AttemptService
	Grading GradingService
	Writing WritingService
	Export  ExportService
}

func NewManager(
	repo repositories.Repository,
	sessions *session.Store,
	cacheSvc cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) *Manager {
	gradingSvc := NewGradingService(repo, publisher, logger)
	return &Manager{
		Exam:    NewExamService(repo, cacheSvc, logger),
		Attempt: NewAttemptService(repo, sessions, gradingSvc, logger, validator),
		Grading: gradingSvc,
		Writing: NewWritingService(repo, logger),
		Export:  NewExportService(repo, logger),
	}
}

// tableFor keeps band table selection in one place for the services.
func tableFor(skill models.SkillType) grading.BandTable {
	return grading.TableForSkill(skill)
}
