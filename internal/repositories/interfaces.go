package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rafkix/cefr-exam-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type ExamFilters struct {
	Skill     *models.SkillType  `json:"skill"`
	Status    *models.ExamStatus `json:"status"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	SortBy    string             `json:"sort_by"`    // "created_at", "title"
	SortOrder string             `json:"sort_order"` // "asc", "desc"
}

type AttemptFilters struct {
	Status   *models.AttemptStatus `json:"status"`
	ExamID   *uint                 `json:"exam_id"`
	UserID   *string               `json:"user_id"`
	DateFrom *time.Time            `json:"date_from"`
	DateTo   *time.Time            `json:"date_to"`
	Limit    int                   `json:"limit"`
	Offset   int                   `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

type ExamRepository interface {
	Create(ctx context.Context, exam *models.Exam) error
	Update(ctx context.Context, exam *models.Exam) error
	GetByID(ctx context.Context, id uint) (*models.Exam, error)
	// GetByIDWithContent loads parts and questions in declared order.
	GetByIDWithContent(ctx context.Context, id uint) (*models.Exam, error)
	GetBySlug(ctx context.Context, slug string) (*models.Exam, error)
	List(ctx context.Context, filters ExamFilters) ([]*models.Exam, int64, error)
	GetWritingTask(ctx context.Context, examID uint) (*models.WritingTask, error)
}

type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.Attempt) error
	Update(ctx context.Context, attempt *models.Attempt) error
	GetByID(ctx context.Context, id uint) (*models.Attempt, error)
	// GetCurrent returns the user's in-progress attempt for an exam, if any.
	GetCurrent(ctx context.Context, examID uint, userID string) (*models.Attempt, error)
	List(ctx context.Context, filters AttemptFilters) ([]*models.Attempt, int64, error)
}

type ResultRepository interface {
	Create(ctx context.Context, result *models.Result) error
	GetByAttempt(ctx context.Context, attemptID uint) (*models.Result, error)
	GetByExam(ctx context.Context, examID uint) ([]*models.Result, error)
}

// Repository aggregates the per-entity repositories behind one handle, the
// shape services depend on.
type Repository interface {
	Exam() ExamRepository
	Attempt() AttemptRepository
	Result() ResultRepository
}

// IsNotFoundError reports whether err is the backing store's missing-row
// condition.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
