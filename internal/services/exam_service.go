package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rafkix/cefr-exam-service/internal/cache"
	"github.com/rafkix/cefr-exam-service/internal/models"
	"github.com/rafkix/cefr-exam-service/internal/repositories"
)

const examCacheTTL = 10 * time.Minute

type examService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger *slog.Logger
}

func NewExamService(repo repositories.Repository, cacheSvc cache.CacheService, logger *slog.Logger) ExamService {
	return &examService{
		repo:   repo,
		cache:  cacheSvc,
		logger: logger,
	}
}

func (s *examService) GetByID(ctx context.Context, id uint) (*models.Exam, error) {
	exam, err := s.repo.Exam().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}
	return exam, nil
}

// GetWithContent loads the full exam definition (parts, questions, writing
// task) through a Redis read-through cache. Exam content is immutable once
// published, so a short TTL is enough to keep editors happy.
func (s *examService) GetWithContent(ctx context.Context, id uint) (*models.Exam, error) {
	cacheKey := fmt.Sprintf("exam:content:%d", id)

	var cached models.Exam
	err := s.cache.Get(ctx, cacheKey, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Exam cache lookup failed", "exam_id", id, "error", err)
	}

	exam, err := s.repo.Exam().GetByIDWithContent(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam with content: %w", err)
	}

	if err := s.cache.Set(ctx, cacheKey, exam, examCacheTTL); err != nil {
		s.logger.Warn("Failed to cache exam content", "exam_id", id, "error", err)
	}

	return exam, nil
}

func (s *examService) List(ctx context.Context, filters repositories.ExamFilters) ([]*models.Exam, int64, error) {
	exams, total, err := s.repo.Exam().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list exams: %w", err)
	}
	return exams, total, nil
}
